package output

import "context"

type writerKey struct{}

// WithWriter сохраняет Writer запуска в context для обработчиков команд.
func WithWriter(ctx context.Context, w Writer) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

// WriterFromContext возвращает Writer из context или, если его нет,
// Writer для формата format.
func WriterFromContext(ctx context.Context, format string) Writer {
	if w, ok := ctx.Value(writerKey{}).(Writer); ok && w != nil {
		return w
	}
	return NewWriter(format)
}
