package metrics

import "context"

type collectorKey struct{}

// WithCollector сохраняет Collector в context для обработчиков команд.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// FromContext возвращает Collector из context или NopCollector, если его нет.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey{}).(Collector); ok && c != nil {
		return c
	}
	return NewNopCollector()
}
