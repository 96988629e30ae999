// Package tracing генерирует trace ID для корреляции логов и вывода команды
// и настраивает OpenTelemetry для экспорта span-ов по OTLP/HTTP.
//
// Trace ID: 32 hex-символа (16 байт), совместим с W3C Trace Context:
//
//	traceID := tracing.GenerateTraceID()
//	ctx = tracing.WithTraceID(ctx, traceID)
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

type traceIDKey struct{}

// WithTraceID сохраняет trace ID в контексте.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext возвращает trace ID из контекста или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

var fallbackCounter atomic.Uint64

// GenerateTraceID возвращает случайный trace ID из crypto/rand.
// Если crypto/rand недоступен, ID строится из времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: 16 hex-символов времени и 16 hex-символов счётчика.
func fallbackTraceID() string {
	return fmt.Sprintf("%016x%016x", uint64(time.Now().UnixNano()), fallbackCounter.Add(1))
}
