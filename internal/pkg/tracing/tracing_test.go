package tracing

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/plancheck/internal/pkg/logging"
)

// Тесты модифицируют глобальный TracerProvider: t.Parallel() не использовать.

var hex32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestGenerateTraceID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		assert.Regexp(t, hex32, id)
		assert.False(t, seen[id], "trace ID должен быть уникальным")
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	a, b := fallbackTraceID(), fallbackTraceID()
	assert.Regexp(t, hex32, a)
	assert.NotEqual(t, a, b)
}

func TestTraceIDContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	assert.Empty(t, TraceIDFromContext(nil)) //nolint:staticcheck // проверка nil-контекста

	ctx := WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceIDFromContext(ctx))
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Enabled: true, Endpoint: "http://jaeger:4318", ServiceName: "plancheck", Timeout: time.Second, SamplingRate: 0.5}

	tests := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{"валидная", func(*Config) {}, nil},
		{"выключен", func(c *Config) { *c = Config{} }, nil},
		{"нет endpoint", func(c *Config) { c.Endpoint = "" }, ErrTracingEndpointRequired},
		{"endpoint без host", func(c *Config) { c.Endpoint = "jaeger" }, ErrTracingEndpointInvalidFormat},
		{"нет service name", func(c *Config) { c.ServiceName = "" }, ErrTracingServiceNameRequired},
		{"нулевой timeout", func(c *Config) { c.Timeout = 0 }, ErrTracingTimeoutInvalid},
		{"sampling > 1", func(c *Config) { c.SamplingRate = 1.5 }, ErrTracingSamplingRateInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "получено %v", err)
		})
	}
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	shutdown, err := NewTracerProvider(Config{}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_InvalidConfig(t *testing.T) {
	shutdown, err := NewTracerProvider(Config{Enabled: true, ServiceName: "x", Timeout: time.Second}, logging.NewNopLogger())
	assert.Nil(t, shutdown)
	assert.True(t, errors.Is(err, ErrTracingEndpointRequired))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = "http://127.0.0.1:4318"
	cfg.Insecure = true

	shutdown, err := NewTracerProvider(cfg, logging.NewNopLogger())
	require.NoError(t, err)
	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, isSDK)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestStartSpan_UsesTraceID(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(recorder),
		sdktrace.WithSampler(newSampler(1.0)),
	))

	traceID := GenerateTraceID()
	ctx := ContextWithOTelTraceID(context.Background(), traceID)

	_, span := StartSpan(ctx, "plan.validate", attribute.Int("plans", 3))
	EndSpan(span, errors.New("неразрешённые ссылки"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "plan.validate", spans[0].Name())
	assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("plans", 3))
}

func TestContextWithOTelTraceID_Invalid(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, ContextWithOTelTraceID(ctx, "не-hex"))
	assert.False(t, trace.SpanContextFromContext(ContextWithOTelTraceID(ctx, "zz")).IsValid())
}

func TestNewSampler_ZeroRate(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(recorder),
		sdktrace.WithSampler(newSampler(0)),
	))

	ctx := ContextWithOTelTraceID(context.Background(), GenerateTraceID())
	_, span := StartSpan(ctx, "x")
	span.End()

	assert.Empty(t, recorder.Ended(), "rate=0 не сэмплирует даже при sampled remote parent")
}
