package tracing

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/plancheck/internal/pkg/logging"
	"github.com/Kargones/plancheck/internal/pkg/urlutil"
)

// TracerName - имя tracer-а для span-ов приложения.
const TracerName = "github.com/Kargones/plancheck"

// ShutdownFunc завершает экспорт span-ов.
type ShutdownFunc func(context.Context) error

// NewNopTracerProvider возвращает shutdown для выключенного трейсинга.
func NewNopTracerProvider() ShutdownFunc {
	return func(context.Context) error { return nil }
}

// NewTracerProvider настраивает OTLP HTTP exporter с batch-процессором
// и регистрирует TracerProvider глобально. При выключенном трейсинге
// возвращает nop shutdown.
func NewTracerProvider(cfg Config, logger logging.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logger.Debug("трейсинг выключен")
		return NewNopTracerProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	// WithEndpoint принимает только host:port.
	endpoint := cfg.Endpoint
	if u, parseErr := url.Parse(cfg.Endpoint); parseErr == nil && u.Host != "" {
		endpoint = u.Host
	}
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("OpenTelemetry трейсинг инициализирован",
		"endpoint", urlutil.MaskURL(cfg.Endpoint),
		"service_name", cfg.ServiceName,
		"sampling_rate", cfg.SamplingRate,
	)
	return tp.Shutdown, nil
}

// ContextWithOTelTraceID делает traceIDHex trace ID всех span-ов,
// созданных из возвращённого контекста. Невалидный ID игнорируется.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// StartSpan открывает span глобального TracerProvider.
//
//	ctx, span := tracing.StartSpan(ctx, "plan.load", attribute.Int("sources", n))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan записывает ошибку в span (если есть) и закрывает его.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// newSampler: remote parent из ContextWithOTelTraceID всегда помечен
// sampled, поэтому и для него применяется доля SamplingRate.
func newSampler(rate float64) sdktrace.Sampler {
	return sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(rate),
		sdktrace.WithRemoteParentSampled(sdktrace.TraceIDRatioBased(rate)),
	)
}
