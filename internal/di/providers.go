package di

import (
	"log/slog"
	"os"

	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/pkg/logging"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger на основе LoggingConfig из Config.
// Если LoggingConfig == nil или поля пусты, используются значения
// logging.DefaultConfig(): info, text, stderr.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.LoggingConfig.Logging())
}

// ProvideOutputWriter создаёт Writer для формата вывода.
// Формат берётся из Config.OutputFormat, затем из PC_OUTPUT_FORMAT;
// по умолчанию text.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := os.Getenv(constants.EnvOutputFormat)
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	if format == "" {
		format = output.FormatText
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует trace_id запуска: 32-символьная hex-строка.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе MetricsConfig.
// При выключенных метриках или ошибке создания возвращает NopCollector.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.MetricsConfig == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.MetricsConfig.Metrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт OTel TracerProvider и возвращает его shutdown.
// При выключенном трейсинге или ошибке инициализации возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) tracing.ShutdownFunc {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.TracingConfig.Tracing(), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}
