package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
	"github.com/Kargones/plancheck/internal/pkg/urlutil"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"PC_TRACING_ENABLED" env-default:"false"`

	// Endpoint: URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"PC_TRACING_ENDPOINT"`

	// ServiceName: имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"PC_TRACING_SERVICE_NAME" env-default:"plancheck"`

	// Environment: окружение (ci, staging, development).
	Environment string `yaml:"environment" env:"PC_TRACING_ENVIRONMENT" env-default:"ci"`

	// Insecure: использовать HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"PC_TRACING_INSECURE" env-default:"true"`

	// Timeout: таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"PC_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate: доля сэмплируемых трейсов, от 0.0 (ни один) до 1.0 (все).
	// 0 из app.yaml неотличим от отсутствия значения и заменяется на 1.0.
	SamplingRate float64 `yaml:"samplingRate" env:"PC_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// Tracing переводит настройки в tracing.Config с версией сборки.
func (c *TracingConfig) Tracing() tracing.Config {
	if c == nil {
		out := tracing.DefaultConfig()
		out.Version = constants.Version
		return out
	}
	return tracing.Config{
		Enabled:      c.Enabled,
		Endpoint:     c.Endpoint,
		ServiceName:  c.ServiceName,
		Version:      constants.Version,
		Environment:  c.Environment,
		Insecure:     c.Insecure,
		Timeout:      c.Timeout,
		SamplingRate: c.SamplingRate,
	}
}

// loadTracingConfig загружает конфигурацию трейсинга из AppConfig и переменных окружения.
// Переменные окружения PC_TRACING_* переопределяют значения из AppConfig.
func loadTracingConfig(l *slog.Logger, cfg *Config) (*TracingConfig, error) {
	tracingConfig := &TracingConfig{}
	if cfg.AppConfig != nil {
		*tracingConfig = cfg.AppConfig.Tracing
	}

	if err := cleanenv.ReadEnv(tracingConfig); err != nil {
		return nil, err
	}

	l.Debug("Tracing конфигурация",
		slog.Bool("enabled", tracingConfig.Enabled),
		slog.String("endpoint", urlutil.MaskURL(tracingConfig.Endpoint)),
		slog.String("service_name", tracingConfig.ServiceName),
	)
	return tracingConfig, nil
}

// validateTracingConfig проверяет конфигурацию трейсинга при загрузке.
func validateTracingConfig(tc *TracingConfig) error {
	c := tc.Tracing()
	return c.Validate()
}

// getDefaultTracingConfig возвращает конфигурацию трейсинга по умолчанию.
// Трейсинг отключён по умолчанию.
func getDefaultTracingConfig() *TracingConfig {
	def := tracing.DefaultConfig()
	return &TracingConfig{
		ServiceName:  def.ServiceName,
		Environment:  def.Environment,
		Insecure:     true,
		Timeout:      def.Timeout,
		SamplingRate: def.SamplingRate,
	}
}
