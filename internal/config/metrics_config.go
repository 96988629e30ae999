package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/urlutil"
)

// MetricsConfig содержит настройки для Prometheus метрик.
type MetricsConfig struct {
	// Enabled: включены ли метрики (по умолчанию false).
	Enabled bool `yaml:"enabled" env:"PC_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL: URL Prometheus Pushgateway.
	// Пример: "http://pushgateway:9091"
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"PC_METRICS_PUSHGATEWAY_URL"`

	// JobName: имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"PC_METRICS_JOB_NAME" env-default:"plancheck"`

	// Timeout: таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"PC_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel: переопределение instance label.
	// Если пусто: используется hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"PC_METRICS_INSTANCE"`
}

// Metrics переводит настройки в metrics.Config.
func (c *MetricsConfig) Metrics() metrics.Config {
	if c == nil {
		return metrics.DefaultConfig()
	}
	return metrics.Config{
		Enabled:        c.Enabled,
		PushgatewayURL: c.PushgatewayURL,
		JobName:        c.JobName,
		Timeout:        c.Timeout,
		InstanceLabel:  c.InstanceLabel,
	}
}

// loadMetricsConfig загружает конфигурацию метрик из AppConfig и переменных окружения.
// Переменные окружения PC_METRICS_* переопределяют значения из AppConfig.
func loadMetricsConfig(l *slog.Logger, cfg *Config) (*MetricsConfig, error) {
	metricsConfig := &MetricsConfig{}
	if cfg.AppConfig != nil {
		*metricsConfig = cfg.AppConfig.Metrics
	}

	if err := cleanenv.ReadEnv(metricsConfig); err != nil {
		return nil, err
	}

	l.Debug("Metrics конфигурация",
		slog.Bool("enabled", metricsConfig.Enabled),
		slog.String("pushgateway_url", urlutil.MaskURL(metricsConfig.PushgatewayURL)),
		slog.String("job_name", metricsConfig.JobName),
	)
	return metricsConfig, nil
}

// validateMetricsConfig проверяет конфигурацию метрик при загрузке.
func validateMetricsConfig(mc *MetricsConfig) error {
	c := mc.Metrics()
	return c.Validate()
}

// getDefaultMetricsConfig возвращает конфигурацию метрик по умолчанию.
// Метрики отключены по умолчанию.
func getDefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		JobName: metrics.DefaultConfig().JobName,
		Timeout: 10 * time.Second,
	}
}
