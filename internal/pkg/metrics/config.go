package metrics

import (
	"errors"
	"net/url"
	"time"
)

// Ошибки проверки конфигурации.
var (
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")
	ErrPushgatewayURLInvalid  = errors.New("pushgateway URL has invalid format")
	ErrJobNameRequired        = errors.New("job name is required")
	ErrInvalidTimeout         = errors.New("timeout must be positive")
)

// Namespace - префикс имён всех метрик.
const Namespace = "plancheck"

// Config - настройки метрик.
type Config struct {
	Enabled bool
	// PushgatewayURL, например "http://pushgateway:9091".
	PushgatewayURL string
	// JobName: группировка метрик в Pushgateway.
	JobName string
	// Timeout: таймаут отправки.
	Timeout time.Duration
	// InstanceLabel переопределяет label instance (по умолчанию hostname).
	InstanceLabel string
}

// Validate проверяет конфигурацию. Отключённые метрики всегда валидны.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}
	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию (метрики отключены).
func DefaultConfig() Config {
	return Config{
		JobName: "plancheck",
		Timeout: 10 * time.Second,
	}
}
