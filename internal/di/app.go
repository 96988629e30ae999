// Package di собирает зависимости приложения через Wire.
package di

import (
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/pkg/logging"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config передаётся извне через InitializeApp().
	Config *config.Config

	// Logger создаётся через ProvideLogger на основе LoggingConfig.
	Logger logging.Logger

	// OutputWriter форматирует результаты команд.
	OutputWriter output.Writer

	// TraceID: идентификатор запуска для корреляции логов и span-ов.
	TraceID string

	// MetricsCollector отправляет метрики в Prometheus Pushgateway.
	// Если метрики отключены: NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	TracerShutdown tracing.ShutdownFunc
}
