// Package metrics собирает метрики запуска команд и результатов проверки
// тест-планов и отправляет их в Prometheus Pushgateway.
// При отключённых метриках используется NopCollector.
package metrics

import (
	"context"
	"time"

	"github.com/Kargones/plancheck/internal/pkg/logging"
)

// Collector - интерфейс сбора метрик.
type Collector interface {
	// RecordCommandStart отмечает начало команды.
	RecordCommandStart(command string)
	// RecordCommandEnd записывает длительность и результат команды.
	// plan: id тест-плана, с которым работала команда, может быть пустым.
	RecordCommandEnd(command, plan string, duration time.Duration, success bool)
	// RecordPlansLoaded записывает количество загруженных тест-планов.
	RecordPlansLoaded(count int)
	// RecordUnresolved записывает количество неразрешённых ссылок.
	RecordUnresolved(count int)
	// RecordSessionJobs записывает количество заданий списка запуска по состоянию
	// (ready, blocked, done).
	RecordSessionJobs(plan, state string, count int)
	// Push отправляет метрики. Ошибки отправки только логируются,
	// реализации всегда возвращают nil.
	Push(ctx context.Context) error
}

// NewCollector возвращает NopCollector при отключённых метриках,
// иначе PrometheusCollector.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}
	return NewPrometheusCollector(config, logger)
}

// NopCollector ничего не записывает.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordCommandStart ничего не делает.
func (c *NopCollector) RecordCommandStart(string) {}

// RecordCommandEnd ничего не делает.
func (c *NopCollector) RecordCommandEnd(string, string, time.Duration, bool) {}

// RecordPlansLoaded ничего не делает.
func (c *NopCollector) RecordPlansLoaded(int) {}

// RecordUnresolved ничего не делает.
func (c *NopCollector) RecordUnresolved(int) {}

// RecordSessionJobs ничего не делает.
func (c *NopCollector) RecordSessionJobs(string, string, int) {}

// Push ничего не делает.
func (c *NopCollector) Push(context.Context) error {
	return nil
}
