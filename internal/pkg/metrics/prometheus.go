package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/plancheck/internal/pkg/logging"
	"github.com/Kargones/plancheck/internal/pkg/urlutil"
)

// PrometheusCollector хранит метрики в собственном registry
// и отправляет их в Pushgateway.
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry
	instance string

	commandDuration *prometheus.HistogramVec
	commandTotal    *prometheus.CounterVec
	plansLoaded     prometheus.Gauge
	unresolved      prometheus.Gauge
	sessionJobs     *prometheus.GaugeVec
}

// NewPrometheusCollector создаёт коллектор и регистрирует метрики:
//   - plancheck_command_duration_seconds (histogram)
//   - plancheck_command_total (counter)
//   - plancheck_plans_loaded (gauge)
//   - plancheck_unresolved_references (gauge)
//   - plancheck_session_jobs (gauge)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для label instance", "error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"command", "plan", "status"}),
		commandTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "command_total",
			Help:      "Total number of command executions by status",
		}, []string{"command", "status"}),
		plansLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "plans_loaded",
			Help:      "Number of test plans loaded from sources",
		}),
		unresolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "unresolved_references",
			Help:      "Number of include references not resolved to a known unit",
		}),
		sessionJobs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "session_jobs",
			Help:      "Number of run list jobs by readiness state",
		}, []string{"plan", "state"}),
	}

	for _, m := range []prometheus.Collector{c.commandDuration, c.commandTotal, c.plansLoaded, c.unresolved, c.sessionJobs} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}
	return c, nil
}

// RecordCommandStart только логирует: для CLI in-flight не отслеживается.
func (c *PrometheusCollector) RecordCommandStart(command string) {
	c.logger.Debug("metrics: command started", "command", command)
}

// RecordCommandEnd обновляет histogram длительности и счётчик команд.
func (c *PrometheusCollector) RecordCommandEnd(command, plan string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	command = sanitizeLabel(command)
	plan = sanitizeLabel(plan)

	c.commandDuration.WithLabelValues(command, plan, status).Observe(duration.Seconds())
	c.commandTotal.WithLabelValues(command, status).Inc()
}

// RecordPlansLoaded устанавливает gauge загруженных планов.
func (c *PrometheusCollector) RecordPlansLoaded(count int) {
	c.plansLoaded.Set(float64(count))
}

// RecordUnresolved устанавливает gauge неразрешённых ссылок.
func (c *PrometheusCollector) RecordUnresolved(count int) {
	c.unresolved.Set(float64(count))
}

// RecordSessionJobs устанавливает gauge заданий в состоянии state.
func (c *PrometheusCollector) RecordSessionJobs(plan, state string, count int) {
	c.sessionJobs.WithLabelValues(sanitizeLabel(plan), state).Set(float64(count))
}

// maxLabelLength ограничивает длину значения label.
const maxLabelLength = 128

// sanitizeLabel заменяет управляющие символы и обрезает значение по рунам.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)
	if runes := []rune(clean); len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// Push отправляет метрики в Pushgateway. Ошибка отправки логируется,
// команда из-за неё не падает.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if ctx.Err() != nil {
		c.logger.Debug("metrics: push отменён")
		return nil
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	err := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance).
		PushContext(pushCtx)
	if err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
		)
		return nil
	}
	c.logger.Debug("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
	)
	return nil
}

// Registry возвращает внутренний registry. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
