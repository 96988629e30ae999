package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/plancheck/internal/pkg/logging"
)

func newTestCollector(t *testing.T, url string) *PrometheusCollector {
	t.Helper()
	c, err := NewPrometheusCollector(Config{
		Enabled:        true,
		PushgatewayURL: url,
		JobName:        "plancheck",
		Timeout:        5 * time.Second,
		InstanceLabel:  "ci-runner-1",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestPrometheusCollector_RecordCommandEnd(t *testing.T) {
	c := newTestCollector(t, "http://localhost:9091")

	c.RecordCommandStart("plan-validate")
	c.RecordCommandEnd("plan-validate", "", 20*time.Millisecond, true)
	c.RecordCommandEnd("plan-validate", "", 30*time.Millisecond, false)
	c.RecordCommandEnd("plan-show", "dbus-warm-boot", time.Millisecond, true)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(c.commandTotal.WithLabelValues("plan-validate", "success")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(c.commandTotal.WithLabelValues("plan-validate", "error")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(c.commandTotal.WithLabelValues("plan-show", "success")))
	assert.Equal(t, 3, promtestutil.CollectAndCount(c.commandDuration), "три комбинации command/plan/status")
}

func TestPrometheusCollector_Gauges(t *testing.T) {
	c := newTestCollector(t, "http://localhost:9091")

	c.RecordPlansLoaded(3)
	c.RecordUnresolved(2)
	c.RecordUnresolved(0)
	c.RecordSessionJobs("dbus-warm-boot", "ready", 4)

	assert.Equal(t, 3.0, promtestutil.ToFloat64(c.plansLoaded))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(c.unresolved), "gauge хранит последнее значение")
	assert.Equal(t, 4.0, promtestutil.ToFloat64(c.sessionJobs.WithLabelValues("dbus-warm-boot", "ready")))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		assert.True(t, strings.HasPrefix(f.GetName(), "plancheck_"), f.GetName())
	}
}

func TestPrometheusCollector_Push(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestCollector(t, server.URL)
	c.RecordPlansLoaded(1)

	require.NoError(t, c.Push(context.Background()))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/plancheck/instance/ci-runner-1", path)
}

func TestPrometheusCollector_PushErrorIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestCollector(t, server.URL)
	assert.NoError(t, c.Push(context.Background()))
}

func TestPrometheusCollector_PushCancelled(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestCollector(t, server.URL)
	assert.NoError(t, c.Push(ctx))
	assert.False(t, called)
}

func TestNewCollector(t *testing.T) {
	c, err := NewCollector(Config{Enabled: false}, logging.NewNopLogger())
	require.NoError(t, err)
	_, isNop := c.(*NopCollector)
	assert.True(t, isNop)

	_, err = NewCollector(Config{Enabled: true}, logging.NewNopLogger())
	assert.True(t, errors.Is(err, ErrPushgatewayURLRequired))

	c, err = NewCollector(Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j", Timeout: time.Second}, logging.NewNopLogger())
	require.NoError(t, err)
	_, isProm := c.(*PrometheusCollector)
	assert.True(t, isProm)
}

func TestNopCollector(t *testing.T) {
	c := NewNopCollector()
	assert.NotPanics(t, func() {
		c.RecordCommandStart("x")
		c.RecordCommandEnd("x", "p", time.Second, true)
		c.RecordPlansLoaded(1)
		c.RecordUnresolved(1)
		c.RecordSessionJobs("p", "ready", 1)
	})
	assert.NoError(t, c.Push(context.Background()))
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j", Timeout: time.Second}

	tests := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{"валидная", func(*Config) {}, nil},
		{"отключена", func(c *Config) { *c = Config{} }, nil},
		{"нет URL", func(c *Config) { c.PushgatewayURL = "" }, ErrPushgatewayURLRequired},
		{"URL без схемы", func(c *Config) { c.PushgatewayURL = "pg:9091/x" }, ErrPushgatewayURLInvalid},
		{"нет job", func(c *Config) { c.JobName = "" }, ErrJobNameRequired},
		{"нулевой таймаут", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.want), "получено %v", err)
			}
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "a_b", sanitizeLabel("a\nb"))
	assert.Equal(t, "тест", sanitizeLabel("тест"))
	assert.Len(t, []rune(sanitizeLabel(strings.Repeat("я", 200))), maxLabelLength)
}

func TestCollectorContext(t *testing.T) {
	_, isNop := FromContext(context.Background()).(*NopCollector)
	assert.True(t, isNop, "без коллектора в context возвращается NopCollector")

	c := newTestCollector(t, "http://localhost:9091")
	ctx := WithCollector(context.Background(), c)
	assert.Same(t, c, FromContext(ctx))

	FromContext(ctx).RecordPlansLoaded(7)
	assert.Equal(t, 7.0, promtestutil.ToFloat64(c.plansLoaded))
}
