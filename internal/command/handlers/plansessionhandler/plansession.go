// Package plansessionhandler реализует команду plan-session: строит список
// запуска тест-плана PC_PLAN и показывает готовность каждого задания с учётом
// результатов из файла PC_RESULTS.
package plansessionhandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers/shared"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/entity/session"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/entity/unit"
	"github.com/Kargones/plancheck/internal/pkg/apperrors"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
)

// Состояния задания для метрики session_jobs.
const (
	stateReady   = "ready"
	stateBlocked = "blocked"
	stateDone    = "done"
)

func RegisterCmd() error {
	return command.Register(&PlanSessionHandler{})
}

// JobEntry - задание списка запуска.
type JobEntry struct {
	Job        string              `json:"job" yaml:"job"`
	Plugin     string              `json:"plugin,omitempty" yaml:"plugin,omitempty"`
	Outcome    session.Outcome     `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	CanStart   bool                `json:"can_start" yaml:"can_start"`
	Readiness  string              `json:"readiness" yaml:"readiness"`
	Inhibitors []session.Inhibitor `json:"inhibitors,omitempty" yaml:"inhibitors,omitempty"`
}

// SessionData - результат команды plan-session.
type SessionData struct {
	SessionID string          `json:"session_id" yaml:"session_id"`
	Plan      string          `json:"plan" yaml:"plan"`
	RunList   []JobEntry      `json:"run_list" yaml:"run_list"`
	Summary   session.Summary `json:"summary" yaml:"summary"`
}

// PlanSessionHandler обрабатывает команду plan-session.
type PlanSessionHandler struct{}

// Name возвращает имя команды.
func (h *PlanSessionHandler) Name() string {
	return constants.ActPlanSession
}

// Description возвращает описание команды для вывода в help.
func (h *PlanSessionHandler) Description() string {
	return "Порядок запуска заданий тест-плана и их готовность (PC_PLAN, PC_RESULTS)"
}

// Execute строит сессию плана cfg.PlanID и применяет результаты из cfg.ResultsFile.
func (h *PlanSessionHandler) Execute(ctx context.Context, cfg *config.Config) error {
	r := shared.NewResponder(ctx, cfg, constants.ActPlanSession)

	if cfg.PlanID == "" {
		return r.Fail(apperrors.ErrConfigMissing, "не указан id тест-плана (PC_PLAN)", nil, nil)
	}
	log := r.Log.With(slog.String("plan", cfg.PlanID))
	log.Info("Запуск plan-session")

	reg, err := shared.LoadRegistry(ctx, cfg)
	if err != nil {
		return r.FailErr(err)
	}
	catalog, err := shared.LoadCatalog(ctx, cfg, log)
	if err != nil {
		return r.FailErr(err)
	}

	sess, err := resolve(ctx, reg, catalog, cfg.PlanID)
	if err != nil {
		return r.FailErr(err)
	}
	log = log.With(slog.String("session_id", sess.ID.String()))

	if cfg.ResultsFile != "" {
		applied, err := applyResults(sess, cfg.ResultsFile)
		if err != nil {
			return r.Fail(apperrors.ErrResultsLoad, err.Error(), err, nil)
		}
		log.Info("Результаты применены", slog.Int("jobs", applied), slog.String("file", cfg.ResultsFile))
	}

	data := buildData(sess)
	collector := metrics.FromContext(ctx)
	collector.RecordSessionJobs(data.Plan, stateReady, data.Summary.Ready)
	collector.RecordSessionJobs(data.Plan, stateBlocked, data.Summary.Blocked)
	collector.RecordSessionJobs(data.Plan, stateDone, data.Summary.Done)
	log.Info("Сессия построена",
		slog.Int("total", data.Summary.Total),
		slog.Int("ready", data.Summary.Ready),
		slog.Int("blocked", data.Summary.Blocked))

	summary := output.NewSummaryInfo()
	summary.AddMetric("Заданий", strconv.Itoa(data.Summary.Total), "")
	summary.AddMetric("Готово к запуску", strconv.Itoa(data.Summary.Ready), "")
	summary.AddMetric("Заблокировано", strconv.Itoa(data.Summary.Blocked), "")
	summary.AddMetric("Выполнено", strconv.Itoa(data.Summary.Done), "")
	if data.Summary.Failed > 0 {
		summary.AddWarning(fmt.Sprintf("неуспешных заданий: %d", data.Summary.Failed))
	}
	return r.Success(data, summary, data.writeText)
}

func resolve(ctx context.Context, reg *testplan.Registry, catalog *unit.Catalog, planID string) (sess *session.Session, err error) {
	_, span := tracing.StartSpan(ctx, "session.resolve", attribute.String("plan", planID))
	defer func() { tracing.EndSpan(span, err) }()

	sess, err = session.Resolve(reg, catalog, planID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("session_id", sess.ID.String()))
	return sess, nil
}

// applyResults читает YAML-файл вида "id задания: результат" и записывает
// результаты в сессию в порядке id. Возвращает количество применённых результатов.
func applyResults(sess *session.Session, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("чтение файла результатов: %w", err)
	}
	results := map[string]session.Outcome{}
	if err := yaml.Unmarshal(raw, &results); err != nil {
		return 0, fmt.Errorf("разбор файла результатов %s: %w", path, err)
	}

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := sess.RecordOutcome(id, results[id]); err != nil {
			return 0, fmt.Errorf("файл результатов %s: %w", path, err)
		}
	}
	return len(ids), nil
}

func buildData(sess *session.Session) *SessionData {
	data := &SessionData{
		SessionID: sess.ID.String(),
		Plan:      sess.PlanID,
		RunList:   []JobEntry{},
		Summary:   sess.Summary(),
	}
	for _, st := range sess.RunList() {
		data.RunList = append(data.RunList, JobEntry{
			Job:        st.Job.ID,
			Plugin:     st.Job.Plugin,
			Outcome:    st.Outcome,
			CanStart:   st.CanStart(),
			Readiness:  st.ReadinessDescription(),
			Inhibitors: st.Inhibitors,
		})
	}
	return data
}

func (d *SessionData) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Тест-план: %s\nСессия:    %s\n\n", d.Plan, d.SessionID); err != nil {
		return err
	}
	width := 0
	for _, j := range d.RunList {
		width = max(width, len(j.Job))
	}
	for i, j := range d.RunList {
		status := string(j.Outcome)
		switch {
		case status != "":
		case j.CanStart:
			status = "ready"
		default:
			status = "blocked"
		}
		if _, err := fmt.Fprintf(w, "%3d. %-*s  %-13s %s\n", i+1, width, j.Job, status, j.Readiness); err != nil {
			return err
		}
	}
	return nil
}
