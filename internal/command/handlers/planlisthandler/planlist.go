// Package planlisthandler реализует команду plan-list: список тест-планов
// из источников PC_SOURCES.
package planlisthandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers/shared"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/pkg/output"
)

func RegisterCmd() error {
	return command.Register(&PlanListHandler{})
}

// PlanSummary - краткое описание тест-плана в списке.
type PlanSummary struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Origin    string `json:"origin,omitempty" yaml:"origin,omitempty"`
	Bootstrap int    `json:"bootstrap_includes" yaml:"bootstrap_includes"`
	Includes  int    `json:"includes" yaml:"includes"`
}

// PlanListData - результат команды plan-list.
type PlanListData struct {
	Namespace string        `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Total     int           `json:"total" yaml:"total"`
	Plans     []PlanSummary `json:"plans" yaml:"plans"`
}

// PlanListHandler обрабатывает команду plan-list.
type PlanListHandler struct{}

// Name возвращает имя команды.
func (h *PlanListHandler) Name() string {
	return constants.ActPlanList
}

// Description возвращает описание команды для вывода в help.
func (h *PlanListHandler) Description() string {
	return "Список тест-планов из источников"
}

// Execute загружает реестр и выводит планы в порядке id.
func (h *PlanListHandler) Execute(ctx context.Context, cfg *config.Config) error {
	r := shared.NewResponder(ctx, cfg, constants.ActPlanList)
	r.Log.Info("Запуск plan-list", slog.Any("sources", cfg.PlanSources()))

	reg, err := shared.LoadRegistry(ctx, cfg)
	if err != nil {
		return r.FailErr(err)
	}

	data := buildData(reg)
	r.Log.Info("Тест-планы загружены", slog.Int("total", data.Total))

	summary := output.NewSummaryInfo()
	summary.AddMetric("Тест-планов", strconv.Itoa(data.Total), "")
	if data.Total == 0 {
		summary.AddWarning("в источниках не найдено ни одного тест-плана")
	}
	return r.Success(data, summary, data.writeText)
}

func buildData(reg *testplan.Registry) *PlanListData {
	entries := reg.Entries()
	data := &PlanListData{
		Namespace: reg.Namespace(),
		Total:     len(entries),
		Plans:     make([]PlanSummary, 0, len(entries)),
	}
	for _, e := range entries {
		data.Plans = append(data.Plans, PlanSummary{
			ID:        e.ID,
			Name:      e.Name,
			Origin:    e.Origin,
			Bootstrap: len(e.BootstrapIncludes),
			Includes:  len(e.Includes),
		})
	}
	return data
}

func (d *PlanListData) writeText(w io.Writer) error {
	if d.Total == 0 {
		_, err := fmt.Fprintln(w, "Тест-планы не найдены")
		return err
	}
	width := 0
	for _, p := range d.Plans {
		width = max(width, len(p.ID))
	}
	for _, p := range d.Plans {
		if _, err := fmt.Fprintf(w, "%-*s  %s (bootstrap: %d, include: %d)\n",
			width, p.ID, p.Name, p.Bootstrap, p.Includes); err != nil {
			return err
		}
	}
	return nil
}
