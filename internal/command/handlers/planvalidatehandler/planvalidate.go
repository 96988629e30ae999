// Package planvalidatehandler реализует команду plan-validate: проверку,
// что каждая ссылка include и bootstrap_include тест-планов указывает
// на известный юнит.
package planvalidatehandler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers/shared"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/pkg/apperrors"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/output"
)

// RegisterCmd регистрирует plan-validate вместе с устаревшим именем validate.
func RegisterCmd() error {
	return command.RegisterWithAlias(&PlanValidateHandler{}, constants.ActValidate)
}

// ValidateData - результат проверки ссылок.
type ValidateData struct {
	Plans      int                `json:"plans" yaml:"plans"`
	KnownUnits int                `json:"known_units" yaml:"known_units"`
	Problems   []testplan.Problem `json:"problems" yaml:"problems"`
}

// PlanValidateHandler обрабатывает команду plan-validate.
type PlanValidateHandler struct{}

// Name возвращает имя команды.
func (h *PlanValidateHandler) Name() string {
	return constants.ActPlanValidate
}

// Description возвращает описание команды для вывода в help.
func (h *PlanValidateHandler) Description() string {
	return "Проверка ссылок include и bootstrap_include тест-планов"
}

// Execute загружает тест-планы и каталог юнитов и проверяет ссылки.
// Неразрешённые ссылки возвращаются одной ошибкой PLAN.UNRESOLVED_REFERENCE
// со списком всех проблем.
func (h *PlanValidateHandler) Execute(ctx context.Context, cfg *config.Config) error {
	r := shared.NewResponder(ctx, cfg, constants.ActPlanValidate)
	r.Log.Info("Запуск plan-validate",
		slog.Any("sources", cfg.PlanSources()),
		slog.Any("unit_sources", cfg.UnitSources()))

	reg, err := shared.LoadRegistry(ctx, cfg)
	if err != nil {
		return r.FailErr(err)
	}
	catalog, err := shared.LoadCatalog(ctx, cfg, r.Log)
	if err != nil {
		return r.FailErr(err)
	}

	// Планы могут включать друг друга, даже если источники юнитов их не содержат.
	known := append(catalog.KnownIDs(), reg.IDs()...)

	data := &ValidateData{
		Plans:      reg.Len(),
		KnownUnits: catalog.Len(),
		Problems:   []testplan.Problem{},
	}

	err = testplan.ValidateReferences(reg, known)
	var unresolved *testplan.UnresolvedReferenceError
	if errors.As(err, &unresolved) {
		data.Problems = unresolved.Problems
	} else if err != nil {
		return r.FailErr(err)
	}
	metrics.FromContext(ctx).RecordUnresolved(len(data.Problems))

	if len(data.Problems) > 0 {
		r.Log.Warn("Найдены неразрешённые ссылки", slog.Int("problems", len(data.Problems)))
		if !output.IsStructured(r.Format) {
			if writeErr := data.writeText(os.Stdout); writeErr != nil {
				r.Log.Error("Не удалось вывести список проблем", slog.String("error", writeErr.Error()))
			}
		}
		msg := fmt.Sprintf("неразрешённых ссылок: %d", len(data.Problems))
		return r.Fail(apperrors.ErrPlanUnresolved, msg, unresolved, data)
	}

	r.Log.Info("Все ссылки разрешены", slog.Int("plans", data.Plans))
	summary := output.NewSummaryInfo()
	summary.AddMetric("Тест-планов", strconv.Itoa(data.Plans), "")
	summary.AddMetric("Известных юнитов", strconv.Itoa(data.KnownUnits), "")
	return r.Success(data, summary, data.writeText)
}

func (d *ValidateData) writeText(w io.Writer) error {
	if len(d.Problems) == 0 {
		_, err := fmt.Fprintf(w, "Проверено тест-планов: %d, все ссылки разрешены\n", d.Plans)
		return err
	}
	if _, err := fmt.Fprintf(w, "Неразрешённые ссылки (%d):\n", len(d.Problems)); err != nil {
		return err
	}
	for _, p := range d.Problems {
		line := "  " + p.String()
		if p.Origin != "" {
			line += " (" + p.Origin + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
