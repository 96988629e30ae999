// Package planshowhandler реализует команду plan-show: вывод тест-плана PC_PLAN.
package planshowhandler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers/shared"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/pkg/apperrors"
)

func RegisterCmd() error {
	return command.Register(&PlanShowHandler{})
}

// PlanShowHandler обрабатывает команду plan-show.
type PlanShowHandler struct{}

// Name возвращает имя команды.
func (h *PlanShowHandler) Name() string {
	return constants.ActPlanShow
}

// Description возвращает описание команды для вывода в help.
func (h *PlanShowHandler) Description() string {
	return "Вывод тест-плана по id (PC_PLAN)"
}

// Execute загружает реестр и выводит запись плана cfg.PlanID.
func (h *PlanShowHandler) Execute(ctx context.Context, cfg *config.Config) error {
	r := shared.NewResponder(ctx, cfg, constants.ActPlanShow)

	if cfg.PlanID == "" {
		return r.Fail(apperrors.ErrConfigMissing, "не указан id тест-плана (PC_PLAN)", nil, nil)
	}
	r.Log.Info("Запуск plan-show", slog.String("plan", cfg.PlanID))

	reg, err := shared.LoadRegistry(ctx, cfg)
	if err != nil {
		return r.FailErr(err)
	}
	entry, err := reg.Lookup(cfg.PlanID)
	if err != nil {
		return r.FailErr(err)
	}

	return r.Success(entry, nil, func(w io.Writer) error {
		return writeEntry(w, &entry)
	})
}

func writeEntry(w io.Writer, e *testplan.Entry) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Тест-план: %s\n", e.ID)
	fmt.Fprintf(&sb, "Название:  %s\n", e.Name)
	if e.Origin != "" {
		fmt.Fprintf(&sb, "Источник:  %s\n", e.Origin)
	}
	if e.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", e.Description)
	}
	writeRefs(&sb, "bootstrap_include", e.BootstrapIncludes, nil)
	writeRefs(&sb, "include", e.Includes, e.IncludeOverrides)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRefs(sb *strings.Builder, title string, refs []string, overrides map[string]string) {
	fmt.Fprintf(sb, "\n%s (%d):\n", title, len(refs))
	for _, ref := range refs {
		if o := overrides[ref]; o != "" {
			fmt.Fprintf(sb, "  %s  %s\n", ref, o)
			continue
		}
		fmt.Fprintf(sb, "  %s\n", ref)
	}
}
