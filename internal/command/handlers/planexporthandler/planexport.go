// Package planexporthandler реализует команду plan-export: выгрузку всего
// реестра тест-планов в JSON, YAML или обратно в формат PXU.
package planexporthandler

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
)

func RegisterCmd() error {
	return command.Register(&PlanExportHandler{})
}

// ExportData - выгрузка реестра.
type ExportData struct {
	Namespace string           `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Plans     []testplan.Entry `json:"plans" yaml:"plans"`
}

// PlanExportHandler обрабатывает команду plan-export.
type PlanExportHandler struct{}

// Name возвращает имя команды.
func (h *PlanExportHandler) Name() string {
	return constants.ActPlanExport
}

// Description возвращает описание команды для вывода в help.
func (h *PlanExportHandler) Description() string {
	return "Выгрузка реестра тест-планов (PXU, JSON или YAML)"
}

// Execute загружает реестр и выводит все планы в порядке id.
// В текстовом формате планы выводятся блоками PXU, пригодными для повторной загрузки.
func (h *PlanExportHandler) Execute(ctx context.Context, cfg *config.Config) error {
	r := shared.NewResponder(ctx, cfg, constants.ActPlanExport)

	reg, err := shared.LoadRegistry(ctx, cfg)
	if err != nil {
		return r.FailErr(err)
	}
	data := &ExportData{Namespace: reg.Namespace(), Plans: reg.Entries()}
	r.Log.Info("Выгрузка тест-планов", slog.Int("plans", len(data.Plans)))

	return r.Success(data, nil, data.writePXU)
}

func (d *ExportData) writePXU(w io.Writer) error {
	var sb strings.Builder
	for i := range d.Plans {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeEntry(&sb, &d.Plans[i])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeEntry(sb *strings.Builder, e *testplan.Entry) {
	fmt.Fprintf(sb, "%s: %s\n", testplan.KeyID, e.ID)
	fmt.Fprintf(sb, "%s: %s\n", testplan.KeyUnit, constants.UnitTestPlan)
	if e.Name != "" {
		fmt.Fprintf(sb, "%s: %s\n", testplan.KeyName, e.Name)
	}
	if e.Description != "" {
		fmt.Fprintf(sb, "%s:\n", testplan.KeyDescription)
		for _, line := range strings.Split(e.Description, "\n") {
			if strings.TrimSpace(line) == "" {
				line = "."
			}
			fmt.Fprintf(sb, " %s\n", line)
		}
	}
	writeList(sb, testplan.KeyBootstrapInclude, e.BootstrapIncludes, nil)
	writeList(sb, testplan.KeyInclude, e.Includes, e.IncludeOverrides)
}

func writeList(sb *strings.Builder, key string, refs []string, overrides map[string]string) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", key)
	for _, ref := range refs {
		if o := overrides[ref]; o != "" {
			fmt.Fprintf(sb, "    %s  %s\n", ref, o)
			continue
		}
		fmt.Fprintf(sb, "    %s\n", ref)
	}
}
