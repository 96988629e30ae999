// Package version реализует команду version: версия сборки plancheck
// и таблица устаревших имён команд.
package version

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers/shared"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
)

func RegisterCmd() error {
	return command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	// Version: полная версия приложения.
	Version string `json:"version" yaml:"version"`

	// GoVersion: версия Go, использованная при сборке.
	GoVersion string `json:"go_version" yaml:"go_version"`

	// Commit: хеш коммита на момент сборки.
	Commit string `json:"commit" yaml:"commit"`

	// Aliases: устаревшие имена команд, которые ещё принимаются.
	Aliases []AliasEntry `json:"aliases" yaml:"aliases"`
}

// AliasEntry связывает команду с её устаревшим именем.
type AliasEntry struct {
	Command    string `json:"command" yaml:"command"`
	Deprecated string `json:"deprecated" yaml:"deprecated"`
}

// writeText выводит информацию о версии в человекочитаемом формате.
func (d *VersionData) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "plancheck version %s\n  Go:     %s\n  Commit: %s\n",
		d.Version, d.GoVersion, d.Commit)
	if err != nil {
		return err
	}

	if len(d.Aliases) == 0 {
		return nil
	}
	if _, err = fmt.Fprintln(w, "\nУстаревшие имена команд:"); err != nil {
		return err
	}
	for _, entry := range d.Aliases {
		if _, err = fmt.Fprintf(w, "  %-20s → %s\n", entry.Deprecated, entry.Command); err != nil {
			return err
		}
	}
	return nil
}

// buildVersionData создаёт VersionData с fallback значениями.
// Пустые version и commit заменяются на "dev" и "unknown".
func buildVersionData(version, commit string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return &VersionData{
		Version:   version,
		GoVersion: runtime.Version(),
		Commit:    commit,
		Aliases:   buildAliases(),
	}
}

// buildAliases собирает из реестра команды, у которых есть устаревшее имя.
func buildAliases() []AliasEntry {
	entries := make([]AliasEntry, 0)
	for _, cmd := range command.ListAllWithAliases() {
		if cmd.DeprecatedAlias == "" {
			continue
		}
		entries = append(entries, AliasEntry{Command: cmd.Name, Deprecated: cmd.DeprecatedAlias})
	}
	return entries
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute выводит данные о версии. Текстовый вывод компактный, без блока сводки.
func (h *VersionHandler) Execute(ctx context.Context, cfg *config.Config) error {
	versionData := buildVersionData(constants.Version, constants.PreCommitHash)
	r := shared.NewResponder(ctx, cfg, constants.ActVersion)
	return r.Success(versionData, nil, versionData.writeText)
}
