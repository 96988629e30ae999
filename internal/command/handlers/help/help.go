// Package help реализует команду help: список команд и переменных окружения.
package help

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers/shared"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
)

func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data содержит информацию обо всех доступных командах.
type Data struct {
	Commands []CommandInfo `json:"commands" yaml:"commands"`
}

// CommandInfo описывает одну команду.
type CommandInfo struct {
	// Name: имя команды.
	Name string `json:"name" yaml:"name"`
	// Description: описание команды.
	Description string `json:"description" yaml:"description"`
	// Deprecated: true если команда deprecated.
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	// NewName: новое имя команды (если deprecated).
	NewName string `json:"new_name,omitempty" yaml:"new_name,omitempty"`
}

// envHelp: переменные окружения, которые выводятся в текстовой справке.
var envHelp = [][2]string{
	{"PC_COMMAND", "Команда (или первый аргумент)"},
	{"PC_SOURCES", "Файлы и каталоги с тест-планами, через запятую"},
	{"PC_UNIT_SOURCES", "Источники юнитов, по умолчанию PC_SOURCES"},
	{"PC_PLAN", "Id тест-плана для plan-show и plan-session"},
	{"PC_NAMESPACE", "Пространство имён провайдера"},
	{"PC_SOURCE_ENCODING", "utf-8, windows-1251, koi8-r, cp866, iso-8859-1, auto"},
	{"PC_RESULTS", "YAML с результатами заданий для plan-session"},
	{constants.EnvOutputFormat, "text, json или yaml"},
	{"PC_CONFIG_APP", "Путь к app.yaml"},
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выполняет команду help: собирает список команд и выводит результат.
func (h *Handler) Execute(ctx context.Context, cfg *config.Config) error {
	helpData := buildData()
	return shared.NewResponder(ctx, cfg, constants.ActHelp).Success(helpData, nil, helpData.writeText)
}

// buildData собирает информацию обо всех зарегистрированных командах.
func buildData() *Data {
	data := &Data{}
	for _, name := range command.Names() {
		handler, ok := command.Get(name)
		if !ok {
			continue
		}
		info := CommandInfo{
			Name:        name,
			Description: handler.Description(),
		}
		if dep, ok := handler.(command.Deprecatable); ok && dep.IsDeprecated() {
			info.Deprecated = true
			info.NewName = dep.NewName()
		}
		data.Commands = append(data.Commands, info)
	}
	return data
}

// writeText выводит информацию о командах в человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("plancheck — проверка тест-планов Checkbox\n")
	sb.WriteString("\nКоманды:\n")

	maxLen := 0
	for _, cmd := range d.Commands {
		maxLen = max(maxLen, len(cmd.Name))
	}
	for _, cmd := range d.Commands {
		desc := cmd.Description
		if cmd.Deprecated {
			desc = fmt.Sprintf("[deprecated → %s] %s", cmd.NewName, desc)
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, cmd.Name, desc)
	}

	sb.WriteString("\nПеременные окружения:\n")
	for _, env := range envHelp {
		fmt.Fprintf(&sb, "  %-20s %s\n", env[0], env[1])
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
