package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Kargones/plancheck/internal/config"
)

// Deprecatable реализуется обработчиками, зарегистрированными под устаревшим именем.
// help и version по нему отмечают такие команды.
type Deprecatable interface {
	IsDeprecated() bool
	// NewName возвращает имя, которое следует использовать вместо устаревшего.
	NewName() string
}

var (
	_ Handler      = (*DeprecatedBridge)(nil)
	_ Deprecatable = (*DeprecatedBridge)(nil)
)

// DeprecatedBridge регистрирует обработчик под старым именем команды
// (например, "validate" для "plan-validate").
type DeprecatedBridge struct {
	actual     Handler
	deprecated string
	newName    string
}

// Name возвращает устаревшее имя, под которым bridge лежит в реестре.
func (b *DeprecatedBridge) Name() string {
	return b.deprecated
}

// Description возвращает описание основной команды.
func (b *DeprecatedBridge) Description() string {
	return b.actual.Description()
}

// IsDeprecated всегда true.
func (b *DeprecatedBridge) IsDeprecated() bool {
	return true
}

// NewName возвращает имя основной команды.
func (b *DeprecatedBridge) NewName() string {
	return b.newName
}

// Execute предупреждает об устаревшем имени и выполняет основную команду.
// Предупреждение пишется в stderr и в лог: stdout занят JSON или YAML результатом.
// Отменённый context возвращается без предупреждения.
func (b *DeprecatedBridge) Execute(ctx context.Context, cfg *config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "WARNING: command '%s' is deprecated, use '%s' instead\n",
		b.deprecated, b.newName)
	logger(cfg).Warn("Вызвана команда по устаревшему имени",
		slog.String("deprecated", b.deprecated),
		slog.String("command", b.newName))
	return b.actual.Execute(ctx, cfg)
}

func logger(cfg *config.Config) *slog.Logger {
	if cfg != nil && cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}
