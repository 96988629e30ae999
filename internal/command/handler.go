// Package command предоставляет интерфейс обработчика и реестр команд plancheck.
// Обработчики регистрируются явно через handlers.RegisterAll().
package command

import (
	"context"

	"github.com/Kargones/plancheck/internal/config"
)

// Handler определяет интерфейс обработчика команды.
type Handler interface {
	// Name возвращает имя команды для регистрации в реестре.
	// Должно соответствовать константам из internal/constants (например, "plan-list").
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду с переданным контекстом и конфигурацией.
	Execute(ctx context.Context, cfg *config.Config) error
}
