package testplan

import (
	"fmt"
	"strings"
)

// ParseError - блок определения тест-плана не может быть разобран:
// нарушен формат, отсутствует id или unit, unit не "test plan", id повторяется.
type ParseError struct {
	// Origin: позиция ошибки ("файл:строка").
	Origin string
	// Reason: описание нарушения.
	Reason string
	// Err: исходная ошибка формата, если есть.
	Err error
}

// Error реализует интерфейс error.
func (e *ParseError) Error() string {
	if e.Origin == "" {
		return "ошибка разбора тест-плана: " + e.Reason
	}
	return fmt.Sprintf("ошибка разбора тест-плана %s: %s", e.Origin, e.Reason)
}

// Unwrap возвращает исходную ошибку для errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError - тест-план с указанным id отсутствует в реестре.
type NotFoundError struct {
	ID string
}

// Error реализует интерфейс error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("тест-план %q не найден", e.ID)
}

// Problem описывает одну неразрешённую ссылку.
type Problem struct {
	// PlanID: план, в котором встретилась ссылка.
	PlanID string `json:"plan_id" yaml:"plan_id"`
	// Field: include или bootstrap_include.
	Field string `json:"field" yaml:"field"`
	// Reference: id, которого нет среди известных юнитов.
	Reference string `json:"reference" yaml:"reference"`
	// Origin: позиция плана в источнике.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// String возвращает описание проблемы в одну строку.
func (p Problem) String() string {
	return fmt.Sprintf("%s: %s %q не найден", p.PlanID, p.Field, p.Reference)
}

// UnresolvedReferenceError перечисляет все ссылки, не найденные среди известных юнитов.
// Содержит ровно одну Problem на каждую неразрешённую ссылку.
type UnresolvedReferenceError struct {
	Problems []Problem
}

// Error реализует интерфейс error.
func (e *UnresolvedReferenceError) Error() string {
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, p.String())
	}
	return fmt.Sprintf("неразрешённые ссылки (%d):\n- %s", len(e.Problems), strings.Join(lines, "\n- "))
}
