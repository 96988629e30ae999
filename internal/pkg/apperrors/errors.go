// Package apperrors предоставляет структурированные ошибки приложения
// с машиночитаемыми кодами для вывода в конверте результата.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в формате CATEGORY.SPECIFIC_ERROR.
const (
	// CONFIG: загрузка и проверка конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigParse    = "CONFIG.PARSE_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"
	ErrConfigMissing  = "CONFIG.MISSING"

	// COMMAND: диспетчеризация и выполнение команд.
	ErrCommandNotFound = "COMMAND.NOT_FOUND"
	ErrCommandExec     = "COMMAND.EXEC_FAILED"

	// SOURCE: чтение и декодирование файлов определений.
	ErrSourceRead   = "SOURCE.READ_FAILED"
	ErrSourceDecode = "SOURCE.DECODE_FAILED"

	// PLAN: загрузка, поиск и проверка тест-планов.
	ErrPlanParse      = "PLAN.PARSE_FAILED"
	ErrPlanNotFound   = "PLAN.NOT_FOUND"
	ErrPlanUnresolved = "PLAN.UNRESOLVED_REFERENCE"

	// SESSION: построение списка запуска.
	ErrSessionResolve = "SESSION.RESOLVE_FAILED"
	ErrResultsLoad    = "SESSION.RESULTS_FAILED"

	// OUTPUT: форматирование вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"
)

// AppError - ошибка приложения с кодом.
// Message не должен содержать секретов: он попадает в вывод команды.
type AppError struct {
	// Code: код в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`
	// Message: описание для человека.
	Message string `json:"message"`
	// Cause: исходная ошибка, в JSON не сериализуется.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает исходную ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// CodeOf возвращает код первой AppError в цепочке err или fallback.
func CodeOf(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return fallback
}
