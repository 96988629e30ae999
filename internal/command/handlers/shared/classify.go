// Package shared содержит общие компоненты обработчиков команд plancheck:
// загрузку реестра и каталога, сопоставление ошибок с кодами и вывод результата.
package shared

import (
	"errors"
	"io/fs"

	"github.com/Kargones/plancheck/internal/entity/pxu"
	"github.com/Kargones/plancheck/internal/entity/session"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/pkg/apperrors"
	"github.com/Kargones/plancheck/internal/source"
)

// ErrorCode возвращает код apperrors для ошибки доменного слоя.
func ErrorCode(err error) string {
	var (
		appErr     *apperrors.AppError
		parseErr   *testplan.ParseError
		syntaxErr  *pxu.SyntaxError
		notFound   *testplan.NotFoundError
		unresolved *testplan.UnresolvedReferenceError
		decodeErr  *source.DecodeError
		cycleErr   *session.CycleError
		missingDep *session.MissingDependencyError
		unknownJob *session.UnknownJobError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.As(err, &unresolved):
		return apperrors.ErrPlanUnresolved
	case errors.As(err, &notFound):
		return apperrors.ErrPlanNotFound
	case errors.As(err, &parseErr), errors.As(err, &syntaxErr):
		return apperrors.ErrPlanParse
	case errors.As(err, &decodeErr), errors.Is(err, source.ErrUnknownEncoding):
		return apperrors.ErrSourceDecode
	case errors.As(err, &cycleErr), errors.As(err, &missingDep), errors.As(err, &unknownJob):
		return apperrors.ErrSessionResolve
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return apperrors.ErrSourceRead
	default:
		return apperrors.ErrCommandExec
	}
}
