package shared

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/pkg/apperrors"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
)

// Responder выводит результат одной команды в формате PC_OUTPUT_FORMAT.
type Responder struct {
	Command string
	Format  string
	TraceID string
	Log     *slog.Logger

	start  time.Time
	out    io.Writer
	writer output.Writer
}

// NewResponder создаёт Responder. trace_id и Writer берутся из context;
// если их там нет, генерируется новый trace_id и Writer для формата.
func NewResponder(ctx context.Context, cfg *config.Config, command string) *Responder {
	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}
	format := os.Getenv(constants.EnvOutputFormat)
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	format = output.NormalizeFormat(format)
	return &Responder{
		Command: command,
		Format:  format,
		TraceID: traceID,
		Log:     Logger(cfg, command, traceID),
		start:   time.Now(),
		out:     os.Stdout,
		writer:  output.WriterFromContext(ctx, format),
	}
}

func (r *Responder) metadata() *output.Metadata {
	return &output.Metadata{
		DurationMs: time.Since(r.start).Milliseconds(),
		TraceID:    r.TraceID,
		APIVersion: constants.APIVersion,
	}
}

// Success выводит данные команды. В текстовом формате вызывается text,
// затем блок сводки (если summary не nil); в JSON и YAML выводится Result.
func (r *Responder) Success(data any, summary *output.SummaryInfo, text func(w io.Writer) error) error {
	if !output.IsStructured(r.Format) && text != nil {
		if err := text(r.out); err != nil {
			return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось вывести результат", err)
		}
		if summary == nil {
			return nil
		}
		return output.WriteSummary(r.out, r.metadata(), summary)
	}

	result := &output.Result{
		Status:   output.StatusSuccess,
		Command:  r.Command,
		Data:     data,
		Metadata: r.metadata(),
		Summary:  summary,
	}
	if err := r.writer.Write(r.out, result); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось вывести результат", err)
	}
	return nil
}

// Fail выводит ошибку и возвращает *apperrors.AppError с кодом code.
// data выводится вместе с ошибкой в JSON и YAML (например, список проблем),
// в текстовом формате его выводит вызывающий.
func (r *Responder) Fail(code, message string, cause error, data any) error {
	r.Log.Error(message, slog.String("code", code))

	if !output.IsStructured(r.Format) {
		_, _ = fmt.Fprintf(r.out, "Ошибка: %s\nКод: %s\n", message, code)
		return apperrors.NewAppError(code, message, cause)
	}

	result := &output.Result{
		Status:  output.StatusError,
		Command: r.Command,
		Data:    data,
		Error: &output.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Metadata: r.metadata(),
	}
	if writeErr := r.writer.Write(r.out, result); writeErr != nil {
		r.Log.Error("Не удалось записать ответ об ошибке", slog.String("error", writeErr.Error()))
	}
	return apperrors.NewAppError(code, message, cause)
}

// FailErr выводит ошибку доменного слоя с кодом из ErrorCode.
func (r *Responder) FailErr(err error) error {
	return r.Fail(ErrorCode(err), err.Error(), err, nil)
}
