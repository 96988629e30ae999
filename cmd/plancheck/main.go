// Package main содержит точку входа plancheck: загрузку и проверку
// тест-планов Checkbox в CI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/command/handlers"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/di"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
)

func main() {
	os.Exit(run())
}

// run загружает конфигурацию, регистрирует команды и возвращает exit code.
// os.Exit вызывается только в main, чтобы отработали все defer-ы
// (tracer shutdown, завершение span-а).
func run() int {
	cfg, err := config.MustLoad()
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitConfigError
	}
	if err := handlers.RegisterAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось зарегистрировать команды: %v\n", err)
		return constants.ExitCommandFailed
	}
	return execute(context.Background(), cfg)
}

// execute выполняет команду cfg.Command через registry.
// Пустая команда считается help.
func execute(ctx context.Context, cfg *config.Config) int {
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	slog.SetDefault(l)
	l.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		l.Error("Ошибка инициализации приложения", slog.String("error", err.Error()))
		return constants.ExitConfigError
	}

	traceID := app.TraceID
	ctx = tracing.WithTraceID(ctx, traceID)
	// Все span-ы запуска используют trace_id из логов.
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing",
				slog.String("error", err.Error()),
				slog.String("trace_id", traceID),
				slog.String("command", cfg.Command),
			)
		}
	}()

	ctx, span := otel.Tracer(tracing.TracerName).Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("plan", cfg.PlanID),
			attribute.String("trace_id", traceID),
		),
	)
	var execErr error
	defer func() { tracing.EndSpan(span, execErr) }()

	collector := app.MetricsCollector
	ctx = metrics.WithCollector(ctx, collector)
	ctx = output.WithWriter(ctx, app.OutputWriter)
	collector.RecordCommandStart(cfg.Command)
	start := time.Now()

	handler, ok := command.Get(cfg.Command)
	if !ok {
		l.Error("Неизвестная команда",
			slog.String("command", cfg.Command),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		fmt.Fprintf(os.Stderr, "Неизвестная команда %q. Список команд: plancheck help\n", cfg.Command)
		recordMetrics(ctx, collector, cfg, start, false)
		return constants.ExitUnknownCommand
	}

	execErr = handler.Execute(ctx, cfg)
	recordMetrics(ctx, collector, cfg, start, execErr == nil)
	if execErr != nil {
		l.Error("Ошибка выполнения команды",
			slog.String("command", cfg.Command),
			slog.String("error", execErr.Error()),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		return constants.ExitCommandFailed
	}
	return constants.ExitOK
}

// recordMetrics записывает результат команды и отправляет метрики в Pushgateway.
func recordMetrics(ctx context.Context, collector metrics.Collector, cfg *config.Config, start time.Time, success bool) {
	collector.RecordCommandEnd(cfg.Command, cfg.PlanID, time.Since(start), success)
	_ = collector.Push(ctx) // ошибки push логируются внутри
}
