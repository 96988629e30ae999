package shared

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/entity/unit"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/tracing"
	"github.com/Kargones/plancheck/internal/source"
)

// Logger возвращает логгер команды с trace_id.
func Logger(cfg *config.Config, command, traceID string) *slog.Logger {
	l := slog.Default()
	if cfg != nil && cfg.Logger != nil {
		l = cfg.Logger
	}
	return l.With(slog.String("trace_id", traceID), slog.String("command", command))
}

func encodingOf(cfg *config.Config) string {
	if cfg.SourceConfig == nil {
		return source.EncodingUTF8
	}
	return cfg.SourceConfig.Encoding
}

// LoadRegistry загружает тест-планы из источников PC_SOURCES.
// Количество планов записывается в метрику plans_loaded.
func LoadRegistry(ctx context.Context, cfg *config.Config) (reg *testplan.Registry, err error) {
	paths := cfg.PlanSources()
	_, span := tracing.StartSpan(ctx, "plans.load", attribute.Int("sources", len(paths)))
	defer func() { tracing.EndSpan(span, err) }()

	var opts []testplan.Option
	if sc := cfg.SourceConfig; sc != nil {
		if sc.Namespace != "" {
			opts = append(opts, testplan.WithNamespace(sc.Namespace))
		}
		if sc.SkipForeignUnits {
			opts = append(opts, testplan.WithForeignUnitsSkipped())
		}
	}

	reg = testplan.NewRegistry(opts...)
	if err = source.Walk(paths, encodingOf(cfg), reg.LoadFrom); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("plans", reg.Len()))
	metrics.FromContext(ctx).RecordPlansLoaded(reg.Len())
	return reg, nil
}

// LoadCatalog загружает каталог юнитов из PC_UNIT_SOURCES
// (по умолчанию из источников планов).
func LoadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (catalog *unit.Catalog, err error) {
	paths := cfg.UnitSources()
	_, span := tracing.StartSpan(ctx, "units.load", attribute.Int("sources", len(paths)))
	defer func() { tracing.EndSpan(span, err) }()

	catalog = unit.NewCatalog(log)
	if err = source.Walk(paths, encodingOf(cfg), catalog.LoadFrom); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("units", catalog.Len()))
	return catalog, nil
}
