package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const summaryDivider = "══════════════════════════════════════════════════════"

// TextWriter пишет Result в человекочитаемом виде.
// Команды с собственным текстовым представлением пишут его сами,
// TextWriter используется для остальных случаев и ошибок.
type TextWriter struct{}

// NewTextWriter создаёт TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write пишет статус, ошибку, данные (в виде YAML) и блок сводки.
// Для ошибок блок сводки не выводится.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}
	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Ошибка [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
	}
	if result.Data != nil {
		data, err := yaml.Marshal(result.Data)
		if err != nil {
			return fmt.Errorf("не удалось сериализовать данные: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s", data); err != nil {
			return err
		}
	}
	if result.Status == StatusError {
		return nil
	}
	return WriteSummary(w, result.Metadata, result.Summary)
}

// WriteSummary выводит блок сводки: длительность, метрики и предупреждения.
func WriteSummary(w io.Writer, meta *Metadata, summary *SummaryInfo) error {
	ew := &errWriter{w: w}
	ew.printf("\n%s\n📊 Сводка\n%s\n", summaryDivider, summaryDivider)
	if meta != nil && meta.DurationMs > 0 {
		ew.printf("⏱️  Время выполнения: %s\n", formatDuration(meta.DurationMs))
	}
	if summary != nil {
		for _, m := range summary.KeyMetrics {
			if m.Unit != "" {
				ew.printf("📈 %s: %s %s\n", m.Name, m.Value, m.Unit)
			} else {
				ew.printf("📈 %s: %s\n", m.Name, m.Value)
			}
		}
		if summary.WarningsCount > 0 {
			ew.printf("\n⚠️  Предупреждений: %d\n", summary.WarningsCount)
			for _, warn := range summary.Warnings {
				ew.printf("   • %s\n", warn)
			}
		}
	}
	ew.printf("%s\n", summaryDivider)
	return ew.err
}

// errWriter запоминает первую ошибку записи и пропускает дальнейшие вызовы.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func formatDuration(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dмс", ms)
	case ms < 60_000:
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	default:
		sec := ms / 1000
		return fmt.Sprintf("%dм %dс", sec/60, sec%60)
	}
}
