// Package output форматирует результат команды в JSON, YAML или текст.
// Формат выбирается переменной PC_OUTPUT_FORMAT.
package output

// Значения Result.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result - конверт результата команды.
type Result struct {
	// Status: "success" или "error".
	Status  string `json:"status" yaml:"status"`
	Command string `json:"command" yaml:"command"`
	// Data: данные конкретной команды.
	Data any `json:"data,omitempty" yaml:"data,omitempty"`
	// Error заполняется только при Status="error".
	Error    *ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`
	Metadata *Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	// Summary выводится в текстовом блоке сводки, а в JSON и YAML
	// переносится в metadata.summary.
	Summary *SummaryInfo `json:"-" yaml:"-"`
}

// ErrorInfo - код и описание ошибки. Message не должен содержать секретов.
type ErrorInfo struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Metadata - метаданные выполнения.
type Metadata struct {
	DurationMs int64  `json:"duration_ms" yaml:"duration_ms"`
	TraceID    string `json:"trace_id,omitempty" yaml:"trace_id,omitempty"`
	// APIVersion: версия формата вывода, сейчас "v1".
	APIVersion string       `json:"api_version" yaml:"api_version"`
	Summary    *SummaryInfo `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// withSummary возвращает копию result, в которой Summary перенесён
// в Metadata.Summary. Исходный result не изменяется.
func withSummary(result *Result) *Result {
	out := *result
	if result.Summary != nil && result.Metadata != nil {
		meta := *result.Metadata
		meta.Summary = result.Summary
		out.Metadata = &meta
	}
	return &out
}
