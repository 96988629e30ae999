package output

// SummaryInfo содержит сводку результата: ключевые метрики и предупреждения.
type SummaryInfo struct {
	KeyMetrics    []KeyMetric `json:"key_metrics,omitempty" yaml:"key_metrics,omitempty"`
	WarningsCount int         `json:"warnings_count" yaml:"warnings_count"`
	Warnings      []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// KeyMetric - одна метрика сводки.
type KeyMetric struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	// Unit: единица измерения, может быть пустой.
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// NewSummaryInfo создаёт пустую сводку.
func NewSummaryInfo() *SummaryInfo {
	return &SummaryInfo{KeyMetrics: []KeyMetric{}, Warnings: []string{}}
}

// AddMetric добавляет метрику.
func (s *SummaryInfo) AddMetric(name, value, unit string) {
	s.KeyMetrics = append(s.KeyMetrics, KeyMetric{Name: name, Value: value, Unit: unit})
}

// AddWarning добавляет предупреждение.
func (s *SummaryInfo) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
	s.WarningsCount++
}
