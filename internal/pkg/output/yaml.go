package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter пишет Result в YAML.
type YAMLWriter struct{}

// NewYAMLWriter создаёт YAMLWriter.
func NewYAMLWriter() *YAMLWriter {
	return &YAMLWriter{}
}

// Write сериализует result в w. Входной result не изменяется.
func (y *YAMLWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(withSummary(result)); err != nil {
		return err
	}
	return encoder.Close()
}
