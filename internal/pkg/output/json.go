package output

import (
	"encoding/json"
	"io"
)

// JSONWriter пишет Result в JSON с отступами.
type JSONWriter struct{}

// NewJSONWriter создаёт JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Write сериализует result в w. Входной result не изменяется.
func (j *JSONWriter) Write(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if result == nil {
		return encoder.Encode(result)
	}
	return encoder.Encode(withSummary(result))
}
