package output

import (
	"io"
	"strings"
)

// Поддерживаемые форматы вывода.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Writer записывает Result в заданном формате.
type Writer interface {
	Write(w io.Writer, result *Result) error
}

// NewWriter возвращает Writer для формата (без учёта регистра).
// Неизвестный формат выводится как текст.
func NewWriter(format string) Writer {
	switch NormalizeFormat(format) {
	case FormatJSON:
		return NewJSONWriter()
	case FormatYAML:
		return NewYAMLWriter()
	default:
		return NewTextWriter()
	}
}

// NormalizeFormat приводит формат к одному из FormatJSON, FormatYAML, FormatText.
// "yml" считается YAML, всё неизвестное: текстом.
func NormalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return FormatJSON
	case FormatYAML, "yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// IsStructured сообщает, является ли формат машиночитаемым (json или yaml).
func IsStructured(format string) bool {
	return NormalizeFormat(format) != FormatText
}
