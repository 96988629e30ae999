package pxu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// SyntaxError описывает нарушение формата PXU.
type SyntaxError struct {
	Origin string
	Line   int
	Msg    string
}

// Error реализует интерфейс error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Origin, e.Line, e.Msg)
}

// keyPattern описывает строку поля: ключ без пробелов, двоеточие, необязательное значение.
var keyPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_\-.]*):(?:\s(.*)|)$`)

// maxLineSize ограничивает длину одной строки источника.
const maxLineSize = 1 << 20

// parser хранит состояние разбора одного источника.
type parser struct {
	origin  string
	records []Record
	current *Record
	// field: индекс поля, к которому относятся строки продолжения; -1 если нет.
	field int
	// pending: строки многострочного значения текущего поля.
	pending []string
}

// Parse разбирает источник r в последовательность записей.
// origin используется только в сообщениях об ошибках и позициях записей.
//
// Правила:
//   - блоки разделяются пустыми строками (в том числе состоящими из пробелов);
//   - строка "ключ: значение" начинает поле, "ключ:" начинает многострочное значение;
//   - строки с отступом продолжают значение предыдущего поля, отступ отбрасывается;
//   - строка продолжения "." означает пустую строку внутри значения;
//   - строки, начинающиеся с "#", являются комментариями;
//   - повторение ключа в одном блоке является ошибкой.
func Parse(r io.Reader, origin string) ([]Record, error) {
	p := &parser{origin: origin, field: -1}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if err := p.consume(line, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &SyntaxError{Origin: origin, Line: lineNo + 1, Msg: "слишком длинная строка"}
		}
		return nil, fmt.Errorf("чтение %s: %w", origin, err)
	}
	p.endRecord()
	return p.records, nil
}

func (p *parser) consume(line string, lineNo int) error {
	switch {
	case strings.TrimSpace(line) == "":
		p.endRecord()
		return nil
	case strings.HasPrefix(line, "#"):
		return nil
	case line[0] == ' ' || line[0] == '\t':
		if p.current == nil || p.field < 0 {
			return &SyntaxError{Origin: p.origin, Line: lineNo, Msg: "строка продолжения без поля"}
		}
		text := strings.TrimSpace(line)
		if text == "." {
			text = ""
		}
		p.pending = append(p.pending, text)
		return nil
	}

	m := keyPattern.FindStringSubmatch(line)
	if m == nil {
		return &SyntaxError{Origin: p.origin, Line: lineNo, Msg: fmt.Sprintf("ожидалась строка вида \"ключ: значение\", получено %q", line)}
	}
	key := m[1]
	value := strings.TrimSpace(m[2])

	p.flushField()
	if p.current == nil {
		p.current = &Record{Origin: p.origin, Line: lineNo}
	}
	if p.current.Has(key) {
		return &SyntaxError{Origin: p.origin, Line: lineNo, Msg: fmt.Sprintf("повторяющийся ключ %q", key)}
	}
	p.current.Fields = append(p.current.Fields, Field{Key: key, Value: value, Line: lineNo})
	p.field = len(p.current.Fields) - 1
	return nil
}

// flushField присоединяет накопленные строки продолжения к текущему полю.
func (p *parser) flushField() {
	if p.current == nil || p.field < 0 || len(p.pending) == 0 {
		p.pending = p.pending[:0]
		return
	}
	f := &p.current.Fields[p.field]
	lines := p.pending
	if f.Value != "" {
		lines = append([]string{f.Value}, lines...)
	}
	f.Value = strings.Join(lines, "\n")
	p.pending = nil
}

func (p *parser) endRecord() {
	p.flushField()
	if p.current != nil {
		p.records = append(p.records, *p.current)
	}
	p.current = nil
	p.field = -1
}

// Lines разбивает многострочное значение на непустые строки без пробелов по краям.
// Строки-комментарии ("# ...") пропускаются.
func Lines(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, l := range strings.Split(value, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, l)
	}
	return out
}
