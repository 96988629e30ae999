// Package source находит файлы с определениями юнитов и декодирует их
// в UTF-8 перед разбором.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Kargones/plancheck/internal/constants"
)

// Поддерживаемые кодировки.
const (
	EncodingUTF8 = "utf-8"
	EncodingAuto = "auto"
)

// ErrUnknownEncoding возвращается для неподдерживаемой кодировки.
var ErrUnknownEncoding = errors.New("неизвестная кодировка")

// DecodeError - ошибка декодирования файла.
type DecodeError struct {
	Path     string
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: ошибка декодирования %s: %v", e.Path, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var charmaps = map[string]encoding.Encoding{
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"cp866":        charmap.CodePage866,
	"ibm866":       charmap.CodePage866,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// ValidateEncoding проверяет, что кодировка поддерживается.
func ValidateEncoding(name string) error {
	switch n := normalize(name); n {
	case EncodingUTF8, EncodingAuto:
		return nil
	default:
		if _, ok := charmaps[n]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
		return nil
	}
}

func normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "utf8":
		return EncodingUTF8
	}
	return n
}

// Decode переводит данные из кодировки name в UTF-8.
//
// "auto" оставляет валидный UTF-8 без изменений, иначе считает данные
// записанными в windows-1251.
func Decode(data []byte, name string) ([]byte, error) {
	n := normalize(name)
	switch n {
	case EncodingUTF8:
		return data, nil
	case EncodingAuto:
		if utf8.Valid(data) {
			return data, nil
		}
		n = "windows-1251"
	}
	enc, ok := charmaps[n]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
}

// Collect раскрывает пути в упорядоченный список файлов.
// Файлы берутся как есть, каталоги обходятся рекурсивно с отбором файлов
// *.pxu; файлы каталога сортируются по пути. Повторы отбрасываются.
func Collect(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("источник %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), constants.SourceExtension) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("обход каталога %s: %w", p, err)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// LoadFunc принимает содержимое одного источника. Сигнатура совпадает
// с testplan.Registry.LoadFrom и unit.Catalog.LoadFrom.
type LoadFunc func(r io.Reader, origin string) error

// Walk читает все файлы из paths, декодирует их и передаёт в load
// по порядку. Первая ошибка прерывает обход.
func Walk(paths []string, encodingName string, load LoadFunc) error {
	if err := ValidateEncoding(encodingName); err != nil {
		return err
	}
	files, err := Collect(paths)
	if err != nil {
		return err
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("чтение %s: %w", f, err)
		}
		decoded, err := Decode(data, encodingName)
		if err != nil {
			return &DecodeError{Path: f, Encoding: encodingName, Err: err}
		}
		if err := load(bytes.NewReader(decoded), f); err != nil {
			return err
		}
	}
	return nil
}
