// Package testutil содержит вспомогательные функции для тестов.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout выполняет fn, перехватывая stdout, и возвращает вывод.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

// CaptureStderr выполняет fn, перехватывая stderr, и возвращает вывод.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}

func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe")

	old := *target
	*target = w
	defer func() { *target = old }()

	// Читаем параллельно: большой вывод не должен блокировать запись в pipe.
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r) //nolint:errcheck // test helper
		done <- buf.Bytes()
	}()

	fn()

	_ = w.Close() //nolint:errcheck // test helper pipe close
	return string(<-done)
}

// WriteFile создаёт файл name с содержимым content в каталоге dir
// и возвращает полный путь.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
