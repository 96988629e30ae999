package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger создаёт Logger по конфигурации.
// При Output="file" вывод ротируется через lumberjack; при любой проблеме
// с файлом логи пишутся в stderr с предупреждением.
func NewLogger(config Config) Logger {
	return NewLoggerWithWriter(config, writerFor(config))
}

// NewLoggerWithWriter создаёт Logger, пишущий в w.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}
	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

func writerFor(config Config) io.Writer {
	switch config.Output {
	case OutputStderr, "":
		return os.Stderr
	case OutputFile:
		return newLumberjackWriter(config)
	default:
		warn("неизвестный вывод логов %q, используется stderr", config.Output)
		return os.Stderr
	}
}

func newLumberjackWriter(config Config) io.Writer {
	if config.FilePath == "" {
		warn("вывод логов в файл без пути к файлу, используется stderr")
		return os.Stderr
	}
	if dir := filepath.Dir(config.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			warn("не удалось создать каталог логов %q: %v, используется stderr", dir, err)
			return os.Stderr
		}
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// warn пишет предупреждение напрямую в stderr: логгер ещё не создан.
func warn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...) //nolint:errcheck // bootstrap stderr
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
