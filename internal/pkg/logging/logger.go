// Package logging предоставляет структурированное логирование поверх log/slog.
// Логи пишутся только в stderr или файл: stdout зарезервирован
// для результата команды.
package logging

import "log/slog"

// Logger - интерфейс структурированного логгера.
//
//	logger.Info("Тест-планы загружены", "count", reg.Len())
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With возвращает логгер с дополнительными атрибутами.
	With(args ...any) Logger
}

// NopLogger игнорирует все сообщения. Используется в тестах.
type NopLogger struct{}

// NewNopLogger создаёт NopLogger.
func NewNopLogger() Logger {
	return &NopLogger{}
}

// Debug ничего не делает.
func (n *NopLogger) Debug(_ string, _ ...any) {}

// Info ничего не делает.
func (n *NopLogger) Info(_ string, _ ...any) {}

// Warn ничего не делает.
func (n *NopLogger) Warn(_ string, _ ...any) {}

// Error ничего не делает.
func (n *NopLogger) Error(_ string, _ ...any) {}

// With возвращает тот же NopLogger.
func (n *NopLogger) With(_ ...any) Logger {
	return n
}

// SlogAdapter - Logger поверх *slog.Logger. Методы уровней берутся
// у встроенного логгера, With переопределён под интерфейс Logger.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter оборачивает logger; nil заменяется на slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{Logger: logger}
}

// With возвращает адаптер над логгером с атрибутами args.
func (s *SlogAdapter) With(args ...any) Logger {
	return NewSlogAdapter(s.Logger.With(args...))
}

// Slog возвращает *slog.Logger для пакетов, принимающих slog напрямую
// (каталог юнитов, main). Для NopLogger вывод отбрасывается.
func Slog(l Logger) *slog.Logger {
	if a, ok := l.(*SlogAdapter); ok {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
