package config

import (
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/plancheck/internal/pkg/logging"
)

// LoggingConfig содержит настройки для логирования.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `yaml:"level" env:"PC_LOG_LEVEL" env-default:"info"`

	// Format - формат логов (json, text)
	Format string `yaml:"format" env:"PC_LOG_FORMAT" env-default:"text"`

	// Output - вывод логов (stderr, file)
	Output string `yaml:"output" env:"PC_LOG_OUTPUT" env-default:"stderr"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `yaml:"filePath" env:"PC_LOG_FILE_PATH"`

	// MaxSize - максимальный размер файла лога в MB
	MaxSize int `yaml:"maxSize" env:"PC_LOG_MAX_SIZE" env-default:"50"`

	// MaxBackups - максимальное количество backup файлов
	MaxBackups int `yaml:"maxBackups" env:"PC_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge - максимальный возраст backup файлов в днях
	MaxAge int `yaml:"maxAge" env:"PC_LOG_MAX_AGE" env-default:"14"`

	// Compress - сжимать ли backup файлы.
	// false из app.yaml перезаписывается env-default; выключить можно только
	// через PC_LOG_COMPRESS=false.
	Compress bool `yaml:"compress" env:"PC_LOG_COMPRESS" env-default:"true"`
}

// Logging переводит настройки в logging.Config. Пустые поля получают
// значения по умолчанию пакета logging.
func (c *LoggingConfig) Logging() logging.Config {
	out := logging.DefaultConfig()
	if c == nil {
		return out
	}
	if c.Level != "" {
		out.Level = c.Level
	}
	if c.Format != "" {
		out.Format = c.Format
	}
	if c.Output != "" {
		out.Output = c.Output
	}
	if c.FilePath != "" {
		out.FilePath = c.FilePath
	}
	// 0 MB для lumberjack смысла не имеет, поэтому нули заменяются значениями по умолчанию.
	if c.MaxSize > 0 {
		out.MaxSize = c.MaxSize
	}
	if c.MaxBackups > 0 {
		out.MaxBackups = c.MaxBackups
	}
	if c.MaxAge > 0 {
		out.MaxAge = c.MaxAge
	}
	out.Compress = c.Compress
	return out
}

// loadLoggingConfig загружает конфигурацию логирования из AppConfig и переменных окружения.
// Логгер ещё не создан, поэтому ошибки возвращаются вызывающему.
func loadLoggingConfig(cfg *Config, inputLevel string) (*LoggingConfig, error) {
	loggingConfig := &LoggingConfig{}
	if cfg.AppConfig != nil {
		*loggingConfig = cfg.AppConfig.Logging
	}
	// INPUT_LOGLEVEL имеет меньший приоритет, чем PC_LOG_LEVEL и app.yaml.
	if loggingConfig.Level == "" {
		loggingConfig.Level = inputLevel
	}

	if err := cleanenv.ReadEnv(loggingConfig); err != nil {
		return getDefaultLoggingConfig(), err
	}
	return loggingConfig, nil
}

// getDefaultLoggingConfig возвращает конфигурацию логирования по умолчанию.
func getDefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:      logging.DefaultLevel,
		Format:     logging.DefaultFormat,
		Output:     logging.DefaultOutput,
		FilePath:   logging.DefaultFilePath,
		MaxSize:    logging.DefaultMaxSize,
		MaxBackups: logging.DefaultMaxBackups,
		MaxAge:     logging.DefaultMaxAge,
		Compress:   logging.DefaultCompress,
	}
}

func logLoggingConfig(l *slog.Logger, c *LoggingConfig) {
	l.Debug("Конфигурация логирования",
		slog.String("level", c.Level),
		slog.String("format", c.Format),
		slog.String("output", c.Output),
	)
}
