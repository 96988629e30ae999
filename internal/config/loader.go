package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/plancheck/internal/constants"
	"github.com/Kargones/plancheck/internal/pkg/logging"
)

// GetInputParams получает входные параметры GitHub Actions из переменных окружения.
func GetInputParams() *InputParams {
	inputParams := &InputParams{}
	if err := cleanenv.ReadEnv(inputParams); err != nil {
		return nil
	}
	return inputParams
}

// MustLoad загружает конфигурацию из окружения и аргументов процесса.
func MustLoad() (*Config, error) {
	return Load(os.Args[1:])
}

// Load загружает конфигурацию. args: аргументы командной строки без имени
// программы; первый аргумент используется как команда, если PC_COMMAND
// и INPUT_COMMAND не заданы.
//
// Ошибки чтения app.yaml и невалидные настройки метрик и трейсинга не
// прерывают загрузку: используется значение по умолчанию или подсистема
// отключается с предупреждением в лог.
func Load(args []string) (*Config, error) {
	var cfg Config
	var err error

	if err = cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("не удалось прочитать переменные окружения в Config: %w", err)
	}

	inputParams := GetInputParams()
	if inputParams == nil {
		return nil, errors.New("не удалось получить входные параметры")
	}
	applyInputParams(&cfg, inputParams, args)

	// app.yaml читается до создания логгера: в нём могут быть настройки логирования.
	var appErr error
	if cfg.ConfigApp != "" {
		cfg.AppConfig, appErr = loadAppConfig(cfg.ConfigApp)
	}

	var logErr error
	if cfg.LoggingConfig, logErr = loadLoggingConfig(&cfg, inputParams.GHALogLevel); logErr != nil {
		cfg.LoggingConfig = getDefaultLoggingConfig()
	}
	l := logging.Slog(logging.NewLogger(cfg.LoggingConfig.Logging())).With(
		slog.Group("app", slog.String("version", constants.Version)),
	)
	cfg.Logger = l

	if appErr != nil {
		l.Warn("ошибка загрузки конфигурации приложения",
			slog.String("path", cfg.ConfigApp),
			slog.String("error", appErr.Error()),
		)
	}
	if logErr != nil {
		l.Warn("ошибка загрузки конфигурации логирования", slog.String("error", logErr.Error()))
	}
	logLoggingConfig(l, cfg.LoggingConfig)

	// Загрузка конфигурации источников
	if cfg.SourceConfig, err = loadSourceConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации источников", slog.String("error", err.Error()))
		cfg.SourceConfig = getDefaultSourceConfig()
	}
	if input := splitList(inputParams.GHASources); len(input) > 0 && os.Getenv("PC_SOURCES") == "" {
		cfg.SourceConfig.Paths = input
	}
	if cfg.SourceConfig.Namespace == "" {
		cfg.SourceConfig.Namespace = inputParams.GHANamespace
	}

	// Загрузка конфигурации метрик
	if cfg.MetricsConfig, err = loadMetricsConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации метрик", slog.String("error", err.Error()))
		cfg.MetricsConfig = getDefaultMetricsConfig()
	}
	if cfg.MetricsConfig.Enabled {
		if valErr := validateMetricsConfig(cfg.MetricsConfig); valErr != nil {
			l.Warn("невалидная конфигурация метрик, метрики отключены",
				slog.String("error", valErr.Error()),
				slog.String("reason", "validation_failed"),
			)
			cfg.MetricsConfig.Enabled = false
		}
	}

	// Загрузка конфигурации трейсинга
	if cfg.TracingConfig, err = loadTracingConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации трейсинга", slog.String("error", err.Error()))
		cfg.TracingConfig = getDefaultTracingConfig()
	}
	if cfg.TracingConfig.Enabled {
		if valErr := validateTracingConfig(cfg.TracingConfig); valErr != nil {
			l.Warn("невалидная конфигурация трейсинга, трейсинг отключён",
				slog.String("error", valErr.Error()),
				slog.String("reason", "validation_failed"),
			)
			cfg.TracingConfig.Enabled = false
		}
	}

	return &cfg, nil
}

// applyInputParams заполняет пустые поля из INPUT_* и аргументов командной строки.
func applyInputParams(cfg *Config, in *InputParams, args []string) {
	if cfg.Command == "" {
		cfg.Command = in.GHACommand
	}
	if cfg.Command == "" && len(args) > 0 {
		cfg.Command = args[0]
	}
	cfg.Command = strings.TrimSpace(cfg.Command)
	if cfg.PlanID == "" {
		cfg.PlanID = in.GHAPlan
	}
	if cfg.ResultsFile == "" {
		cfg.ResultsFile = in.GHAResults
	}
}

// loadAppConfig загружает конфигурацию приложения из app.yaml
func loadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения app.yaml: %w", err)
	}

	var appConfig AppConfig
	if err = yaml.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("ошибка парсинга app.yaml: %w", err)
	}
	return &appConfig, nil
}
