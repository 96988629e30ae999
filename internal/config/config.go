// Package config загружает настройки plancheck из переменных окружения PC_*,
// входных параметров GitHub Actions (INPUT_*) и необязательного app.yaml.
//
// Приоритет значений: переменные окружения, затем app.yaml, затем значения
// по умолчанию.
package config

import (
	"log/slog"
	"strings"
)

// InputParams - входные параметры GitHub Actions.
// Используются, если соответствующая переменная PC_* не задана.
type InputParams struct {
	GHACommand   string `env:"INPUT_COMMAND" env-default:""`
	GHAPlan      string `env:"INPUT_PLAN" env-default:""`
	GHASources   string `env:"INPUT_SOURCES" env-default:""`
	GHANamespace string `env:"INPUT_NAMESPACE" env-default:""`
	GHAResults   string `env:"INPUT_RESULTS" env-default:""`
	GHALogLevel  string `env:"INPUT_LOGLEVEL" env-default:""`
}

// AppConfig - содержимое app.yaml.
type AppConfig struct {
	Sources SourceConfig  `yaml:"sources"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// Config хранит настройки одного запуска.
type Config struct {
	// Command: имя команды (plan-list, plan-validate, ...).
	Command string `env:"PC_COMMAND" env-default:""`
	// PlanID: id тест-плана для plan-show и plan-session.
	PlanID string `env:"PC_PLAN" env-default:""`
	// ResultsFile: YAML с результатами заданий для plan-session.
	ResultsFile string `env:"PC_RESULTS" env-default:""`
	// OutputFormat: формат вывода результата (text, json или yaml).
	OutputFormat string `env:"PC_OUTPUT_FORMAT" env-default:"text"`
	// ConfigApp: путь к app.yaml.
	ConfigApp string `env:"PC_CONFIG_APP" env-default:""`

	Logger *slog.Logger

	// Настройки приложения (из app.yaml)
	AppConfig *AppConfig

	SourceConfig  *SourceConfig
	LoggingConfig *LoggingConfig
	MetricsConfig *MetricsConfig
	TracingConfig *TracingConfig
}

// PlanSources возвращает пути к источникам тест-планов.
func (cfg *Config) PlanSources() []string {
	if cfg.SourceConfig == nil {
		return nil
	}
	return cfg.SourceConfig.Paths
}

// UnitSources возвращает пути к источникам юнитов.
// Если PC_UNIT_SOURCES не задан, юниты читаются из тех же источников, что и планы.
func (cfg *Config) UnitSources() []string {
	if cfg.SourceConfig == nil {
		return nil
	}
	if len(cfg.SourceConfig.UnitPaths) > 0 {
		return cfg.SourceConfig.UnitPaths
	}
	return cfg.SourceConfig.Paths
}

// splitList разбивает список через запятую, отбрасывая пустые элементы.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// cleanList убирает пробелы и пустые элементы после разбора cleanenv.
func cleanList(in []string) []string {
	return splitList(strings.Join(in, ","))
}
