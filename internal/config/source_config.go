package config

import (
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
)

// SourceConfig описывает, откуда читаются определения юнитов.
type SourceConfig struct {
	// Paths: файлы и каталоги с тест-планами. Каталоги обходятся
	// рекурсивно, читаются файлы *.pxu.
	Paths []string `yaml:"paths" env:"PC_SOURCES" env-separator:"," env-default:"."`

	// UnitPaths: источники каталога юнитов. Если пусто, используются Paths.
	UnitPaths []string `yaml:"unitPaths" env:"PC_UNIT_SOURCES" env-separator:","`

	// Encoding: кодировка источников (utf-8, windows-1251, koi8-r, cp866,
	// iso-8859-1, auto).
	Encoding string `yaml:"encoding" env:"PC_SOURCE_ENCODING" env-default:"utf-8"`

	// Namespace: пространство имён провайдера для ссылок без "::".
	Namespace string `yaml:"namespace" env:"PC_NAMESPACE"`

	// SkipForeignUnits: пропускать в источниках планов юниты других типов.
	// Провайдеры обычно хранят задания и планы в одних файлах.
	SkipForeignUnits bool `yaml:"skipForeignUnits" env:"PC_SKIP_FOREIGN_UNITS" env-default:"true"`
}

// loadSourceConfig загружает настройки источников из AppConfig и переменных окружения.
// Переменные окружения PC_* переопределяют значения из AppConfig.
func loadSourceConfig(l *slog.Logger, cfg *Config) (*SourceConfig, error) {
	sourceConfig := &SourceConfig{}
	if cfg.AppConfig != nil {
		*sourceConfig = cfg.AppConfig.Sources
	}

	if err := cleanenv.ReadEnv(sourceConfig); err != nil {
		return nil, err
	}
	sourceConfig.Paths = cleanList(sourceConfig.Paths)
	sourceConfig.UnitPaths = cleanList(sourceConfig.UnitPaths)

	l.Debug("Конфигурация источников",
		slog.Any("paths", sourceConfig.Paths),
		slog.Any("unit_paths", sourceConfig.UnitPaths),
		slog.String("encoding", sourceConfig.Encoding),
		slog.String("namespace", sourceConfig.Namespace),
	)
	return sourceConfig, nil
}

func getDefaultSourceConfig() *SourceConfig {
	return &SourceConfig{
		Paths:            []string{"."},
		Encoding:         "utf-8",
		SkipForeignUnits: true,
	}
}
