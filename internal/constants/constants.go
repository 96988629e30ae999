// Package constants содержит константы, используемые в проекте plancheck.
// Константы сгруппированы по назначению: сообщения, команды, переменные окружения.
package constants

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)

// Константы команд
const (
	// ActHelp - вывод списка команд
	ActHelp = "help"
	// ActVersion - вывод версии приложения
	ActVersion = "version"
	// ActPlanList - вывод списка тест-планов
	ActPlanList = "plan-list"
	// ActPlanShow - вывод одного тест-плана по id
	ActPlanShow = "plan-show"
	// ActPlanValidate - проверка ссылок тест-планов
	ActPlanValidate = "plan-validate"
	// ActValidate - устаревшее имя plan-validate
	ActValidate = "validate"
	// ActPlanExport - выгрузка реестра тест-планов
	ActPlanExport = "plan-export"
	// ActPlanSession - построение порядка запуска плана с готовностью заданий
	ActPlanSession = "plan-session"
)

// Константы переменных окружения режимов вывода
const (
	// EnvOutputFormat - формат вывода результата (json, text, yaml)
	EnvOutputFormat = "PC_OUTPUT_FORMAT"
)

// APIVersion - версия формата результата
const APIVersion = "v1"

// UnitTestPlan - значение поля unit для тест-плана
const UnitTestPlan = "test plan"

// SourceExtension - расширение файлов с определениями юнитов
const SourceExtension = ".pxu"

// Коды завершения процесса
const (
	ExitOK             = 0
	ExitUnknownCommand = 2
	ExitConfigError    = 5
	ExitCommandFailed  = 8
)
