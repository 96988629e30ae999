package command

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Ошибки регистрации обработчиков.
var (
	ErrNilHandler       = errors.New("command: nil handler")
	ErrEmptyName        = errors.New("command: empty handler name")
	ErrInvalidName      = errors.New("command: invalid handler name format (must be kebab-case)")
	ErrDuplicateHandler = errors.New("command: duplicate handler registration")
	ErrAliasSameAsName  = errors.New("command: deprecated name cannot be same as handler name")
)

var (
	// registry хранит зарегистрированные обработчики команд.
	// Имя команды -> обработчик.
	registry = make(map[string]Handler)
	// mu обеспечивает потокобезопасный доступ к registry.
	mu sync.RWMutex
	// commandNamePattern валидирует формат имени команды (strict kebab-case):
	// a-z, 0-9, одиночные дефисы, начинается с буквы.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// Register регистрирует обработчик команды в глобальном реестре.
// Вызывается из RegisterCmd() функций пакетов-обработчиков.
//
// Возвращает ошибку для nil handler, пустого имени, имени не в kebab-case
// и повторной регистрации.
//
// Пример использования:
//
//	func RegisterCmd() error {
//	    return command.Register(&MyHandler{})
//	}
func Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	name := h.Name()
	if name == "" {
		return ErrEmptyName
	}
	if !commandNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	mu.Lock()
	defer mu.Unlock()
	return put(name, h)
}

// put добавляет обработчик. Вызывающий держит mu.
func put(name string, h Handler) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	registry[name] = h
	return nil
}

// Get возвращает обработчик команды по имени.
// Возвращает (nil, false) если команда не зарегистрирована.
func Get(name string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[name]
	return h, ok
}

// Names возвращает отсортированный список имён всех зарегистрированных команд.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterWithAlias регистрирует обработчик под его основным именем и
// дополнительно под deprecated именем (если указано).
//
// При вызове deprecated имени пользователь получит warning в stderr
// с рекомендацией перехода на новое имя. Deprecated имя не проверяется
// на kebab-case: старые имена могли быть записаны иначе.
//
// Пример использования:
//
//	func RegisterCmd() error {
//	    // Регистрирует "plan-validate" и "validate" (deprecated)
//	    return command.RegisterWithAlias(&Handler{}, "validate")
//	}
func RegisterWithAlias(h Handler, deprecated string) error {
	if h == nil {
		return ErrNilHandler
	}
	if deprecated != "" && deprecated == h.Name() {
		return fmt.Errorf("%w: %s", ErrAliasSameAsName, deprecated)
	}
	if err := Register(h); err != nil {
		return err
	}
	if deprecated == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	return put(deprecated, &DeprecatedBridge{
		actual:     h,
		deprecated: deprecated,
		newName:    h.Name(),
	})
}

// Info содержит информацию о зарегистрированной команде.
type Info struct {
	// Name: основное имя команды (например, "plan-validate").
	Name string
	// DeprecatedAlias: deprecated-алиас команды (например, "validate").
	// Пустая строка если алиас отсутствует.
	DeprecatedAlias string
}

// ListAllWithAliases возвращает информацию обо всех зарегистрированных командах
// с их deprecated-алиасами. Deprecated bridges не включаются как отдельные записи:
// их алиасы указываются в поле DeprecatedAlias основной команды.
// Результат отсортирован по имени команды.
func ListAllWithAliases() []Info {
	mu.RLock()
	defer mu.RUnlock()

	aliasMap := make(map[string]string)
	for _, h := range registry {
		if bridge, ok := h.(*DeprecatedBridge); ok {
			aliasMap[bridge.newName] = bridge.deprecated
		}
	}

	result := make([]Info, 0, len(registry)-len(aliasMap))
	for name, h := range registry {
		if _, isBridge := h.(*DeprecatedBridge); isBridge {
			continue
		}
		result = append(result, Info{Name: name, DeprecatedAlias: aliasMap[name]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// clearRegistry очищает реестр. Используется только в тестах
// для обеспечения изоляции между тестами.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Handler)
}
