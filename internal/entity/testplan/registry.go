package testplan

import (
	"sort"
)

// Registry - набор тест-планов с поиском по id.
// Заполняется через LoadFrom/Load и далее используется только на чтение.
type Registry struct {
	entries   map[string]*Entry
	namespace string
	// skipForeign: пропускать блоки с unit, отличным от "test plan".
	skipForeign bool
}

// Option настраивает Registry.
type Option func(*Registry)

// WithNamespace задаёт пространство имён провайдера.
// Используется при проверке ссылок без "::".
func WithNamespace(ns string) Option {
	return func(r *Registry) { r.namespace = ns }
}

// WithForeignUnitsSkipped разрешает источникам содержать юниты других типов
// (job, template, category): такие блоки пропускаются вместо ParseError.
func WithForeignUnitsSkipped() Option {
	return func(r *Registry) { r.skipForeign = true }
}

// NewRegistry создаёт пустой реестр.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{entries: make(map[string]*Entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace возвращает пространство имён реестра.
func (r *Registry) Namespace() string {
	return r.namespace
}

// Len возвращает количество тест-планов.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup возвращает тест-план по id.
// Возвращает *NotFoundError если плана нет.
func (r *Registry) Lookup(id string) (Entry, error) {
	if e, ok := r.entries[id]; ok {
		return e.clone(), nil
	}
	if r.namespace != "" {
		if ns, local := SplitNamespace(id); ns == r.namespace {
			if e, ok := r.entries[local]; ok {
				return e.clone(), nil
			}
		}
	}
	return Entry{}, &NotFoundError{ID: id}
}

// Contains проверяет наличие тест-плана.
func (r *Registry) Contains(id string) bool {
	_, err := r.Lookup(id)
	return err == nil
}

// IDs возвращает отсортированный список id.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries возвращает глубокие копии всех записей, отсортированные по id.
func (r *Registry) Entries() []Entry {
	ids := r.IDs()
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.entries[id].clone())
	}
	return out
}
