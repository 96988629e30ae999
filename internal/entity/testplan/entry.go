// Package testplan загружает определения тест-планов Checkbox в реестр,
// предоставляет поиск по id и проверку ссылок include / bootstrap_include.
//
// Тест-план: именованный упорядоченный набор юнитов плюс необязательные
// bootstrap-юниты, которые должны быть выполнены до основных.
// Порядок includes значим (это порядок запуска), порядок записей в реестре: нет.
package testplan

import "strings"

// Ключи полей тест-плана в формате PXU.
const (
	KeyID               = "id"
	KeyUnit             = "unit"
	KeyName             = "_name"
	KeyNamePlain        = "name"
	KeyDescription      = "_description"
	KeyDescriptionPlain = "description"
	KeyBootstrapInclude = "bootstrap_include"
	KeyInclude          = "include"
)

// NamespaceSeparator разделяет пространство имён провайдера и id юнита.
const NamespaceSeparator = "::"

// Entry - запись тест-плана (TestPlanEntry).
// После загрузки не изменяется.
type Entry struct {
	// ID: уникальный в реестре идентификатор.
	ID string `json:"id" yaml:"id"`
	// Name: человекочитаемое название (_name).
	Name string `json:"name" yaml:"name"`
	// Description: свободное описание (_description).
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// BootstrapIncludes: юниты, выполняемые до includes. Может быть пустым.
	BootstrapIncludes []string `json:"bootstrap_includes" yaml:"bootstrap_includes"`
	// Includes: упорядоченный список юнитов плана.
	Includes []string `json:"includes" yaml:"includes"`
	// IncludeOverrides: хвост строки include после id (например
	// "certification-status=blocker"), ключ: id юнита.
	IncludeOverrides map[string]string `json:"include_overrides,omitempty" yaml:"include_overrides,omitempty"`
	// Origin: позиция блока в источнике ("файл:строка").
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// clone возвращает глубокую копию записи.
func (e *Entry) clone() Entry {
	c := *e
	c.BootstrapIncludes = append([]string{}, e.BootstrapIncludes...)
	c.Includes = append([]string{}, e.Includes...)
	if e.IncludeOverrides != nil {
		c.IncludeOverrides = make(map[string]string, len(e.IncludeOverrides))
		for k, v := range e.IncludeOverrides {
			c.IncludeOverrides[k] = v
		}
	}
	return c
}

// References возвращает все ссылки плана: сначала bootstrap, затем includes.
func (e *Entry) References() []Reference {
	refs := make([]Reference, 0, len(e.BootstrapIncludes)+len(e.Includes))
	for _, id := range e.BootstrapIncludes {
		refs = append(refs, Reference{Field: KeyBootstrapInclude, ID: id})
	}
	for _, id := range e.Includes {
		refs = append(refs, Reference{Field: KeyInclude, ID: id})
	}
	return refs
}

// Reference - одна ссылка плана на юнит.
type Reference struct {
	// Field: поле, в котором встретилась ссылка (include или bootstrap_include).
	Field string
	ID    string
}

// SplitNamespace разделяет "ns::id" на пространство имён и локальный id.
// Для id без пространства имён возвращает пустой ns.
func SplitNamespace(id string) (ns, local string) {
	if i := strings.LastIndex(id, NamespaceSeparator); i >= 0 {
		return id[:i], id[i+len(NamespaceSeparator):]
	}
	return "", id
}

// Candidates возвращает id, под которыми ссылка ref может встретиться среди
// известных юнитов: сама ссылка, ссылка в пространстве имён ns и, для ссылки
// из ns, её локальная часть. Порядок задаёт приоритет поиска.
func Candidates(ns, ref string) []string {
	out := []string{ref}
	if ns == "" {
		return out
	}
	if q := Qualify(ns, ref); q != ref {
		out = append(out, q)
	}
	if refNS, local := SplitNamespace(ref); refNS == ns {
		out = append(out, local)
	}
	return out
}

// Qualify добавляет пространство имён к id, если его там ещё нет.
func Qualify(ns, id string) string {
	if ns == "" || strings.Contains(id, NamespaceSeparator) {
		return id
	}
	return ns + NamespaceSeparator + id
}
