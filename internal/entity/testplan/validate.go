package testplan

import (
	"regexp"
	"strings"
)

// patternMeta: символы, по которым ссылка считается шаблоном.
// Точка не входит: она встречается в обычных id ("camera.detect").
const patternMeta = `*+?[](){}|^$\`

// ValidateReferences проверяет, что каждая ссылка include и bootstrap_include
// всех планов реестра указывает на известный юнит.
//
// Возвращает nil, если все ссылки разрешены, иначе *UnresolvedReferenceError
// ровно с одной Problem на каждую неразрешённую ссылку. Проблемы упорядочены
// по id плана, внутри плана сначала bootstrap_include, затем include.
// Реестр и knownUnitIDs не изменяются.
func ValidateReferences(reg *Registry, knownUnitIDs []string) error {
	r := newResolver(reg.Namespace(), knownUnitIDs)

	var problems []Problem
	for _, id := range reg.IDs() {
		e := reg.entries[id]
		for _, ref := range e.References() {
			if r.resolves(ref.ID) {
				continue
			}
			problems = append(problems, Problem{
				PlanID:    e.ID,
				Field:     ref.Field,
				Reference: ref.ID,
				Origin:    e.Origin,
			})
		}
	}
	if len(problems) > 0 {
		return &UnresolvedReferenceError{Problems: problems}
	}
	return nil
}

// IsPattern сообщает, является ли ссылка шаблоном (регулярным выражением).
func IsPattern(ref string) bool {
	return strings.ContainsAny(ref, patternMeta)
}

// CompilePattern компилирует ссылку-шаблон как выражение, привязанное
// к началу и концу id.
func CompilePattern(ref string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + ref + ")$")
}

type resolver struct {
	namespace string
	known     map[string]struct{}
	ordered   []string
}

func newResolver(ns string, ids []string) *resolver {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &resolver{namespace: ns, known: known, ordered: ids}
}

func (r *resolver) has(id string) bool {
	_, ok := r.known[id]
	return ok
}

// resolves проверяет ссылку: сначала буквально, затем с учётом
// пространства имён, затем как шаблон.
func (r *resolver) resolves(ref string) bool {
	for _, id := range Candidates(r.namespace, ref) {
		if r.has(id) {
			return true
		}
	}
	if !IsPattern(ref) {
		return false
	}
	re, err := CompilePattern(ref)
	if err != nil {
		return false
	}
	for _, id := range r.ordered {
		if re.MatchString(id) {
			return true
		}
		if r.namespace != "" {
			if ns, local := SplitNamespace(id); ns == r.namespace && re.MatchString(local) {
				return true
			}
		}
	}
	return false
}
