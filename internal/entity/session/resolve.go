package session

import (
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/entity/unit"
)

// expander раскрывает ссылки плана в список желаемых заданий.
type expander struct {
	reg      *testplan.Registry
	catalog  *unit.Catalog
	jobs     []*unit.Unit
	seen     map[string]bool
	problems []testplan.Problem
}

func (x *expander) expandPlan(plan testplan.Entry, stack []string) error {
	for _, id := range stack {
		if id == plan.ID {
			return &CycleError{Path: append(append([]string{}, stack...), plan.ID)}
		}
	}
	stack = append(stack, plan.ID)

	for _, ref := range plan.References() {
		if nested, err := x.reg.Lookup(ref.ID); err == nil {
			if err := x.expandPlan(nested, stack); err != nil {
				return err
			}
			continue
		}
		jobs, known := x.match(ref.ID)
		if !known {
			x.problems = append(x.problems, testplan.Problem{
				PlanID:    plan.ID,
				Field:     ref.Field,
				Reference: ref.ID,
				Origin:    plan.Origin,
			})
			continue
		}
		for _, j := range jobs {
			if !x.seen[j.ID] {
				x.seen[j.ID] = true
				x.jobs = append(x.jobs, j)
			}
		}
	}
	return nil
}

// match находит задания по ссылке. known=false если ссылка не указывает
// ни на один юнит каталога. Ссылка на юнит другого типа (шаблон, категория)
// известна, но заданий не даёт.
func (x *expander) match(ref string) (jobs []*unit.Unit, known bool) {
	ns := x.reg.Namespace()
	for _, id := range testplan.Candidates(ns, ref) {
		if u, ok := x.catalog.Get(id); ok {
			if u.IsJob() {
				return []*unit.Unit{u}, true
			}
			return nil, true
		}
	}

	if !testplan.IsPattern(ref) {
		return nil, false
	}
	re, err := testplan.CompilePattern(ref)
	if err != nil {
		return nil, false
	}
	for _, u := range x.catalog.Units() {
		matched := re.MatchString(u.ID)
		if !matched && ns != "" {
			if idNS, local := testplan.SplitNamespace(u.ID); idNS == ns {
				matched = re.MatchString(local)
			}
		}
		if !matched {
			continue
		}
		known = true
		if u.IsJob() {
			jobs = append(jobs, u)
		}
	}
	return jobs, known
}

const (
	white = iota
	gray
	black
)

// findJob ищет задание, на которое ссылается поле depends, after или requires
// задания owner. Ссылка разрешается как include плана в пространстве имён ns,
// а затем в пространстве имён самого owner.
func findJob(catalog *unit.Catalog, ns string, owner *unit.Unit, ref string) (*unit.Unit, bool) {
	candidates := testplan.Candidates(ns, ref)
	if ownerNS, _ := testplan.SplitNamespace(owner.ID); ownerNS != "" && ownerNS != ns {
		candidates = append(candidates, testplan.Candidates(ownerNS, ref)[1:]...)
	}
	for _, id := range candidates {
		if j, ok := catalog.Job(id); ok {
			return j, true
		}
	}
	return nil, false
}

// order добавляет зависимости и упорядочивает задания так, чтобы каждое
// шло после своих зависимостей. Относительный порядок независимых заданий
// сохраняется.
func order(catalog *unit.Catalog, ns string, desired []*unit.Unit) ([]*unit.Unit, error) {
	color := make(map[string]int)
	var out []*unit.Unit
	var path []string

	var visit func(j *unit.Unit) error
	visit = func(j *unit.Unit) error {
		switch color[j.ID] {
		case black:
			return nil
		case gray:
			start := 0
			for i, id := range path {
				if id == j.ID {
					start = i
					break
				}
			}
			return &CycleError{Path: append(append([]string{}, path[start:]...), j.ID)}
		}
		color[j.ID] = gray
		path = append(path, j.ID)

		for _, depID := range dependencies(j) {
			dep, ok := findJob(catalog, ns, j, depID)
			if !ok {
				return &MissingDependencyError{JobID: j.ID, Dependency: depID}
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		color[j.ID] = black
		out = append(out, j)
		return nil
	}

	for _, j := range desired {
		if err := visit(j); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func dependencies(j *unit.Unit) []string {
	deps := make([]string, 0, len(j.Depends)+len(j.After))
	deps = append(deps, j.ResourceJobs()...)
	deps = append(deps, j.Depends...)
	deps = append(deps, j.After...)
	return deps
}
