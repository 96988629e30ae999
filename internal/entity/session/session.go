// Package session строит по тест-плану список запуска заданий и отслеживает
// готовность каждого задания к запуску с учётом зависимостей, ресурсов
// и результатов, полученных от внешнего исполнителя.
package session

import (
	"github.com/google/uuid"

	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/entity/unit"
)

// JobState - состояние задания в сессии.
type JobState struct {
	Job        *unit.Unit
	Inhibitors []Inhibitor
	Outcome    Outcome
}

// CanStart сообщает, может ли задание быть запущено сейчас.
func (s *JobState) CanStart() bool {
	return len(s.Inhibitors) == 0
}

// ReadinessDescription возвращает описание готовности для человека.
func (s *JobState) ReadinessDescription() string {
	return describe(s.Inhibitors)
}

// Session - список запуска одного тест-плана и состояния всех заданий каталога.
type Session struct {
	ID     uuid.UUID
	PlanID string

	runList []*unit.Unit
	desired map[string]bool
	states  map[string]*JobState
	catalog *unit.Catalog
	ns      string
}

// Resolve строит сессию для плана planID.
//
// Список запуска: сначала bootstrap_include, затем include; вложенные планы
// раскрываются на месте, шаблоны раскрываются в задания каталога в порядке
// каталога. Зависимости (depends, after, ресурсные задания из requires)
// добавляются в список и ставятся перед зависимыми заданиями.
//
// Ошибки: *testplan.NotFoundError для неизвестного плана,
// *testplan.UnresolvedReferenceError для ссылок, не найденных в каталоге,
// *CycleError и *MissingDependencyError для ошибок графа зависимостей.
func Resolve(reg *testplan.Registry, catalog *unit.Catalog, planID string) (*Session, error) {
	plan, err := reg.Lookup(planID)
	if err != nil {
		return nil, err
	}

	x := &expander{reg: reg, catalog: catalog, seen: make(map[string]bool)}
	if err := x.expandPlan(plan, nil); err != nil {
		return nil, err
	}
	if len(x.problems) > 0 {
		return nil, &testplan.UnresolvedReferenceError{Problems: x.problems}
	}

	runList, err := order(catalog, reg.Namespace(), x.jobs)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:      uuid.New(),
		PlanID:  plan.ID,
		runList: runList,
		desired: make(map[string]bool, len(runList)),
		states:  make(map[string]*JobState),
		catalog: catalog,
		ns:      reg.Namespace(),
	}
	for _, j := range runList {
		s.desired[j.ID] = true
	}
	for _, j := range catalog.Jobs() {
		s.states[j.ID] = &JobState{Job: j}
	}
	s.updateReadiness()
	return s, nil
}

// RunList возвращает состояния заданий списка запуска в порядке запуска.
func (s *Session) RunList() []*JobState {
	out := make([]*JobState, 0, len(s.runList))
	for _, j := range s.runList {
		out = append(out, s.states[j.ID])
	}
	return out
}

// State возвращает состояние любого задания каталога.
func (s *Session) State(jobID string) (*JobState, bool) {
	st, ok := s.states[jobID]
	return st, ok
}

// RecordOutcome записывает результат задания и пересчитывает готовность.
func (s *Session) RecordOutcome(jobID string, outcome Outcome) error {
	st, ok := s.states[jobID]
	if !ok {
		return &UnknownJobError{JobID: jobID}
	}
	st.Outcome = outcome
	s.updateReadiness()
	return nil
}

// updateReadiness пересчитывает блокировки всех заданий.
func (s *Session) updateReadiness() {
	for id, st := range s.states {
		if !s.desired[id] {
			st.Inhibitors = []Inhibitor{mustInhibitor(Undesired, "", "")}
			continue
		}
		st.Inhibitors = s.inhibitorsFor(st.Job)
	}
}

func (s *Session) inhibitorsFor(job *unit.Unit) []Inhibitor {
	var inh []Inhibitor
	for _, ref := range job.Depends {
		dep := s.jobID(job, ref)
		switch s.outcomeOf(dep) {
		case OutcomeNone:
			inh = append(inh, mustInhibitor(PendingDep, dep, ""))
		case OutcomePass:
		default:
			inh = append(inh, mustInhibitor(FailedDep, dep, ""))
		}
	}
	for _, ref := range job.After {
		dep := s.jobID(job, ref)
		if s.outcomeOf(dep) == OutcomeNone {
			inh = append(inh, mustInhibitor(PendingDep, dep, ""))
		}
	}
	for _, ref := range job.ResourceJobs() {
		res := s.jobID(job, ref)
		outcome := s.outcomeOf(res)
		if outcome == OutcomePass {
			continue
		}
		cause := FailedResource
		if outcome == OutcomeNone {
			cause = PendingResource
		}
		for _, expr := range job.RequiresFor(ref) {
			inh = append(inh, mustInhibitor(cause, res, expr))
		}
	}
	return inh
}

// jobID возвращает id задания каталога, на которое ссылается ref из полей
// задания job. Неразрешимая ссылка возвращается как есть.
func (s *Session) jobID(job *unit.Unit, ref string) string {
	if j, ok := findJob(s.catalog, s.ns, job, ref); ok {
		return j.ID
	}
	return ref
}

func (s *Session) outcomeOf(jobID string) Outcome {
	if st, ok := s.states[jobID]; ok {
		return st.Outcome
	}
	return OutcomeNone
}

// Summary - сводка по списку запуска.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Ready   int `json:"ready" yaml:"ready"`
	Blocked int `json:"blocked" yaml:"blocked"`
	Done    int `json:"done" yaml:"done"`
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Summary подсчитывает состояния заданий списка запуска.
// Задание с результатом считается выполненным и не учитывается в Ready/Blocked.
func (s *Session) Summary() Summary {
	var sum Summary
	for _, st := range s.RunList() {
		sum.Total++
		switch {
		case st.Outcome != OutcomeNone:
			sum.Done++
			if st.Outcome == OutcomePass {
				sum.Passed++
			} else if st.Outcome == OutcomeFail || st.Outcome == OutcomeCrash {
				sum.Failed++
			}
		case st.CanStart():
			sum.Ready++
		default:
			sum.Blocked++
		}
	}
	return sum
}
