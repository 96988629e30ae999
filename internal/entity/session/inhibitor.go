package session

import (
	"errors"
	"fmt"
	"strings"
)

// Cause - причина, по которой задание не может быть запущено.
type Cause int

// Причины блокировки задания.
const (
	// Undesired: задание не входит в список запуска.
	Undesired Cause = iota
	// PendingDep: зависимость ещё не выполнялась.
	PendingDep
	// FailedDep: зависимость завершилась неуспешно.
	FailedDep
	// PendingResource: ресурсное задание ещё не выполнялось.
	PendingResource
	// FailedResource: выражение requires ложно.
	FailedResource
)

var causeNames = map[Cause]string{
	Undesired:       "UNDESIRED",
	PendingDep:      "PENDING_DEP",
	FailedDep:       "FAILED_DEP",
	PendingResource: "PENDING_RESOURCE",
	FailedResource:  "FAILED_RESOURCE",
}

// String возвращает имя причины (UNDESIRED, PENDING_DEP ...).
func (c Cause) String() string {
	if name, ok := causeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cause(%d)", int(c))
}

// MarshalText реализует encoding.TextMarshaler для JSON и YAML.
func (c Cause) MarshalText() ([]byte, error) {
	if _, ok := causeNames[c]; !ok {
		return nil, fmt.Errorf("неизвестная причина блокировки %d", int(c))
	}
	return []byte(c.String()), nil
}

// ErrInvalidInhibitor - нарушены правила построения Inhibitor.
var ErrInvalidInhibitor = errors.New("некорректная блокировка задания")

// Inhibitor - одна причина, препятствующая запуску задания.
type Inhibitor struct {
	Cause Cause `json:"cause" yaml:"cause"`
	// RelatedJob: задание, из-за которого возникла блокировка.
	RelatedJob string `json:"related_job,omitempty" yaml:"related_job,omitempty"`
	// RelatedExpression: выражение requires для ресурсных причин.
	RelatedExpression string `json:"related_expression,omitempty" yaml:"related_expression,omitempty"`
}

// NewInhibitor создаёт блокировку с проверкой правил:
// для всех причин, кроме Undesired, обязательно связанное задание,
// для ресурсных причин дополнительно обязательно выражение.
func NewInhibitor(cause Cause, relatedJob, relatedExpression string) (Inhibitor, error) {
	if _, ok := causeNames[cause]; !ok {
		return Inhibitor{}, fmt.Errorf("%w: неподдерживаемая причина %d", ErrInvalidInhibitor, int(cause))
	}
	if cause != Undesired && relatedJob == "" {
		return Inhibitor{}, fmt.Errorf("%w: для %s требуется связанное задание", ErrInvalidInhibitor, cause)
	}
	if (cause == PendingResource || cause == FailedResource) && relatedExpression == "" {
		return Inhibitor{}, fmt.Errorf("%w: для %s требуется выражение", ErrInvalidInhibitor, cause)
	}
	return Inhibitor{Cause: cause, RelatedJob: relatedJob, RelatedExpression: relatedExpression}, nil
}

// mustInhibitor используется там, где аргументы заведомо корректны.
func mustInhibitor(cause Cause, relatedJob, relatedExpression string) Inhibitor {
	inh, err := NewInhibitor(cause, relatedJob, relatedExpression)
	if err != nil {
		panic(err)
	}
	return inh
}

// String возвращает описание блокировки для человека.
func (i Inhibitor) String() string {
	switch i.Cause {
	case Undesired:
		return "undesired"
	case PendingDep:
		return fmt.Sprintf("required dependency %q did not run yet", i.RelatedJob)
	case FailedDep:
		return fmt.Sprintf("required dependency %q has failed", i.RelatedJob)
	case PendingResource:
		return fmt.Sprintf("resource expression %q could not be evaluated because the resource it depends on did not run yet", i.RelatedExpression)
	case FailedResource:
		return fmt.Sprintf("resource expression %q evaluates to false", i.RelatedExpression)
	default:
		return i.Cause.String()
	}
}

func describe(inhibitors []Inhibitor) string {
	if len(inhibitors) == 0 {
		return "job can be started"
	}
	parts := make([]string, 0, len(inhibitors))
	for _, inh := range inhibitors {
		parts = append(parts, inh.String())
	}
	return "job cannot be started: " + strings.Join(parts, ", ")
}
