package session

import (
	"fmt"
	"strings"
)

// CycleError - циклическая зависимость между вложенными планами или заданиями.
type CycleError struct {
	// Path: цепочка id, первый и последний элементы совпадают.
	Path []string
}

// Error реализует интерфейс error.
func (e *CycleError) Error() string {
	return "циклическая зависимость: " + strings.Join(e.Path, " -> ")
}

// MissingDependencyError - задание ссылается на отсутствующее в каталоге задание.
type MissingDependencyError struct {
	JobID      string
	Dependency string
}

// Error реализует интерфейс error.
func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("задание %s зависит от отсутствующего задания %s", e.JobID, e.Dependency)
}

// UnknownJobError - результат записывается для задания, которого нет в каталоге.
type UnknownJobError struct {
	JobID string
}

// Error реализует интерфейс error.
func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("задание %s отсутствует в каталоге", e.JobID)
}
