package session

import "fmt"

// Outcome - результат выполнения задания внешним исполнителем.
type Outcome string

// Результаты заданий.
const (
	OutcomeNone         Outcome = ""
	OutcomePass         Outcome = "pass"
	OutcomeFail         Outcome = "fail"
	OutcomeSkip         Outcome = "skip"
	OutcomeNotSupported Outcome = "not-supported"
	OutcomeCrash        Outcome = "crash"
	OutcomeUndecided    Outcome = "undecided"
)

// ParseOutcome проверяет строковое значение результата.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomePass, OutcomeFail, OutcomeSkip, OutcomeNotSupported, OutcomeCrash, OutcomeUndecided:
		return o, nil
	default:
		return OutcomeNone, fmt.Errorf("неизвестный результат задания %q", s)
	}
}

// UnmarshalText реализует encoding.TextUnmarshaler для файла результатов.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
