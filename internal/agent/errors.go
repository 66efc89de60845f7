package agent

import (
	"errors"
	"fmt"
)

var (
	ErrNoLegalActions        = errors.New("no legal actions available")
	ErrCorruptedModel        = errors.New("corrupted model")
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter")
)

// CorruptedModelError reports a model snapshot that cannot be restored.
// It matches ErrCorruptedModel with errors.Is.
type CorruptedModelError struct {
	Path   string
	Field  string
	Reason string
	Err    error
}

func (e *CorruptedModelError) Error() string {
	where := e.Path
	if where == "" {
		where = "<memory>"
	}
	msg := fmt.Sprintf("corrupted model %s: %s: %s", where, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptedModelError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCorruptedModel}
	}
	return []error{ErrCorruptedModel, e.Err}
}

func corrupted(field, reason string) *CorruptedModelError {
	return &CorruptedModelError{Field: field, Reason: reason}
}
