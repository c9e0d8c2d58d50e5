package filter

import (
	"errors"
	"fmt"
)

// ErrFilterEvaluation marks a filter that could not be applied to a table's
// schema or size.
var ErrFilterEvaluation = errors.New("filter evaluation error")

// EvaluationError describes why a filter could not be applied.
type EvaluationError struct {
	Column string
	Reason string
}

func (e *EvaluationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s", ErrFilterEvaluation, e.Reason)
	}
	return fmt.Sprintf("%s: column %q: %s", ErrFilterEvaluation, e.Column, e.Reason)
}

func (e *EvaluationError) Is(target error) bool { return target == ErrFilterEvaluation }
