package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	// Generation errors
	ErrABTestingDisabled = errors.New("A/B testing is disabled in configuration")
	ErrLLMRequestFailed  = errors.New("LLM request failed")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// GenerationError is returned when the pipeline exhausts its attempt budget
// without producing a document that passes validation.
type GenerationError struct {
	Attempts int
	Errors   []string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("unable to generate a valid plan after %d attempts: [%s]",
		e.Attempts, strings.Join(e.Errors, "; "))
}
