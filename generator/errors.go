package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateSectionTitle is reported when an outline repeats a section title.
	ErrDuplicateSectionTitle = errors.New("duplicate section title")
	// ErrEmptyCompletion is reported when a model returns only whitespace.
	ErrEmptyCompletion = errors.New("model returned empty output")
	// ErrInputAborted is reported when the user cancels an interactive prompt.
	ErrInputAborted = errors.New("input aborted")
)

// InputValidationError reports an audience level outside the accepted set.
// Attempts is set only when the collector gave up after a bounded number of tries.
type InputValidationError struct {
	Value    string
	Attempts int
}

func (e *InputValidationError) Error() string {
	levels := make([]string, len(AudienceLevels))
	for i, l := range AudienceLevels {
		levels[i] = string(l)
	}
	msg := fmt.Sprintf("invalid audience level %q (want one of %s)", e.Value, strings.Join(levels, ", "))
	if e.Attempts > 0 {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	return msg
}

// ModelInvocationError wraps a failed call to the completion or author capability.
type ModelInvocationError struct {
	Op  string
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed (%s): %v", e.Op, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// SchemaValidationError reports outline output that is not valid JSON or
// does not match the outline shape.
type SchemaValidationError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *SchemaValidationError) Error() string {
	if e.Err == nil {
		return "outline schema validation failed: " + e.Reason
	}
	return fmt.Sprintf("outline schema validation failed: %s: %v", e.Reason, e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// FileWriteError reports an output path that could not be created or written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// asModelError wraps err as a ModelInvocationError unless it already carries one.
func asModelError(op string, err error) error {
	var mie *ModelInvocationError
	if errors.As(err, &mie) {
		return err
	}
	return &ModelInvocationError{Op: op, Err: err}
}
