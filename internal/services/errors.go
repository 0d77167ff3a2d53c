package services

import (
	"errors"
	"fmt"
)

// Collaborator names used in errors, logs and metrics.
const (
	CollaboratorLinkedIn = "linkedin"
	CollaboratorLLM      = "llm"
)

var (
	// ErrMissingState means no completed search is stored for the session.
	ErrMissingState = errors.New("no completed search for this session")
	// ErrSearchInProgress means another search holds the session lock.
	ErrSearchInProgress = errors.New("a search is already running for this session")
)

// CollaboratorError wraps any failure raised by the LinkedIn client or the
// text generator. It is never retried.
type CollaboratorError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Collaborator, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collaboratorErr(collaborator, op string, err error) error {
	return &CollaboratorError{Collaborator: collaborator, Op: op, Err: err}
}

// Cause returns the collaborator's own error when err wraps one, else err.
func Cause(err error) error {
	var ce *CollaboratorError
	if errors.As(err, &ce) && ce.Err != nil {
		return ce.Err
	}
	return err
}
