package manager

import (
	"errors"
	"strings"
)

// Stage identifies which part of the generation pipeline failed. Each
// stage has its own error slot in GenerationState; StageOther is raised
// to the user through Prompter.Alert instead.
type Stage int

const (
	StageOther Stage = iota
	StageProfile
	StageNews
	StageGeneration
)

func (s Stage) String() string {
	switch s {
	case StageProfile:
		return "profile"
	case StageNews:
		return "news"
	case StageGeneration:
		return "generation"
	default:
		return "other"
	}
}

// StageError tags a pipeline failure with the stage that raised it.
type StageError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *StageError) Error() string {
	return e.Message
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, message string, err error) *StageError {
	return &StageError{Stage: stage, Message: message, Err: err}
}

// StageOf returns the stage err was raised in, or StageOther.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return StageOther
}

var (
	// ErrSuperseded is returned by a pipeline whose results were discarded
	// because a newer run of the same pipeline started.
	ErrSuperseded = errors.New("superseded by a newer request")

	ErrNotConnected = errors.New("social account not connected")
	ErrDeclined     = errors.New("action not confirmed")
	ErrDraftIndex   = errors.New("draft index out of range")
	ErrNoDraftEdit  = errors.New("no draft is being edited")
	ErrNoDayEdit    = errors.New("no scheduled day is being edited")
	ErrNotScheduled = errors.New("nothing scheduled for that day")
)

// AssignError reports the days whose content could not be assigned while
// creating a schedule. The other days were still assigned.
type AssignError struct {
	Failures map[string]error
	Days     []string
}

func (e *AssignError) Error() string {
	return "Failed to assign posts for: " + strings.Join(e.Days, ", ")
}

func (e *AssignError) Unwrap() []error {
	out := make([]error, 0, len(e.Days))
	for _, day := range e.Days {
		out = append(out, e.Failures[day])
	}
	return out
}

// messageError pairs the text shown to the user with its cause.
type messageError struct {
	message string
	err     error
}

func (e *messageError) Error() string {
	return e.message
}

func (e *messageError) Unwrap() error {
	return e.err
}
