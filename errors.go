package edf2cfs

import (
	"errors"
	"fmt"
)

// Sentinel errors for each job failure kind in the taxonomy (spec §7).
// A JobError wraps exactly one of these alongside whatever context
// (role, channel, unit, path) identifies the offending item, so
// callers can still errors.Is against the bare sentinel.
var (
	ErrAlreadyConverted    = errors.New("destination already converted")
	ErrEdfOpenFailure      = errors.New("could not open EDF file")
	ErrLabelNotFound       = errors.New("requested channel label not found")
	ErrUnsupportedUnit     = errors.New("unsupported physical unit")
	ErrChannelRateMismatch = errors.New("C3 and C4 sample rates disagree")
	ErrReadFailure         = errors.New("EDF sample extraction failed")
	ErrIntegrityFailure    = errors.New("integrity hash computation failed")
	ErrBufferTooSmall      = errors.New("compression output buffer too small")
	ErrOutOfMemory         = errors.New("allocation failed")
	ErrWriteFailure        = errors.New("destination could not be written")
)

// Role names one of the four logical channel bindings.
type Role string

const (
	RoleC3 Role = "C3"
	RoleC4 Role = "C4"
	RoleEL Role = "EL"
	RoleER Role = "ER"
)

// EdfOpenKind distinguishes the ways opening an EDF source can fail.
type EdfOpenKind string

const (
	EdfOpenMalformedHeader EdfOpenKind = "malformed_header"
	EdfOpenMissingFile     EdfOpenKind = "missing_file"
	EdfOpenTooManyOpen     EdfOpenKind = "too_many_open"
	EdfOpenReadError       EdfOpenKind = "read_error"
	EdfOpenAlreadyOpened   EdfOpenKind = "already_opened"
)

// JobError is the typed, per-job failure value returned by the
// pipeline. It never terminates the process (§7 propagation policy);
// the dispatcher captures it and moves on to the next job.
type JobError struct {
	Kind     error
	Role     Role
	Unit     string
	Channel  string
	Path     string
	OpenKind EdfOpenKind
	Err      error // wrapped cause, if any
}

func (e *JobError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrLabelNotFound):
		return fmt.Sprintf("%s: role %s", e.Kind, e.Role)
	case errors.Is(e.Kind, ErrUnsupportedUnit):
		return fmt.Sprintf("%s: role %s unit %q", e.Kind, e.Role, e.Unit)
	case errors.Is(e.Kind, ErrReadFailure):
		return fmt.Sprintf("%s: channel %s", e.Kind, e.Channel)
	case errors.Is(e.Kind, ErrWriteFailure):
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case errors.Is(e.Kind, ErrEdfOpenFailure):
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Path, e.OpenKind)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return e.Kind.Error()
	}
}

func (e *JobError) Unwrap() error {
	return e.Kind
}

// NewJobError constructs a JobError for a bare sentinel kind with no
// extra context (AlreadyConverted, ChannelRateMismatch, IntegrityFailure, ...).
func NewJobError(kind error) *JobError {
	return &JobError{Kind: kind}
}

// LabelNotFound builds the typed error for a missing role label.
func LabelNotFound(role Role) *JobError {
	return &JobError{Kind: ErrLabelNotFound, Role: role}
}

// UnsupportedUnit builds the typed error for an unrecognised unit prefix.
func UnsupportedUnit(role Role, unit string) *JobError {
	return &JobError{Kind: ErrUnsupportedUnit, Role: role, Unit: unit}
}

// ReadFailure builds the typed error for a mid-stream sample extraction failure.
func ReadFailure(channel string, cause error) *JobError {
	return &JobError{Kind: ErrReadFailure, Channel: channel, Err: cause}
}

// WriteFailure builds the typed error for a destination that could not be written.
func WriteFailure(path string, cause error) *JobError {
	return &JobError{Kind: ErrWriteFailure, Path: path, Err: cause}
}

// EdfOpenFailure builds the typed error for a source that could not be opened.
func EdfOpenFailure(path string, kind EdfOpenKind, cause error) *JobError {
	return &JobError{Kind: ErrEdfOpenFailure, Path: path, OpenKind: kind, Err: cause}
}
