package answerkey

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds. Every error returned by a stage wraps exactly one of these.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrMissingColumn   = errors.New("missing column")
	ErrMalformedFile   = errors.New("malformed file")
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrWriteError      = errors.New("write error")
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageLoad   Stage = "load"
	StageDecode Stage = "decode"
	StageWrite  Stage = "write"
)

// NoRow marks a StageError that is not tied to an input row.
const NoRow = -1

// StageError describes a failed pipeline stage.
// errors.Is matches both the Kind sentinel and the underlying cause.
type StageError struct {
	Stage Stage
	Kind  error
	Path  string
	Row   int // 0-based data row, NoRow when not applicable
	Value string
	Err   error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Stage, e.Kind)
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Row != NoRow {
		fmt.Fprintf(&b, ": row %d value %q", e.Row, e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func loadError(kind error, path string, cause error) error {
	return &StageError{Stage: StageLoad, Kind: kind, Path: path, Row: NoRow, Err: cause}
}

func decodeError(row int, value string, cause error) error {
	return &StageError{Stage: StageDecode, Kind: ErrInvalidEncoding, Row: row, Value: value, Err: cause}
}

func writeError(path string, cause error) error {
	return &StageError{Stage: StageWrite, Kind: ErrWriteError, Path: path, Row: NoRow, Err: cause}
}
