package crk

import (
	"errors"
	"fmt"
)

// ErrNoChanges indicates the compared content is byte-identical.
var ErrNoChanges = errors.New("no differing bytes found")

// ErrNoCommonFiles indicates a directory diff found no overlapping relative paths.
var ErrNoCommonFiles = errors.New("no files to compare discovered")

// FormatError indicates text that does not conform to the crk grammar.
// Text holds the offending line or section for diagnostics.
type FormatError struct {
	Msg  string
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:\n```\n%s\n```", e.Msg, e.Text)
}

// SizeMismatchError indicates two compared files differ in total length.
type SizeMismatchError struct {
	Original string
	Patched  string
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("files %v and %v are not the same size, can't diff them", e.Original, e.Patched)
}

// TypeMismatchError indicates a diff input was not the expected kind of path.
type TypeMismatchError struct {
	Path string
	Want string // "file" or "directory"
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v is not a %v", e.Path, e.Want)
}

// Warning is a non-fatal problem found while parsing or diffing. Operations
// that can recover locally return these instead of logging, so callers decide
// where diagnostics go.
type Warning struct {
	Subject string
	Msg     string
}

func (w Warning) String() string {
	if w.Subject == "" {
		return w.Msg
	}
	return fmt.Sprintf("%s: %s", w.Subject, w.Msg)
}
