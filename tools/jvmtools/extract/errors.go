package extract

import (
	"errors"
	"fmt"
)

// ErrMissingEntry is matched (via errors.Is) by every MissingEntryError.
var ErrMissingEntry = errors.New("required entry missing")

var errIsDir = errors.New("is a directory")

// A ConfigError is returned for problems with the inputs we were given, before any extraction happens;
// for example a jar that doesn't exist or a pattern that won't compile.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A MissingEntryError is returned when a required selector matches nothing in the archive.
type MissingEntryError struct {
	Archive  string
	Selector string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("no entry matching %s was found in %s", e.Selector, e.Archive)
}

// Is implements errors.Is
func (e *MissingEntryError) Is(target error) bool {
	return target == ErrMissingEntry
}

// An ExtractError wraps a filesystem failure while writing, moving or touching an output.
type ExtractError struct {
	Selector string
	Out      string
	Err      error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to write %s (for %s): %s", e.Out, e.Selector, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}
