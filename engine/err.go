package engine

import (
	"errors"
	"fmt"
)

// ErrMissingDirectiveName / ErrDuplicateDirective are re-raised from the
// directive registry as ConfigError-kind failures (spec §7).
var (
	ErrUnknownStyleModule = errors.New("engine: unknown style module")
)

// ConvertTypeError is returned by Convert when handed a node that is neither
// a Document nor a DocumentFragment (spec §7 TypeError).
type ConvertTypeError struct {
	Got string
}

func (e *ConvertTypeError) Error() string {
	return fmt.Sprintf("engine: convert: expected Document or DocumentFragment, got %s", e.Got)
}

// IncludeIOError wraps a failure to read a file for include() (spec §7
// IOError). import_module reads no file and does not return it.
type IncludeIOError struct {
	Path string
	Err  error
}

func (e *IncludeIOError) Error() string {
	return fmt.Sprintf("engine: include %s: %s", e.Path, e.Err)
}

func (e *IncludeIOError) Unwrap() error { return e.Err }
