// Package parsererror defines the error types surfaced by the import pipeline.
package parsererror

import "fmt"

// UnknownFormatError is returned when no institution matcher recognised the
// file, neither by content markers nor by filename.
type UnknownFormatError struct {
	Filename string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown file format: %s", e.Filename)
}

// HeaderNotFoundError is returned when the institution was detected but the
// expected header row is missing from the sheet. This usually means the
// export layout has drifted.
type HeaderNotFoundError struct {
	Source string
	Marker string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: header row with %q not found", e.Source, e.Marker)
}

// PassphraseError is returned when every passphrase candidate failed to
// decode a protected workbook. Callers use it to prompt for a passphrase and
// retry. Err keeps the last underlying decode error for diagnostics; it is
// not the user-facing message.
type PassphraseError struct {
	Filename string
	Attempts int
	Err      error
}

func (e *PassphraseError) Error() string {
	return fmt.Sprintf("passphrase required for %s (%d candidates failed)", e.Filename, e.Attempts)
}

func (e *PassphraseError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the underlying decode error text, or "" when none was
// recorded.
func (e *PassphraseError) Diagnostic() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
