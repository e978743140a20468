package backup

import "errors"

// Reasons an import is rejected. A ValidationError wraps exactly one.
var (
	ErrNotObject     = errors.New("file does not contain valid data")
	ErrUnknownFormat = errors.New("unrecognized file format")
	ErrNewerVersion  = errors.New("file was exported by a newer version")
	ErrBadStats      = errors.New("stats section is invalid")
	ErrBadBookmarks  = errors.New("bookmarks section is invalid")
	ErrFileTooLarge  = errors.New("file is too large")
	ErrNotJSONFile   = errors.New("file is not a .json file")
	ErrInvalidJSON   = errors.New("file is not valid JSON")
)

// ValidationError reports why an import was rejected.
type ValidationError struct {
	Kind   error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalid(kind error, detail string) error {
	return &ValidationError{Kind: kind, Detail: detail}
}
