package models

import (
	"errors"
)

// ErrorKind classifies failures surfaced to the user
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation covers local input checks; nothing was changed
	KindValidation
	// KindIO covers unreadable files and invalid project bundles
	KindIO
	// KindExternalService covers failures of the translation endpoint
	KindExternalService
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindExternalService:
		return "external service"
	default:
		return "unknown"
	}
}

// Validation failures
var (
	ErrEmptyQuery       = errors.New("search term is empty")
	ErrEmptyReplacement = errors.New("replacement is empty")
	ErrNoMatches        = errors.New("no entries match the search term")
	ErrKeyNotFound      = errors.New("key not found")
	ErrReplaceActive    = errors.New("a guided replace is in progress")
	ErrNoSession        = errors.New("no replace in progress")
	ErrNotCandidate     = errors.New("key is not a replace candidate")
	ErrNoSelection      = errors.New("no entry is selected")
	ErrEmptyTerm        = errors.New("glossary term and translation cannot be empty")
	ErrTermIndex        = errors.New("glossary index out of range")
	ErrEmptyText        = errors.New("nothing to translate")
)

// IO failures
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidProject    = errors.New("invalid project file")
	ErrNoSource          = errors.New("no source table loaded")
)

// Error carries a failure kind and the operation that produced it
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation wraps err as a validation failure of op
func Validation(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// IOError wraps err as an IO failure of op
func IOError(op string, err error) error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

// External wraps err as a failure of an external service
func External(op string, err error) error {
	return &Error{Kind: KindExternalService, Op: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsIO(err error) bool         { return KindOf(err) == KindIO }
func IsExternal(err error) bool   { return KindOf(err) == KindExternalService }
