package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound means the source could not be opened or read.
	ErrInputNotFound = errors.New("input not found")
	// ErrSchemaMismatch means a configured subject or result column is absent.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Error codes carried by LoadError
const (
	CodeInputNotFound  = "INPUT_NOT_FOUND"
	CodeSchemaMismatch = "SCHEMA_MISMATCH"
)

// LoadError describes why a source could not be turned into a table. It
// matches its Kind sentinel under errors.Is.
type LoadError struct {
	Code    string
	Source  string
	Kind    error
	Missing []string // SCHEMA_MISMATCH only
	Err     error
}

func (e *LoadError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("[%s] %s: missing columns %v", e.Code, e.Source, e.Missing)
	case e.Err != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Source, e.Err)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Source)
	}
}

func (e *LoadError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func inputNotFound(source string, err error) *LoadError {
	return &LoadError{Code: CodeInputNotFound, Source: source, Kind: ErrInputNotFound, Err: err}
}

func schemaMismatch(source string, missing []string) *LoadError {
	return &LoadError{Code: CodeSchemaMismatch, Source: source, Kind: ErrSchemaMismatch, Missing: missing}
}
