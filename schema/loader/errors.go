package loader

import (
	"errors"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// Sentinel catalog error kinds. Every [*CatalogError] wraps exactly one of
// these via errors.Is.
var (
	ErrIO                 = errors.New("catalog: i/o error")
	ErrYAMLParse          = errors.New("catalog: yaml parse error")
	ErrInheritanceTarget  = errors.New("catalog: inheritance target missing")
	ErrValidation         = errors.New("catalog: validation error")
	ErrRequiredFieldMissing = errors.New("catalog: required field missing in schema file")
)

// CatalogError is the fatal error returned by [Load] and [Reload]. It
// carries the offending path (when known) and, for [ErrValidation],
// every consistency-check violation found across the whole catalog rather
// than just the first.
type CatalogError struct {
	Kind  error
	Path  string
	Sub   *multierror.Error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Sub != nil && e.Sub.Len() > 0 {
		if e.Path != "" {
			return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Sub)
		}

		return fmt.Sprintf("%v: %v", e.Kind, e.Sub)
	}

	if e.Path != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}

	return e.Kind.Error()
}

// Unwrap lets errors.Is/As match against e.Kind.
func (e *CatalogError) Unwrap() error {
	return e.Kind
}

// Messages returns the individual sub-error messages, in order. Every
// [*CatalogError] this package builds carries at least one; an
// [ErrValidation]-kind error carries one per consistency violation.
func (e *CatalogError) Messages() []string {
	if e.Sub == nil {
		return nil
	}

	msgs := make([]string, 0, e.Sub.Len())
	for _, err := range e.Sub.Errors {
		msgs = append(msgs, err.Error())
	}

	return msgs
}

func ioErr(path string, cause error) error {
	return &CatalogError{Kind: ErrIO, Path: path, Sub: multierror.Append(nil, cause)}
}

func yamlErr(path string, cause error) error {
	return &CatalogError{Kind: ErrYAMLParse, Path: path, Sub: multierror.Append(nil, cause)}
}

func inheritanceErr(entityType, baseName string) error {
	return &CatalogError{
		Kind: ErrInheritanceTarget,
		Path: entityType,
		Sub:  multierror.Append(nil, fmt.Errorf("base schema %q not found", baseName)),
	}
}

func requiredFieldErr(path, field string) error {
	return &CatalogError{
		Kind: ErrRequiredFieldMissing,
		Path: path,
		Sub:  multierror.Append(nil, fmt.Errorf("missing required key %q", field)),
	}
}

// validationErr builds a single ErrValidation CatalogError aggregating all
// consistency-check messages found across the catalog.
func validationErr(messages []string) error {
	merr := &multierror.Error{}
	for _, m := range messages {
		merr = multierror.Append(merr, errors.New(m))
	}

	return &CatalogError{Kind: ErrValidation, Sub: merr}
}
