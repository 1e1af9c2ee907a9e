package main

import "errors"

// Sentinel errors for the apply-error taxonomy spec.md §7 names, wrapped
// with fmt.Errorf at the point of use the way magicschema wraps
// ErrReadInput/ErrInvalidYAML.
var (
	errInvalidDescriptor   = errors.New("descriptor failed validation")
	errApplyValidationFail = errors.New("apply aborted: descriptor failed validation")
)
