package apperrors

import "errors"

// ErrNotFound indicates that a referenced account, category, or transaction does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrConflict indicates a duplicate category name or a delete blocked by existing references.
var ErrConflict = errors.New("resource conflict")

// ErrValidation indicates that input data failed validation checks
// (invalid transaction type, non-positive amount, custom period without a range).
var ErrValidation = errors.New("validation error")

// ErrStore indicates an underlying storage failure. The enclosing atomic
// scope is aborted with no partial effect; the caller decides on retry.
var ErrStore = errors.New("store error")
