package domain

import "errors"

// ErrValidation marks bad user input. Callers re-prompt instead of
// aborting the active flow.
var ErrValidation = errors.New("validation failed")
