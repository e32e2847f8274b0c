package checker

import "errors"

// ErrUnexpectedOutput is returned when a check prints neither marker.
var ErrUnexpectedOutput = errors.New("unexpected check output")
