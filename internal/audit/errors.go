package audit

import (
	"errors"
	"fmt"
)

var (
	// ErrNoKnownFields means the upload carries none of the directory export fields
	ErrNoKnownFields = errors.New("none of the expected account fields are present")
	// ErrMissingRequiredField means a required field is absent from every record
	ErrMissingRequiredField = errors.New("required field missing from every record")
	// ErrMalformedInput means the upload is not a JSON array of objects
	ErrMalformedInput = errors.New("input is not a JSON array of objects")

	// ErrInvalidCategory is returned when selecting an unknown category
	ErrInvalidCategory = errors.New("invalid category")
	// ErrUnknownAction is returned for an unrecognized filter action
	ErrUnknownAction = errors.New("unknown filter action")
)

// InputError is a fatal problem with an upload as a whole. No partial
// result accompanies it.
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Reason == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is a fatal input error
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
