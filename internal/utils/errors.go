package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-level errors. Services wrap these so controllers can pick a
// status code with errors.Is while the caller still gets a readable message.
var (
	ErrInvalidPayload = errors.New("invalid_payload")
	ErrStorage        = errors.New("storage_failure")
)

// InvalidPayloadf returns an error wrapping ErrInvalidPayload whose text is
// only the formatted message.
func InvalidPayloadf(format string, args ...any) error {
	return &messageError{msg: fmt.Sprintf(format, args...), kind: ErrInvalidPayload}
}

// Storagef wraps a backend failure as ErrStorage.
func Storagef(err error, format string, args ...any) error {
	return &messageError{
		msg:   fmt.Sprintf(format, args...) + ": " + err.Error(),
		kind:  ErrStorage,
		cause: err,
	}
}

type messageError struct {
	msg   string
	kind  error
	cause error
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Is(target error) bool { return target == e.kind }

func (e *messageError) Unwrap() error { return e.cause }

// HandleServiceError maps a service error onto the JSON error body.
func HandleServiceError(w http.ResponseWriter, err error, publicMessage string) {
	switch {
	case errors.Is(err, ErrInvalidPayload):
		RespondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil, err)
	default:
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, publicMessage, nil, err)
	}
}
