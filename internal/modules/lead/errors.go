package lead

import "errors"

var (
	ErrLeadNotFound    = errors.New("lead not found")
	ErrValidation      = errors.New("required lead fields missing")
	ErrNotConfirmed    = errors.New("delete not confirmed")
	ErrAlreadyAssigned = errors.New("lead already assigned to this user")
	ErrUnknownDocument = errors.New("unknown document key")
)
