package contract

import "errors"

var (
	ErrUnauthorized    = errors.New("no authenticated identity")
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrValidation      = errors.New("validation failed")
)
