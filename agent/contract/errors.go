package contract

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrUnknownIntent  = errors.New("unknown intent")
	ErrEmptyUtterance = errors.New("utterance is empty")
	ErrEmptySession   = errors.New("session id is empty")
)
