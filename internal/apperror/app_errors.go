package apperror

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrEmptySessionID = errors.New("session id is empty")
	ErrUnknownStorage = errors.New("unknown storage")
)
