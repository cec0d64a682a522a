package service

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrCorruptRecord = errors.New("stored game record does not replay")
	ErrPersist       = errors.New("failed to persist game")
)
