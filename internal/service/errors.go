package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrStorageFailure    = errors.New("storage failure")
	ErrNoTranscript      = errors.New("call has no transcript")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrSessionTerminal   = errors.New("session is in a terminal state")
	ErrGradingInFlight   = errors.New("grading job is currently processing")
)
