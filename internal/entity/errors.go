package entity

import "errors"

// Domain errors for vocabulary items, settings and review sessions.
var (
	ErrInvalidItemText     = errors.New("source and target text must be non-empty")
	ErrRecordNotFound      = errors.New("record not found")
	ErrUnknownSetting      = errors.New("unknown setting")
	ErrActiveInputDisabled = errors.New("active input mode is disabled")
	ErrCorruptBackup       = errors.New("corrupt backup")
)
