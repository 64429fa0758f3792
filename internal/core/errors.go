package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound       = "room_not_found"
	ErrCodeRoleCountMismatch  = "role_count_mismatch"
	ErrCodeCodespaceExhausted = "codespace_exhausted"
	ErrCodeBadRequest         = "bad_request"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrCodespaceExhausted = errors.New("codespace exhausted")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
