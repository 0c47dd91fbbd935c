package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Game rule errors
	ErrCodeIllegalMove       ErrorCode = "ILLEGAL_MOVE"
	ErrCodeIllegalBoardState ErrorCode = "ILLEGAL_BOARD_STATE"
	ErrCodeTurnOutOfOrder    ErrorCode = "TURN_OUT_OF_ORDER"

	// Game log errors
	ErrCodeGameLogNotFound ErrorCode = "GAME_LOG_NOT_FOUND"
	ErrCodeGameLogParse    ErrorCode = "GAME_LOG_PARSE"

	// Hook configuration errors
	ErrCodeHookConfigNotFound ErrorCode = "HOOK_CONFIG_NOT_FOUND"
	ErrCodeHookConfigInvalid  ErrorCode = "HOOK_CONFIG_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// GameError represents a structured error with context
type GameError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GameError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *GameError) WithDetail(key string, value interface{}) *GameError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *GameError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new GameError
func New(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GameError
func Wrap(err error, code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific GameError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	gameErr, ok := err.(*GameError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return gameErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	gameErr, ok := err.(*GameError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return gameErr.Code
}
