package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *GameError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *GameError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// IllegalMove creates an illegal move error
func IllegalMove(reason string) *GameError {
	return New(ErrCodeIllegalMove, fmt.Sprintf("illegal move: %s", reason))
}

// IllegalBoardState creates an illegal board state error
func IllegalBoardState(reason string) *GameError {
	return New(ErrCodeIllegalBoardState, fmt.Sprintf("illegal board state: %s", reason))
}

// TurnOutOfOrder creates an out-of-order turn error
func TurnOutOfOrder(expected, got string) *GameError {
	return New(ErrCodeTurnOutOfOrder,
		fmt.Sprintf("turn is out of order: expected %s but got %s", expected, got)).
		WithDetail("expected", expected).
		WithDetail("got", got)
}

// GameLogParse creates a game log parse error for a specific line
func GameLogParse(line int, reason string) *GameError {
	return New(ErrCodeGameLogParse,
		fmt.Sprintf("game log line %d: %s", line, reason)).
		WithDetail("line", line)
}

// HookConfigInvalid creates an invalid hook configuration error
func HookConfigInvalid(reason string) *GameError {
	return New(ErrCodeHookConfigInvalid, fmt.Sprintf("invalid hook configuration: %s", reason))
}
