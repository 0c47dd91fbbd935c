package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/santorini/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a santorini.yml or pass --config.\n")
		return err

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'santorini config validate' for details.\n")
		return err

	case errors.ErrCodeIllegalMove:
		if gameErr, ok := err.(*errors.GameError); ok {
			fmt.Fprintf(os.Stderr, "❌ %s\n", gameErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		return err

	case errors.ErrCodeTurnOutOfOrder:
		if gameErr, ok := err.(*errors.GameError); ok {
			fmt.Fprintf(os.Stderr, "❌ Not your turn: expected %v, got %v\n",
				gameErr.Details["expected"], gameErr.Details["got"])
		}
		return err

	case errors.ErrCodeGameLogNotFound:
		if gameErr, ok := err.(*errors.GameError); ok {
			fmt.Fprintf(os.Stderr, "❌ Game log not found: %v\n", gameErr.Details["path"])
		}
		fmt.Fprintf(os.Stderr, "Start a new game with 'santorini play --save <path>'.\n")
		return err

	case errors.ErrCodeGameLogParse:
		fmt.Fprintf(os.Stderr, "❌ Corrupt game log: %v\n", err)
		return err

	case errors.ErrCodeHookConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No .pre-commit-config.yaml found in this repository.\n")
		return err

	case errors.ErrCodeHookConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid hook configuration: %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if gameErr, ok := err.(*errors.GameError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", gameErr.ToJSON())
			}
		}
		return err
	}
}
