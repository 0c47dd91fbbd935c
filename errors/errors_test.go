package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeIllegalMove, "worker cannot move there")
	if err.Error() != "ILLEGAL_MOVE: worker cannot move there" {
		t.Errorf("unexpected error string: %q", err.Error())
	}

	wrapped := Wrap(fmt.Errorf("boom"), ErrCodeInternal, "something failed")
	if wrapped.Error() != "INTERNAL_ERROR: something failed (caused by: boom)" {
		t.Errorf("unexpected wrapped error string: %q", wrapped.Error())
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := IllegalMove("occupied square")
	if !Is(err, ErrCodeIllegalMove) {
		t.Error("expected Is to match ILLEGAL_MOVE")
	}
	if Is(err, ErrCodeConfigNotFound) {
		t.Error("Is should not match a different code")
	}
	if GetCode(err) != ErrCodeIllegalMove {
		t.Errorf("unexpected code: %s", GetCode(err))
	}

	// Codes should survive fmt wrapping via Unwrap
	outer := fmt.Errorf("while applying turn: %w", err)
	if !Is(outer, ErrCodeIllegalMove) {
		t.Error("expected Is to unwrap and match")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("io failure")
	err := Wrap(cause, ErrCodeGameLogParse, "bad record")
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestWithDetail(t *testing.T) {
	err := TurnOutOfOrder("move", "build")
	if err.Details["expected"] != "move" || err.Details["got"] != "build" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}
