package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(KindFormat, "bad header row")
	if KindOf(err) != KindFormat {
		t.Errorf("expected FORMAT, got %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("expected empty kind for a plain error")
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := New(KindPrerequisiteMissing, "no registration upload")
	outer := fmt.Errorf("summaries: %w", inner)
	if !IsKind(outer, KindPrerequisiteMissing) {
		t.Error("expected kind to survive fmt.Errorf wrapping")
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(KindFormat, cause, "decode csv")
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Error() != "FORMAT: decode csv: unexpected EOF" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNew_Message(t *testing.T) {
	err := New(KindComputation, "row %d has no subject id", 7)
	if err.Error() != "COMPUTATION: row 7 has no subject id" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
