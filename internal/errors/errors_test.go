package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWrapped(t *testing.T) {
	base := New(CodeCyclicDependency, "cycle", nil)
	wrapped := fmt.Errorf("layout: %w", base)

	if got := CodeOf(wrapped); got != CodeCyclicDependency {
		t.Fatalf("expected %s, got %s", CodeCyclicDependency, got)
	}
	if !IsCode(wrapped, CodeCyclicDependency) {
		t.Fatalf("expected IsCode to match")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatalf("expected unknown code for plain errors")
	}
}

func TestHasCodeFindsInnerCause(t *testing.T) {
	inner := New(CodeDuplicateID, "duplicate issue id: 7", nil)
	outer := New(CodeGraphConstruction, "stratify graph", inner)

	if CodeOf(outer) != CodeGraphConstruction {
		t.Fatalf("expected outer code first")
	}
	if !HasCode(outer, CodeDuplicateID) {
		t.Fatalf("expected HasCode to find the wrapped duplicate_id code")
	}
	if HasCode(outer, CodeRemoteFailed) {
		t.Fatalf("unexpected code match")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	if got := New(CodeNotFound, "", nil).Error(); got != string(CodeNotFound) {
		t.Fatalf("expected code as message, got %q", got)
	}
	cause := errors.New("boom")
	if got := New(CodeRemoteFailed, "", cause).Error(); got != "boom" {
		t.Fatalf("expected cause message, got %q", got)
	}
}
