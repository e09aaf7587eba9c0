package caller

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := ParseID("  " + id.String() + " ")
	if err != nil {
		t.Fatalf("ParseID: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}

	if _, err := ParseID(""); !errors.Is(err, ErrMissingCaller) {
		t.Fatalf("expected ErrMissingCaller, got %v", err)
	}
	if _, err := ParseID("not-a-uuid"); !errors.Is(err, ErrInvalidCallerID) {
		t.Fatalf("expected ErrInvalidCallerID, got %v", err)
	}
	if _, err := ParseID(uuid.Nil.String()); !errors.Is(err, ErrInvalidCallerID) {
		t.Fatalf("nil uuid must be rejected, got %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrMissingCaller) {
		t.Fatalf("expected ErrMissingCaller on empty context, got %v", err)
	}

	id := uuid.New()
	got, err := FromContext(WithID(context.Background(), id))
	if err != nil || got != id {
		t.Fatalf("FromContext = %s, %v; want %s", got, err, id)
	}
}
