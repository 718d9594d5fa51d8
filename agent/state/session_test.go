package state

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

func TestNewSessionRequiresIdentity(t *testing.T) {
	t.Parallel()

	if _, err := NewSession("   ", time.Now()); !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("NewSession() error = %v, want ErrInvalidIdentity", err)
	}
}

func TestSessionAppendKeepsChronologicalOrder(t *testing.T) {
	t.Parallel()

	sess, err := NewSession("guest-1", time.Now())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	turns := []contractx.Turn{
		{Role: contractx.RoleUser, Text: "find me a hotel"},
		{Role: contractx.RoleToolCall, Tool: "search_hotels", Args: map[string]any{"search_term": "Goa"}},
		{Role: contractx.RoleToolResult, Tool: "search_hotels", Result: "Found hotels: ..."},
		{Role: contractx.RoleAssistant, Text: "Here are some options."},
	}
	if err := sess.Append(time.Now(), turns...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if sess.TurnCount != 4 {
		t.Fatalf("TurnCount = %d, want 4", sess.TurnCount)
	}
	for i, turn := range sess.Turns {
		if turn.At.IsZero() {
			t.Fatalf("turn %d has zero timestamp", i)
		}
	}
}

func TestSessionAppendRejectsDanglingToolCall(t *testing.T) {
	t.Parallel()

	sess, _ := NewSession("guest-1", time.Now())
	if err := sess.Append(time.Now(),
		contractx.Turn{Role: contractx.RoleUser, Text: "book it"},
		contractx.Turn{Role: contractx.RoleToolCall, Tool: "book_hotel"},
	); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	err := sess.Append(time.Now(), contractx.Turn{Role: contractx.RoleAssistant, Text: "done"})
	if !errors.Is(err, ErrOrderViolation) {
		t.Fatalf("Append() error = %v, want ErrOrderViolation", err)
	}
}

func TestSessionAppendRejectsMismatchedToolResult(t *testing.T) {
	t.Parallel()

	sess, _ := NewSession("guest-1", time.Now())
	if err := sess.Append(time.Now(),
		contractx.Turn{Role: contractx.RoleUser, Text: "book it"},
		contractx.Turn{Role: contractx.RoleToolCall, Tool: "book_hotel"},
	); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	err := sess.Append(time.Now(), contractx.Turn{Role: contractx.RoleToolResult, Tool: "file_issue"})
	if !errors.Is(err, ErrOrderViolation) {
		t.Fatalf("Append() error = %v, want ErrOrderViolation", err)
	}
}

func TestSessionAppendRejectsOrphanToolResult(t *testing.T) {
	t.Parallel()

	sess, _ := NewSession("guest-1", time.Now())
	err := sess.Append(time.Now(), contractx.Turn{Role: contractx.RoleToolResult, Tool: "current_date"})
	if !errors.Is(err, ErrOrderViolation) {
		t.Fatalf("Append() error = %v, want ErrOrderViolation", err)
	}
}

func TestSessionValidateReplaysWholeSequence(t *testing.T) {
	t.Parallel()

	sess := &Session{
		Identity: "guest-1",
		Turns: []contractx.Turn{
			{Role: contractx.RoleUser, Text: "hello"},
			{Role: contractx.RoleToolCall, Tool: "current_date"},
			{Role: contractx.RoleAssistant, Text: "hi"},
		},
	}
	if err := sess.Validate(); !errors.Is(err, ErrOrderViolation) {
		t.Fatalf("Validate() error = %v, want ErrOrderViolation", err)
	}

	sess.Turns = []contractx.Turn{
		{Role: contractx.RoleUser, Text: "hello"},
		{Role: contractx.RoleToolCall, Tool: "current_date"},
		{Role: contractx.RoleToolResult, Tool: "current_date", Result: "30/08/2026"},
		{Role: contractx.RoleAssistant, Text: "hi"},
	}
	if err := sess.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestCloneTurnsIsACopy(t *testing.T) {
	t.Parallel()

	sess, _ := NewSession("guest-1", time.Now())
	if err := sess.Append(time.Now(), contractx.Turn{Role: contractx.RoleUser, Text: "hello"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	turns := sess.CloneTurns()
	turns[0].Text = "mutated"
	if sess.Turns[0].Text != "hello" {
		t.Fatalf("stored turn mutated through clone: %q", sess.Turns[0].Text)
	}
}
