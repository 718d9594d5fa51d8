package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

func TestExecutorUnknownToolDoesNotInvokeHandlers(t *testing.T) {
	t.Parallel()

	invoked := false
	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{Name: "current_date"}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		invoked = true
		return "", nil
	})

	result := NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{Tool: "teleport"})
	if result.Error != UnknownFunctionOutcome {
		t.Fatalf("Error = %q, want %q", result.Error, UnknownFunctionOutcome)
	}
	if invoked {
		t.Fatal("handler must not run for an unknown tool")
	}
}

func TestExecutorMissingRequiredArguments(t *testing.T) {
	t.Parallel()

	invoked := false
	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{
		Name: "file_issue",
		Params: map[string]contractx.ParamSpec{
			"category":    {Type: contractx.ParamString, Required: true},
			"description": {Type: contractx.ParamString, Required: true},
		},
	}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		invoked = true
		return "", nil
	})

	result := NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: "file_issue",
		Args: map[string]any{"category": "Payment Issues"},
	})
	if !strings.Contains(result.Error, "missing required arguments") || !strings.Contains(result.Error, "description") {
		t.Fatalf("unexpected error: %q", result.Error)
	}
	if invoked {
		t.Fatal("handler must not run with missing arguments")
	}
}

func TestExecutorMistypedArgument(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{
		Name: "book_hotel",
		Params: map[string]contractx.ParamSpec{
			"rooms": {Type: contractx.ParamInteger, Required: true},
		},
	}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		return "", nil
	})

	result := NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: "book_hotel",
		Args: map[string]any{"rooms": "two"},
	})
	if !strings.Contains(result.Error, "rooms must be an integer") {
		t.Fatalf("unexpected error: %q", result.Error)
	}

	result = NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: "book_hotel",
		Args: map[string]any{"rooms": 2.5},
	})
	if !strings.Contains(result.Error, "rooms must be an integer") {
		t.Fatalf("unexpected error: %q", result.Error)
	}
}

func TestExecutorAcceptsJSONNumberShapes(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{
		Name: "book_hotel",
		Params: map[string]contractx.ParamSpec{
			"rooms": {Type: contractx.ParamInteger, Required: true},
		},
	}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		return "ok", nil
	})

	// JSON decoding yields float64 for integers on the wire.
	result := NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: "book_hotel",
		Args: map[string]any{"rooms": float64(2)},
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
	if result.Result != "ok" {
		t.Fatalf("Result = %q, want ok", result.Result)
	}
}

func TestExecutorAbsorbsHandlerError(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{Name: "previous_bookings"}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		return "", errors.New("orders table unavailable")
	})

	result := NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{Tool: "previous_bookings"})
	if result.Error != "orders table unavailable" {
		t.Fatalf("Error = %q", result.Error)
	}
	if result.Output() != "error: orders table unavailable" {
		t.Fatalf("Output() = %q", result.Output())
	}
}

func TestExecutorAbsorbsHandlerPanic(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{Name: "current_date"}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		panic("nil clock")
	})

	result := NewExecutor(c).Execute(context.Background(), "guest-1", contractx.ToolRequest{Tool: "current_date"})
	if !strings.Contains(result.Error, "nil clock") {
		t.Fatalf("Error = %q, want panic message", result.Error)
	}
	if result.Result != "" {
		t.Fatalf("Result = %q, want empty", result.Result)
	}
}

func TestExecutorPassesSessionIdentityThrough(t *testing.T) {
	t.Parallel()

	var gotIdentity string
	c := NewCatalog()
	c.MustRegister(contractx.ToolSpec{Name: "previous_bookings"}, func(ctx context.Context, identity string, args map[string]any) (string, error) {
		gotIdentity = identity
		return "none", nil
	})

	// Identity in the args must never override the session binding.
	NewExecutor(c).Execute(context.Background(), "alice", contractx.ToolRequest{
		Tool: "previous_bookings",
		Args: map[string]any{"identity": "mallory"},
	})
	if gotIdentity != "alice" {
		t.Fatalf("handler saw identity %q, want alice", gotIdentity)
	}
}
