package tool

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

func TestSearchHotelsBuildsFilterFromArgs(t *testing.T) {
	t.Parallel()

	directory := &fakeDirectory{
		searchResults: []contractx.HotelSummary{
			{ID: "h1", Title: "Sea Breeze", City: "Panaji", State: "Goa", Price: 1800, MaxGuests: 3, Rating: 4.5},
			{ID: "h2", Title: "Palm Grove", City: "Margao", State: "Goa", Price: 1500, MaxGuests: 2, Rating: 4.1},
		},
	}
	catalog := newTestCatalog(t, Deps{Hotels: directory})
	executor := NewExecutor(catalog)

	result := executor.Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: ToolSearchHotels,
		Args: map[string]any{
			"wifi":        true,
			"search_term": "Goa",
			"max_price":   float64(2000),
		},
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %q", result.Error)
	}

	if directory.lastLimit != searchResultLimit {
		t.Fatalf("limit = %d, want %d", directory.lastLimit, searchResultLimit)
	}
	filter := directory.lastFilter
	if filter.SearchTerm != "Goa" {
		t.Fatalf("SearchTerm = %q", filter.SearchTerm)
	}
	if len(filter.Facilities) != 1 || filter.Facilities[0] != "wifi" {
		t.Fatalf("Facilities = %v", filter.Facilities)
	}
	if filter.MaxPrice != 2000 {
		t.Fatalf("MaxPrice = %v", filter.MaxPrice)
	}

	if !strings.Contains(result.Result, "Sea Breeze") || !strings.Contains(result.Result, "hotel id: h1") {
		t.Fatalf("unexpected result: %q", result.Result)
	}
	if !strings.Contains(result.Result, "Palm Grove") {
		t.Fatalf("unexpected result: %q", result.Result)
	}
}

func TestSearchHotelsNoMatches(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t, Deps{Hotels: &fakeDirectory{}})
	result := NewExecutor(catalog).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: ToolSearchHotels,
		Args: map[string]any{"search_term": "Atlantis"},
	})
	if result.Result != noHotelsOutcome {
		t.Fatalf("Result = %q, want %q", result.Result, noHotelsOutcome)
	}
}

func TestCheckHotelAvailabilityStripsHotelWord(t *testing.T) {
	t.Parallel()

	directory := &fakeDirectory{
		findResults: []contractx.HotelSummary{
			{ID: "h7", Title: "Taj Palace", City: "Mumbai", MaxGuests: 3},
		},
	}
	catalog := newTestCatalog(t, Deps{Hotels: directory})
	result := NewExecutor(catalog).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: ToolCheckHotelAvailability,
		Args: map[string]any{"name": "Taj Hotel"},
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
	if directory.lastName != "Taj" {
		t.Fatalf("lookup name = %q, want Taj", directory.lastName)
	}
	want := "Found hotels: Taj Palace, max guests:3, city: Mumbai, hotel id: h7"
	if result.Result != want {
		t.Fatalf("Result = %q, want %q", result.Result, want)
	}
}

func TestCheckHotelAvailabilityRequiresName(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t, Deps{})
	result := NewExecutor(catalog).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: ToolCheckHotelAvailability,
	})
	if !strings.Contains(result.Error, "missing required arguments") {
		t.Fatalf("unexpected error: %q", result.Error)
	}
}

func TestCurrentDateFormat(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t, Deps{})
	result := NewExecutor(catalog).Execute(context.Background(), "guest-1", contractx.ToolRequest{
		Tool: ToolCurrentDate,
	})
	if result.Error != "" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
	if result.Result != "30/08/2026" {
		t.Fatalf("Result = %q, want 30/08/2026", result.Result)
	}
}
