package contract

import (
	"context"
	"time"
)

// Store holds the ordered turn sequence of every session, keyed strictly by
// the authenticated identity. Two identities never observe or mutate each
// other's sequence. An unknown identity reads as an empty history.
type Store interface {
	History(ctx context.Context, identity string) ([]Turn, error)
	Append(ctx context.Context, identity string, turns ...Turn) error
	Reset(ctx context.Context, identity string) error
}

// ReasoningClient wraps the external reasoning service. Send submits the
// running history plus the declared tool set and returns either final text
// or requested tool calls. A transport or service failure is returned as an
// error wrapping ErrModelInvoke and is fatal for the current message only.
type ReasoningClient interface {
	Send(ctx context.Context, history []Turn, specs []ToolSpec) (ModelReply, error)
}

// ToolGateway validates and dispatches one requested tool call on behalf of
// identity and normalizes every outcome into a ToolResult. It never returns
// a Go error for tool-level failures; the conversation must be able to
// continue.
type ToolGateway interface {
	Execute(ctx context.Context, identity string, req ToolRequest) ToolResult
	Specs() []ToolSpec
}

// BookingNotifier emits a booking-intent notification to the booking
// subsystem. Whether the eventual order completes is a downstream workflow
// concern, not this core's.
type BookingNotifier interface {
	PublishBookingIntent(ctx context.Context, intent BookingIntent) error
}

// HotelFilter narrows a hotel search. Zero values mean "no constraint".
type HotelFilter struct {
	SearchTerm       string
	Facilities       []string
	MinPrice         float64
	MaxPrice         float64
	Rating           float64
	RatingComparator string // "gte" (default) or "lte"
}

// HotelSummary is the collaborator-side projection used by the tools.
type HotelSummary struct {
	ID        string
	Title     string
	City      string
	State     string
	Price     float64
	MaxGuests int
	Rating    float64
}

// HotelDirectory is the hotel-search collaborator.
type HotelDirectory interface {
	Search(ctx context.Context, filter HotelFilter, limit int) ([]HotelSummary, error)
	FindMatching(ctx context.Context, name string) ([]HotelSummary, error)
}

// BookingRecord is one past booking owned by an identity.
type BookingRecord struct {
	HotelTitle string
	Checkin    string
	Checkout   string
	Rooms      int
	Amount     float64
	Status     string
	CreatedAt  time.Time
}

// BookingHistory is the booking-history read collaborator.
type BookingHistory interface {
	ByCustomer(ctx context.Context, identity string) ([]BookingRecord, error)
}

// IssueTracker files support issues owned by an identity.
type IssueTracker interface {
	Create(ctx context.Context, identity, category, description string) error
}
