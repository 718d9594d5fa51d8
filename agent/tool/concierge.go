package tool

import (
	"errors"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

// Deps are the domain collaborators the concierge tools dispatch into.
type Deps struct {
	Hotels   contractx.HotelDirectory
	Bookings contractx.BookingHistory
	Issues   contractx.IssueTracker
	Notifier contractx.BookingNotifier

	// Now defaults to time.Now; injectable for tests.
	Now func() time.Time
}

// NewConciergeCatalog registers the full concierge tool set against the
// given collaborators.
func NewConciergeCatalog(deps Deps) (*Catalog, error) {
	if deps.Hotels == nil {
		return nil, errors.New("hotel directory is required")
	}
	if deps.Bookings == nil {
		return nil, errors.New("booking history is required")
	}
	if deps.Issues == nil {
		return nil, errors.New("issue tracker is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("booking notifier is required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	c := NewCatalog()
	registrations := []struct {
		spec    contractx.ToolSpec
		handler Handler
	}{
		{searchHotelsSpec(), newSearchHotelsHandler(deps.Hotels)},
		{checkHotelAvailabilitySpec(), newCheckHotelAvailabilityHandler(deps.Hotels)},
		{currentDateSpec(), newCurrentDateHandler(now)},
		{bookHotelSpec(), newBookHotelHandler(deps.Notifier, now)},
		{previousBookingsSpec(), newPreviousBookingsHandler(deps.Bookings)},
		{fileIssueSpec(), newFileIssueHandler(deps.Issues)},
	}
	for _, r := range registrations {
		if err := c.Register(r.spec, r.handler); err != nil {
			return nil, err
		}
	}
	return c, nil
}
