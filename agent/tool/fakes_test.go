package tool

import (
	"context"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

type fakeDirectory struct {
	searchResults []contractx.HotelSummary
	searchErr     error
	lastFilter    contractx.HotelFilter
	lastLimit     int

	findResults []contractx.HotelSummary
	findErr     error
	lastName    string
}

func (f *fakeDirectory) Search(ctx context.Context, filter contractx.HotelFilter, limit int) ([]contractx.HotelSummary, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeDirectory) FindMatching(ctx context.Context, name string) ([]contractx.HotelSummary, error) {
	f.lastName = name
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findResults, nil
}

type fakeHistory struct {
	records []contractx.BookingRecord
	err     error
}

func (f *fakeHistory) ByCustomer(ctx context.Context, identity string) ([]contractx.BookingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type filedIssue struct {
	identity    string
	category    string
	description string
}

type fakeTracker struct {
	filed []filedIssue
	err   error
}

func (f *fakeTracker) Create(ctx context.Context, identity, category, description string) error {
	if f.err != nil {
		return f.err
	}
	f.filed = append(f.filed, filedIssue{identity: identity, category: category, description: description})
	return nil
}

type fakeNotifier struct {
	intents []contractx.BookingIntent
	err     error
}

func (f *fakeNotifier) PublishBookingIntent(ctx context.Context, intent contractx.BookingIntent) error {
	if f.err != nil {
		return f.err
	}
	f.intents = append(f.intents, intent)
	return nil
}

func newTestCatalog(t interface{ Fatalf(string, ...any) }, deps Deps) *Catalog {
	if deps.Hotels == nil {
		deps.Hotels = &fakeDirectory{}
	}
	if deps.Bookings == nil {
		deps.Bookings = &fakeHistory{}
	}
	if deps.Issues == nil {
		deps.Issues = &fakeTracker{}
	}
	if deps.Notifier == nil {
		deps.Notifier = &fakeNotifier{}
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	}
	catalog, err := NewConciergeCatalog(deps)
	if err != nil {
		t.Fatalf("NewConciergeCatalog() error = %v", err)
	}
	return catalog
}
