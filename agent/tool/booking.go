package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

const (
	ToolBookHotel        = "book_hotel"
	ToolPreviousBookings = "previous_bookings"

	bookingAckOutcome = "Booking request received. Please retry if the payment gateway does not respond."
)

func bookHotelSpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name: ToolBookHotel,
		Desc: "Initiate a hotel booking after the guest confirmed all details. Emits a booking request to the booking subsystem.",
		Params: map[string]contractx.ParamSpec{
			"hotel_id":      {Type: contractx.ParamString, Desc: "Identifier returned by check_hotel_availability or search_hotels", Required: true},
			"guest_details": {Type: contractx.ParamString, Desc: "Full names and 10-digit phone numbers of all guests", Required: true},
			"checkin_date":  {Type: contractx.ParamString, Desc: "Check-in date in dd/mm/yyyy format", Required: true},
			"checkout_date": {Type: contractx.ParamString, Desc: "Check-out date in dd/mm/yyyy format", Required: true},
			"guest_count":   {Type: contractx.ParamInteger, Desc: "Total number of guests", Required: true},
			"rooms":         {Type: contractx.ParamInteger, Desc: "Number of rooms to book", Required: true},
		},
	}
}

func newBookHotelHandler(notifier contractx.BookingNotifier, now func() time.Time) Handler {
	return func(ctx context.Context, identity string, args map[string]any) (string, error) {
		guestCount, _ := intArg(args, "guest_count")
		rooms, _ := intArg(args, "rooms")
		if guestCount < 1 {
			return "", fmt.Errorf("guest_count must be at least 1")
		}
		if rooms < 1 {
			return "", fmt.Errorf("rooms must be at least 1")
		}

		intent := contractx.BookingIntent{
			Identity:     identity,
			HotelID:      stringArg(args, "hotel_id"),
			GuestDetails: stringArg(args, "guest_details"),
			CheckinDate:  stringArg(args, "checkin_date"),
			CheckoutDate: stringArg(args, "checkout_date"),
			GuestCount:   guestCount,
			Rooms:        rooms,
			At:           now().UTC(),
		}
		if err := notifier.PublishBookingIntent(ctx, intent); err != nil {
			return "", fmt.Errorf("could not reach the booking subsystem: %w", err)
		}
		return bookingAckOutcome, nil
	}
}

func previousBookingsSpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name: ToolPreviousBookings,
		Desc: "Summarize the guest's past bookings: hotel, check-in and check-out dates, rooms, and status.",
	}
}

func newPreviousBookingsHandler(history contractx.BookingHistory) Handler {
	return func(ctx context.Context, identity string, args map[string]any) (string, error) {
		records, err := history.ByCustomer(ctx, identity)
		if err != nil {
			return "", fmt.Errorf("could not load previous bookings: %w", err)
		}
		if len(records) == 0 {
			return "No previous bookings found", nil
		}

		lines := make([]string, 0, len(records))
		for i, r := range records {
			lines = append(lines, fmt.Sprintf("%d. %s | check-in: %s | check-out: %s | rooms: %d | status: %s",
				i+1, r.HotelTitle, r.Checkin, r.Checkout, r.Rooms, r.Status))
		}
		return "Previous bookings:\n" + strings.Join(lines, "\n"), nil
	}
}
