package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/wanderstay/concierge/agent/contract"
	qstashx "github.com/wanderstay/concierge/pkg/qstash"
)

// QStashNotifier forwards booking intents to the booking subsystem through
// QStash. Whether the eventual order completes is the subsystem's concern.
type QStashNotifier struct {
	client      *qstashx.Client
	destination string
}

var _ contractx.BookingNotifier = (*QStashNotifier)(nil)

func NewQStashNotifier(client *qstashx.Client, destination string) (*QStashNotifier, error) {
	if client == nil {
		return nil, errors.New("qstash client is required")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, errors.New("booking destination is required")
	}
	return &QStashNotifier{client: client, destination: destination}, nil
}

func (n *QStashNotifier) PublishBookingIntent(ctx context.Context, intent contractx.BookingIntent) error {
	if err := n.client.PublishJSON(ctx, n.destination, intent); err != nil {
		return err
	}
	log.Info().
		Str("identity", intent.Identity).
		Str("hotel_id", intent.HotelID).
		Msg("booking intent published")
	return nil
}
