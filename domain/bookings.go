package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	contractx "github.com/wanderstay/concierge/agent/contract"
)

// Order is a booking owned by a customer identity. Orders are written by the
// booking subsystem after payment confirmation; this core only reads them.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID         int64     `bun:"id,pk,autoincrement"`
	CustomerID string    `bun:"customer_id,notnull"`
	HotelTitle string    `bun:"hotel_title,notnull"`
	Checkin    string    `bun:"checkin"`
	Checkout   string    `bun:"checkout"`
	Rooms      int       `bun:"rooms"`
	Amount     float64   `bun:"amount"`
	Status     string    `bun:"status,default:'in-progress'"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// OrderRepo is the booking-history read collaborator.
type OrderRepo struct {
	db *bun.DB
}

var _ contractx.BookingHistory = (*OrderRepo)(nil)

func NewOrderRepo(db *bun.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) ByCustomer(ctx context.Context, identity string) ([]contractx.BookingRecord, error) {
	var orders []Order
	err := r.db.NewSelect().
		Model(&orders).
		Where("o.customer_id = ?", identity).
		OrderExpr("o.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings for customer: %w", err)
	}

	records := make([]contractx.BookingRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, contractx.BookingRecord{
			HotelTitle: o.HotelTitle,
			Checkin:    o.Checkin,
			Checkout:   o.Checkout,
			Rooms:      o.Rooms,
			Amount:     o.Amount,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		})
	}
	return records, nil
}
