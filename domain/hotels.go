package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	contractx "github.com/wanderstay/concierge/agent/contract"
)

const approvalApproved = "approved"

// Hotel is an approved-or-pending listing in the directory.
type Hotel struct {
	bun.BaseModel `bun:"table:hotels,alias:h"`

	ID             string   `bun:"id,pk"`
	Title          string   `bun:"title,notnull"`
	Description    string   `bun:"description"`
	Address        string   `bun:"address"`
	City           string   `bun:"city,notnull"`
	State          string   `bun:"state,notnull"`
	PinCode        string   `bun:"pin_code"`
	Price          float64  `bun:"price,notnull"`
	MaxGuests      int      `bun:"max_guests,notnull"`
	Rating         float64  `bun:"rating"`
	Facilities     []string `bun:"facilities,array"`
	ApprovalStatus string   `bun:"approval_status,default:'pending'"`
}

func (h *Hotel) summary() contractx.HotelSummary {
	return contractx.HotelSummary{
		ID:        h.ID,
		Title:     h.Title,
		City:      h.City,
		State:     h.State,
		Price:     h.Price,
		MaxGuests: h.MaxGuests,
		Rating:    h.Rating,
	}
}

// HotelRepo is the hotel-search collaborator backed by Postgres.
type HotelRepo struct {
	db *bun.DB
}

var _ contractx.HotelDirectory = (*HotelRepo)(nil)

func NewHotelRepo(db *bun.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// Search returns at most limit approved hotels matching the filter, best
// rated first.
func (r *HotelRepo) Search(ctx context.Context, filter contractx.HotelFilter, limit int) ([]contractx.HotelSummary, error) {
	if limit <= 0 {
		limit = 5
	}

	var hotels []Hotel
	q := r.db.NewSelect().
		Model(&hotels).
		Where("h.approval_status = ?", approvalApproved)

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		pattern := "%" + term + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("h.title ILIKE ?", pattern).
				WhereOr("h.city ILIKE ?", pattern).
				WhereOr("h.state ILIKE ?", pattern)
		})
	}
	for _, facility := range filter.Facilities {
		q = q.Where("? = ANY (h.facilities)", facility)
	}
	if filter.MinPrice > 0 {
		q = q.Where("h.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("h.price <= ?", filter.MaxPrice)
	}
	if filter.Rating > 0 {
		if strings.EqualFold(filter.RatingComparator, "lte") {
			q = q.Where("h.rating <= ?", filter.Rating)
		} else {
			q = q.Where("h.rating >= ?", filter.Rating)
		}
	}

	if err := q.OrderExpr("h.rating DESC").Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("search hotels: %w", err)
	}
	return summaries(hotels), nil
}

// FindMatching looks hotels up by (sanitized) name, case-insensitively.
func (r *HotelRepo) FindMatching(ctx context.Context, name string) ([]contractx.HotelSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var hotels []Hotel
	err := r.db.NewSelect().
		Model(&hotels).
		Where("h.approval_status = ?", approvalApproved).
		Where("h.title ILIKE ?", "%"+name+"%").
		OrderExpr("h.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("find hotels by name: %w", err)
	}
	return summaries(hotels), nil
}

func summaries(hotels []Hotel) []contractx.HotelSummary {
	if len(hotels) == 0 {
		return nil
	}
	out := make([]contractx.HotelSummary, 0, len(hotels))
	for i := range hotels {
		out = append(out, hotels[i].summary())
	}
	return out
}
