package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	contractx "github.com/wanderstay/concierge/agent/contract"
)

// Issue is a support issue owned by a customer identity.
type Issue struct {
	bun.BaseModel `bun:"table:issues,alias:i"`

	ID          int64     `bun:"id,pk,autoincrement"`
	CustomerID  string    `bun:"customer_id,notnull"`
	Category    string    `bun:"category,notnull"`
	Description string    `bun:"description,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// IssueRepo files support issues.
type IssueRepo struct {
	db *bun.DB
}

var _ contractx.IssueTracker = (*IssueRepo)(nil)

func NewIssueRepo(db *bun.DB) *IssueRepo {
	return &IssueRepo{db: db}
}

func (r *IssueRepo) Create(ctx context.Context, identity, category, description string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return fmt.Errorf("issue owner identity is required")
	}

	issue := &Issue{
		CustomerID:  identity,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
	}
	if _, err := r.db.NewInsert().Model(issue).Exec(ctx); err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}
