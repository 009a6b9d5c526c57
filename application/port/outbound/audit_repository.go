package outbound

import (
	"context"
	"time"

	"github.com/stockroom/backoffice/domain/entity"
)

type AuditFilter struct {
	EntityType string
	Action     string
}

// AuditRepository is append-only; entries are never updated or deleted.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, filter AuditFilter, offset, limit int) ([]*entity.AuditEntryView, int, error)
	// CountDaily groups entries of entityType with one of actions in [from, to)
	// by calendar day in loc, returning only days that have entries.
	CountDaily(ctx context.Context, entityType string, actions []entity.AuditAction, from, to time.Time, loc *time.Location) ([]entity.DailyCount, error)
}
