package inbound

import (
	"context"

	"github.com/stockroom/backoffice/domain/entity"
)

type AuditListRequest struct {
	EntityType string
	Action     string
	Page       int
}

type AuditQueryUseCase interface {
	List(ctx context.Context, req AuditListRequest) (*Paginated[*entity.AuditEntryView], error)
}

// ChangeRecorder turns mutations of auditable entities into audit entries. It
// must be called with the ctx of the transaction that performed the mutation.
type ChangeRecorder interface {
	OnCreate(ctx context.Context, actorID *int64, subject entity.Auditable) error
	OnUpdate(ctx context.Context, actorID *int64, subject entity.Auditable, prior entity.Attributes) error
	OnDelete(ctx context.Context, actorID *int64, subject entity.Auditable) error
}
