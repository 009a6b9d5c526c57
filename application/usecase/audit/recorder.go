package audit

import (
	"context"
	"time"

	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

// Recorder writes one audit entry per create, effective update and delete of
// an auditable entity.
type Recorder struct {
	repo   outbound.AuditRepository
	logger logger.Logger
	now    func() time.Time
}

func NewRecorder(repo outbound.AuditRepository, log logger.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// OnCreate records the full snapshot of a newly persisted entity.
func (r *Recorder) OnCreate(ctx context.Context, actorID *int64, subject entity.Auditable) error {
	return r.record(ctx, actorID, subject, entity.AuditActionCreated, subject.AuditSnapshot())
}

// OnUpdate records the fields that differ from prior, with their new values.
// The bookkeeping timestamp is ignored, so a save that only bumps updated_at
// writes nothing.
func (r *Recorder) OnUpdate(ctx context.Context, actorID *int64, subject entity.Auditable, prior entity.Attributes) error {
	changes := entity.Diff(prior, subject.AuditSnapshot())
	delete(changes, entity.TimestampField)
	if len(changes) == 0 {
		return nil
	}
	return r.record(ctx, actorID, subject, entity.AuditActionUpdated, changes)
}

// OnDelete records the last known snapshot of a removed entity.
func (r *Recorder) OnDelete(ctx context.Context, actorID *int64, subject entity.Auditable) error {
	return r.record(ctx, actorID, subject, entity.AuditActionDeleted, subject.AuditSnapshot())
}

func (r *Recorder) record(ctx context.Context, actorID *int64, subject entity.Auditable, action entity.AuditAction, changes entity.Attributes) error {
	if subject.AuditType() == entity.AuditTypeAuditEntry {
		return nil
	}

	entry := &entity.AuditEntry{
		UserID:     actorID,
		EntityType: subject.AuditType(),
		EntityID:   subject.AuditKey(),
		Action:     action,
		Changes:    changes,
		CreatedAt:  r.now(),
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error(ctx, "Failed to write audit entry", err, map[string]interface{}{
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
			"action":      string(action),
		})
		return apperror.ErrAuditWriteFailed(entry.EntityType, err)
	}

	logger.LogAuditEvent(ctx, r.logger, entry.EntityType, entry.EntityID, string(action), actorID)
	return nil
}
