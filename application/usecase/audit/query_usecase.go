package audit

import (
	"context"
	"strings"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
	apperror "github.com/stockroom/backoffice/domain/error"
)

type QueryUseCase struct {
	repo outbound.AuditRepository
}

func NewQueryUseCase(repo outbound.AuditRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List returns one page of audit entries, newest first. Empty filters place no
// constraint; values that match no entry yield an empty page.
func (uc *QueryUseCase) List(ctx context.Context, req inbound.AuditListRequest) (*inbound.Paginated[*entity.AuditEntryView], error) {
	page, offset := inbound.NormalizePage(req.Page, inbound.DefaultPageSize)

	filter := outbound.AuditFilter{
		EntityType: strings.TrimSpace(req.EntityType),
		Action:     strings.TrimSpace(req.Action),
	}

	entries, total, err := uc.repo.List(ctx, filter, offset, inbound.DefaultPageSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError("list audit logs", err)
	}

	return inbound.NewPaginated(entries, page, inbound.DefaultPageSize, total), nil
}
