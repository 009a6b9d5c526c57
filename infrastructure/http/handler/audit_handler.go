package handler

import (
	"net/http"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/http/validator"
)

type AuditHandler struct {
	auditQuery inbound.AuditQueryUseCase
}

func NewAuditHandler(auditQuery inbound.AuditQueryUseCase) *AuditHandler {
	return &AuditHandler{auditQuery: auditQuery}
}

// List serves GET /audit-logs?entity_type=&action=&page=
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := h.auditQuery.List(r.Context(), inbound.AuditListRequest{
		EntityType: query.Get("entity_type"),
		Action:     query.Get("action"),
		Page:       validator.ParsePage(query.Get("page")),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, page)
}
