package handler

import (
	"net/http"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/infrastructure/http/response"
)

type DashboardHandler struct {
	dashboard inbound.DashboardUseCase
}

func NewDashboardHandler(dashboard inbound.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, summary)
}
