package handler

import (
	"net/http"

	"github.com/stockroom/backoffice/application/port/inbound"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/middleware"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/http/validator"
)

type InventoryHandler struct {
	inventories inbound.InventoryUseCase
}

func NewInventoryHandler(inventories inbound.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{inventories: inventories}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventories.List(r.Context(), page(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *InventoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	inventory, err := h.inventories.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, inventory)
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.InventoryRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	inventory, err := h.inventories.Create(r.Context(), middleware.ActorID(r.Context()), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, inventory)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req inbound.InventoryRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	inventory, err := h.inventories.Update(r.Context(), middleware.ActorID(r.Context()), id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, inventory)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.inventories.Delete(r.Context(), middleware.ActorID(r.Context()), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Inventory deleted.", nil)
}
