package handler

import (
	"net/http"

	"github.com/stockroom/backoffice/application/port/inbound"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/middleware"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/http/validator"
)

type CategoryHandler struct {
	categories inbound.CategoryUseCase
}

func NewCategoryHandler(categories inbound.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.categories.List(r.Context(), page(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CategoryRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	category, err := h.categories.Create(r.Context(), middleware.ActorID(r.Context()), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req inbound.CategoryRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	category, err := h.categories.Update(r.Context(), middleware.ActorID(r.Context()), id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), middleware.ActorID(r.Context()), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Category deleted.", nil)
}
