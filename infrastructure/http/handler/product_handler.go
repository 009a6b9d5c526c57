package handler

import (
	"net/http"

	"github.com/stockroom/backoffice/application/port/inbound"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/middleware"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/http/validator"
)

type ProductHandler struct {
	products inbound.ProductUseCase
}

func NewProductHandler(products inbound.ProductUseCase) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.products.List(r.Context(), page(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, result)
}

func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.ProductRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	product, err := h.products.Create(r.Context(), middleware.ActorID(r.Context()), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req inbound.ProductRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	product, err := h.products.Update(r.Context(), middleware.ActorID(r.Context()), id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), middleware.ActorID(r.Context()), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Product deleted successfully.", nil)
}
