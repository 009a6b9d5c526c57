package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/http/validator"
)

// pathID reads the {id} route variable, writing a 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := validator.ParseID(mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return 0, false
	}
	return id, true
}

func page(r *http.Request) int {
	return validator.ParsePage(r.URL.Query().Get("page"))
}
