package response

import (
	"encoding/json"
	"errors"
	"net/http"

	apperror "github.com/stockroom/backoffice/domain/error"
)

type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the data of a failed response built from an AppError.
type ErrorBody struct {
	Code    apperror.ErrorCode `json:"code"`
	Details string             `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, status bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	envelope := Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	}

	_ = json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, true, message, data)
}

func OK(w http.ResponseWriter, data interface{}) {
	Success(w, http.StatusOK, "success", data)
}

func Created(w http.ResponseWriter, data interface{}) {
	Success(w, http.StatusCreated, "created", data)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, false, message, nil)
}

// FromError writes err with the status its error code maps to. Details of
// server-side failures stay in the logs.
func FromError(w http.ResponseWriter, err error) {
	status := apperror.GetHTTPStatusCode(err)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		InternalServerError(w, "Internal server error")
		return
	}

	body := ErrorBody{Code: appErr.Code}
	if status < http.StatusInternalServerError {
		body.Details = appErr.Details
	}
	WriteJSON(w, status, false, appErr.Message, body)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
