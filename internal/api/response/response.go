package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchen/internal/util"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ResponseError struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("write json response failed")
	}
}

// SuccessJSON 200
func SuccessJSON(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// CreatedJSON 201
func CreatedJSON(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// ErrorJSON 直接指定http status與錯誤碼字串
func ErrorJSON(w http.ResponseWriter, status int, code string, message string, details any) {
	writeJSON(w, status, ResponseError{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

// Error 依AppError決定狀態碼, 非AppError一律回500且不暴露內部訊息
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	msg := "internal server error"
	var details any

	var appErr *apperr.AppError
	if errors.As(err, &appErr) && code != apperr.InternalErrorCode {
		msg = appErr.Msg
		details = appErr.Details
	}

	if code == apperr.InternalErrorCode {
		log.Error().
			Err(err).
			Str("request_id", util.GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("request failed")
	}

	ErrorJSON(w, code.HTTPStatus(), code.String(), msg, details)
}
