// errors стандартизирует ответы об ошибках HTTP-слоя tender-service.
// На вход принимается ошибка сервисного слоя, на выход даётся:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-tender-aggregator/internal/service"
)

// StatusClientClosedRequest - нестандартный код "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError - единый формат ошибки.
// Code - короткий стабильный машиночитаемый код.
// Message - безопасное человекочитаемое описание.
// RequestID - прокидывается из X-Request-Id, если есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse - корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - service.ErrInvalidArgument -> 400;
//   - service.ErrNotFound -> 404;
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - прочее -> 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError пишет статус и тело, добавляя request_id из заголовка запроса.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
