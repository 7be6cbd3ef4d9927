// httperr стандартизирует ответы об ошибках HTTP-слоя crypto-news-api.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: сентинелы internal/service.
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/crypto-news-api/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
// Success всегда false: успешные ответы собирает слой handlers со своим
// конвертом, здесь только ошибки.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - сентинелы service.* маппятся по таблице ниже;
//   - context.Canceled/DeadlineExceeded — клиент ушёл/вышел дедлайн;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse("internal", "internal error")
	}

	switch {
	case errors.Is(err, service.ErrInvalidCursor):
		return http.StatusBadRequest, errorResponse("invalid_cursor", "invalid cursor")
	case errors.Is(err, service.ErrInvalidFilter):
		return http.StatusBadRequest, errorResponse("invalid_filter", "invalid filter")
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, errorResponse("invalid_argument", "invalid argument")
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, errorResponse("not_found", "not found")
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, errorResponse("unavailable", "service unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorResponse("deadline_exceeded", "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, errorResponse("canceled", "canceled")
	default:
		return http.StatusInternalServerError, errorResponse("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// WriteStatus пишет унифицированный ответ с явным статусом и кодом — для
// случаев, когда статус известен вызывающему (429 от rate-limit мидлвара).
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, errorResponse(code, message))
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func errorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}
