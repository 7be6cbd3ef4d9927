package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/crypto-news-api/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// parseTimeParam разбирает значение from_date/to_date: RFC3339 либо
// короткая дата YYYY-MM-DD (трактуется как полночь UTC).
func parseTimeParam(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}

	t = t.UTC()
	return &t, nil
}
