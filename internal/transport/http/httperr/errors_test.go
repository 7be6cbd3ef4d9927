package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/crypto-news-api/internal/service"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_cursor", service.ErrInvalidCursor, http.StatusBadRequest, "invalid_cursor"},
		{"invalid_filter", service.ErrInvalidFilter, http.StatusBadRequest, "invalid_filter"},
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unavailable", service.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"internal", service.ErrInternal, http.StatusInternalServerError, "internal"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
			require.False(t, resp.Success)
		})
	}
}

// Обёртки op-стиля не мешают маппингу: ищем сентинел по errors.Is.
func TestToHTTP_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("service/news/ListNews: %w", service.ErrInvalidCursor)

	gotStatus, resp := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "invalid_cursor", resp.Error.Code)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

// WriteError добавляет request_id из заголовка и success=false в тело.
func TestWriteError_PropagatesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)
	req.Header.Set("X-Request-Id", "rid-123")

	WriteError(rec, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "not_found", resp.Error.Code)
	require.Equal(t, "rid-123", resp.Error.RequestID)
}

// WriteStatus — явный статус/код для случаев вне сервисных сентинелов.
func TestWriteStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)

	WriteStatus(rec, req, http.StatusTooManyRequests, "rate_limit_exceeded", "rate limit exceeded")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "rate_limit_exceeded", resp.Error.Code)
	require.Empty(t, resp.Error.RequestID)
}
