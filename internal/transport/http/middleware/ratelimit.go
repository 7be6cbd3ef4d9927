package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/pribylovaa/crypto-news-api/internal/ratelimit"
	"github.com/pribylovaa/crypto-news-api/internal/transport/http/httperr"
	logctx "github.com/pribylovaa/crypto-news-api/pkg/log"
)

// RateLimit пропускает запрос через скользящее окно лимитера.
//
// Идентичность вызывающего:
//  1. Authorization: Bearer <key> -> "api_key:<key>";
//  2. query-параметр api_key -> "api_key:<key>";
//  3. иначе "ip:<host>" из RemoteAddr.
//
// Каждый ответ несёт X-RateLimit-Limit/-Remaining/-Reset; отказ — 429 с
// Retry-After. При ошибке стораджа лимитов запрос пропускается (fail-open),
// факт деградации логируется.
func RateLimit(l *ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := l.Admit(r.Context(), callerIdentity(r))
			if err != nil {
				logctx.From(r.Context()).Error("rate_limit_store_failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				// Округление вверх: клиент не должен вернуться раньше окна.
				secs := int64(math.Ceil(d.RetryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))

				logctx.From(r.Context()).Warn("rate_limit_exceeded",
					"retry_after", d.RetryAfter.String(),
				)
				httperr.WriteStatus(w, r, http.StatusTooManyRequests, "rate_limit_exceeded", "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// callerIdentity определяет субъект лимита: API-ключ, если он предъявлен,
// иначе IP клиента. Ключ в логи не попадает.
func callerIdentity(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(auth, prefix) {
			if key := strings.TrimSpace(auth[len(prefix):]); key != "" {
				return "api_key:" + key
			}
		}
	}

	if key := strings.TrimSpace(r.URL.Query().Get("api_key")); key != "" {
		return "api_key:" + key
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
