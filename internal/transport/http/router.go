package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/crypto-news-api/internal/ratelimit"
	"github.com/pribylovaa/crypto-news-api/internal/service"
	"github.com/pribylovaa/crypto-news-api/internal/transport/http/handlers"
	"github.com/pribylovaa/crypto-news-api/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// BasePath — например, "/api/v1"; если пустой — роуты регистрируются на корне.
	BasePath string
	// Limiter — скользящее окно запросов; nil отключает лимитирование.
	Limiter *ratelimit.Limiter
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики и латентность по шаблону маршрута
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}
	// Лимит после дедлайна: поход в сторадж окна тоже ограничен по времени.
	root.Use(middleware.RateLimit(opts.Limiter))

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// news
	r.Get("/news", h.ListNews)
	r.Get("/news/{slug}", h.GetNewsBySlug)
}
