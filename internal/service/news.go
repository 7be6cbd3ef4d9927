package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/crypto-news-api/pkg/log"

	"github.com/pribylovaa/crypto-news-api/internal/models"
	"github.com/pribylovaa/crypto-news-api/internal/pagination"
	"github.com/pribylovaa/crypto-news-api/internal/storage"
)

// Входные структуры сервисного слоя.

// ListNewsInput — параметры запроса ленты новостей.
// Строковые SortBy/Order приходят из query как есть и разбираются здесь;
// Limit=0 означает дефолт из конфигурации.
type ListNewsInput struct {
	From      *time.Time
	To        *time.Time
	Source    string
	AssetSlug string
	Keyword   string
	SortBy    string
	Order     string
	Limit     int64
	Cursor    string
}

// NewsPage — страница ленты вместе с курсорами навигации.
type NewsPage = pagination.Page[models.News]

// ListNews — бизнес-операция выдачи страницы ленты.
//
// Валидация:
//   - SortBy/Order должны быть известными значениями (пустые -> дефолты);
//   - limit, диапазон дат и курсор проверяет движок пагинации.
//
// Поведение/ошибки:
//   - ErrInvalidFilter — limit вне диапазона, неизвестные SortBy/Order, to < from;
//   - ErrInvalidCursor — битый токен или токен от другой сортировки;
//   - ErrUnavailable — хранилище недоступно;
//   - ErrInternal — прочие ошибки стораджа/БД/контекста.
func (s *Service) ListNews(ctx context.Context, in ListNewsInput) (*NewsPage, error) {
	const op = "service/news/ListNews"

	lg := log.From(ctx).With("op", op)

	sortBy, err := pagination.ParseSortField(in.SortBy)
	if err != nil {
		lg.Warn("invalid argument: unknown sort field", "sort_by", in.SortBy)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFilter)
	}

	order, err := pagination.ParseOrder(in.Order)
	if err != nil {
		lg.Warn("invalid argument: unknown order", "order", in.Order)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFilter)
	}

	limit := in.Limit
	if limit == 0 {
		limit = s.cfg.Limits.Default
	}

	filters := pagination.Filters{
		Source:    strings.TrimSpace(in.Source),
		AssetSlug: strings.TrimSpace(in.AssetSlug),
		Keyword:   strings.TrimSpace(in.Keyword),
	}
	if in.From != nil {
		filters.From = *in.From
	}
	if in.To != nil {
		filters.To = *in.To
	}

	req := pagination.Request{
		Filters: filters,
		SortBy:  sortBy,
		Order:   order,
		Limit:   limit,
		Cursor:  in.Cursor,
	}

	page, err := pagination.Paginate(ctx, req, s.storage.FindNews, keyFor(sortBy))
	if err != nil {
		switch {
		case errors.Is(err, pagination.ErrInvalidCursor):
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		case errors.Is(err, pagination.ErrInvalidFilter):
			lg.Warn("invalid filter", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidFilter)
		case errors.Is(err, storage.ErrUnavailable):
			lg.Error("storage unavailable", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		default:
			lg.Error("storage error on ListNews", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return page, nil
}

// NewsBySlug — полная запись новости по slug, включая content.
//
// Валидация:
//   - slug не должен быть пустым.
//
// Поведение/ошибки:
//   - ErrNotFound — если новость не найдена;
//   - ErrUnavailable — хранилище недоступно;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) NewsBySlug(ctx context.Context, slug string) (*models.News, error) {
	const op = "service/news/NewsBySlug"

	slug = strings.TrimSpace(slug)
	lg := log.From(ctx).With("op", op, "slug", slug)

	if slug == "" {
		lg.Warn("invalid argument: empty slug")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.NewsBySlug(ctx, slug)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("news not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrUnavailable):
			lg.Error("storage unavailable", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		default:
			lg.Error("storage error on NewsBySlug", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// keyFor возвращает извлечение keyset-ключа под выбранное поле сортировки.
func keyFor(field pagination.SortField) pagination.KeyFunc[models.News] {
	switch field {
	case pagination.SortByTitle:
		return func(n models.News) pagination.Key {
			return pagination.Key{Title: n.Title, ID: n.ID}
		}
	case pagination.SortByCreatedAt:
		return func(n models.News) pagination.Key {
			return pagination.Key{Time: n.CreatedAt, ID: n.ID}
		}
	default:
		return func(n models.News) pagination.Key {
			return pagination.Key{Time: n.ReleasedAt, ID: n.ID}
		}
	}
}
