package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/crypto-news-api/internal/models"
	"github.com/pribylovaa/crypto-news-api/internal/service"
	"github.com/pribylovaa/crypto-news-api/internal/transport/http/httperr"
)

// DTO публичного API. Конверт повторяет формат фронта:
// {success, data, pagination{next_cursor, prev_cursor, has_next, has_prev, limit, returned}}.

type assetItem struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Symbol string `json:"symbol"`
}

type newsItem struct {
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle,omitempty"`
	Content    string      `json:"content,omitempty"` // только в карточке
	Source     string      `json:"source"`
	SourceName string      `json:"source_name,omitempty"`
	SourceURL  string      `json:"source_url,omitempty"`
	ReleasedAt time.Time   `json:"released_at"`
	Assets     []assetItem `json:"assets"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type pageInfo struct {
	NextCursor string `json:"next_cursor,omitempty"`
	PrevCursor string `json:"prev_cursor,omitempty"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
	Limit      int64  `json:"limit"`
	Returned   int    `json:"returned"`
}

type newsListResponse struct {
	Success    bool       `json:"success"`
	Data       []newsItem `json:"data"`
	Pagination pageInfo   `json:"pagination"`
}

type newsDetailResponse struct {
	Success bool     `json:"success"`
	Data    newsItem `json:"data"`
}

func newsItemFromModel(n models.News) newsItem {
	assets := make([]assetItem, 0, len(n.Assets))
	for _, a := range n.Assets {
		assets = append(assets, assetItem{Name: a.Name, Slug: a.Slug, Symbol: a.Symbol})
	}

	return newsItem{
		Slug:       n.Slug,
		Title:      n.Title,
		Subtitle:   n.Subtitle,
		Content:    n.Content,
		Source:     n.Source,
		SourceName: n.SourceName,
		SourceURL:  n.SourceURL,
		ReleasedAt: n.ReleasedAt,
		Assets:     assets,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func newsListFromPage(page *service.NewsPage) newsListResponse {
	items := make([]newsItem, 0, len(page.Items))
	for _, n := range page.Items {
		items = append(items, newsItemFromModel(n))
	}

	return newsListResponse{
		Success: true,
		Data:    items,
		Pagination: pageInfo{
			NextCursor: page.NextCursor,
			PrevCursor: page.PrevCursor,
			HasNext:    page.HasNext,
			HasPrev:    page.HasPrev,
			Limit:      page.Limit,
			Returned:   len(items),
		},
	}
}

// ListNews — GET /news: страница ленты с фильтрами и курсорной навигацией.
// Query: from_date, to_date, source, asset_slug, keyword, sort_by, order,
// limit, cursor.
func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var in service.ListNewsInput

	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httperr.WriteError(w, r, service.ErrInvalidFilter)
			return
		}

		in.Limit = n
	}

	from, err := parseTimeParam(q.Get("from_date"))
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidFilter)
		return
	}
	in.From = from

	to, err := parseTimeParam(q.Get("to_date"))
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidFilter)
		return
	}
	in.To = to

	in.Source = q.Get("source")
	in.AssetSlug = q.Get("asset_slug")
	in.Keyword = q.Get("keyword")
	in.SortBy = q.Get("sort_by")
	in.Order = q.Get("order")
	in.Cursor = q.Get("cursor")

	page, err := h.Service.ListNews(r.Context(), in)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newsListFromPage(page))
}

// GetNewsBySlug — GET /news/{slug}: полная запись, включая content.
func (h *Handlers) GetNewsBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		httperr.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	item, err := h.Service.NewsBySlug(r.Context(), slug)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newsDetailResponse{
		Success: true,
		Data:    newsItemFromModel(*item),
	})
}
