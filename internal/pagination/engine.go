package pagination

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request — неизменяемые параметры одного запроса страницы.
type Request struct {
	Filters Filters
	SortBy  SortField
	Order   Order
	// Limit — размер страницы; 0 означает DefaultLimit,
	// значения вне [MinLimit, MaxLimit] отклоняются.
	Limit  int64
	Cursor string
}

// Page — страница выдачи вместе с навигацией.
type Page[T any] struct {
	Items []T
	// NextCursor/PrevCursor — непрозрачные токены продолжения; пустая строка,
	// когда соответствующей страницы нет.
	NextCursor string
	PrevCursor string
	HasNext    bool
	HasPrev    bool
	// Limit — применённый размер страницы (после подстановки дефолта).
	Limit int64
}

// FetchFunc — единственный выход движка во внешний мир: получить не более
// limit документов по предикату и сортировке. Движок вызывает её ровно один
// раз за Paginate и запрашивает limit+1 для определения has_next.
type FetchFunc[T any] func(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]T, error)

// Key — сырьё для курсора одного элемента. KeyFunc заполняет все известные
// поля, движок берёт нужное по полю сортировки запроса.
type Key struct {
	Time  time.Time
	Title string
	ID    primitive.ObjectID
}

// KeyFunc извлекает ключ пагинации из элемента выдачи.
type KeyFunc[T any] func(item T) Key

// Paginate выполняет один шаг курсорной пагинации.
//
// Порядок работы:
//  1. валидация параметров (ErrInvalidFilter) и разбор курсора (ErrInvalidCursor);
//  2. для курсора «назад» направление сортировки и неравенство границы
//     инвертируются, а результат разворачивается перед выдачей — последовательность
//     «вперёд, затем назад» возвращает исходную страницу;
//  3. запрашивается limit+1 элементов: лишний элемент означает наличие
//     следующей страницы в направлении шага и отбрасывается.
//
// Пустая выдача — это не ошибка: Items пуст, оба флага false, курсоры пустые.
// Ошибки fetch возвращаются как есть (поверх op-обёртки) — ретраев здесь нет.
func Paginate[T any](ctx context.Context, req Request, fetch FetchFunc[T], key KeyFunc[T]) (*Page[T], error) {
	const op = "pagination/engine/Paginate"

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	if limit < MinLimit || limit > MaxLimit {
		return nil, fmt.Errorf("%s: limit %d: %w", op, limit, ErrInvalidFilter)
	}

	if !req.SortBy.valid() {
		return nil, fmt.Errorf("%s: sort_by %q: %w", op, req.SortBy, ErrInvalidFilter)
	}

	if !req.Order.valid() {
		return nil, fmt.Errorf("%s: order %q: %w", op, req.Order, ErrInvalidFilter)
	}

	if err := req.Filters.validate(); err != nil {
		return nil, fmt.Errorf("%s: date range: %w", op, err)
	}

	var cur *Cursor
	if strings.TrimSpace(req.Cursor) != "" {
		c, err := DecodeCursor(req.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		// Курсор от другой сортировки указывает на позицию в другом порядке.
		if c.Field != req.SortBy {
			return nil, fmt.Errorf("%s: cursor field %q for sort %q: %w", op, c.Field, req.SortBy, ErrInvalidCursor)
		}

		cur = &c
	}

	backward := cur != nil && cur.Dir == DirPrev

	eff := req.Order
	if backward {
		eff = eff.invert()
	}

	filter := BuildFilter(req.Filters, req.SortBy, eff, cur)
	sort := BuildSort(req.SortBy, eff)

	items, err := fetch(ctx, filter, sort, limit+1)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", op, err)
	}

	// Лишний элемент всегда последний в порядке fetch: при шаге назад после
	// разворота он оказался бы первым, поэтому срез усекается до разворота.
	extra := int64(len(items)) > limit
	if extra {
		items = items[:limit]
	}

	if backward {
		reverse(items)
	}

	page := &Page[T]{Items: items, Limit: limit}
	if len(items) == 0 {
		return page, nil
	}

	if backward {
		// Назад шагнули с какой-то страницы — следующая точно есть.
		page.HasNext = true
		page.HasPrev = extra
	} else {
		page.HasNext = extra
		page.HasPrev = cur != nil
	}

	if page.HasNext {
		page.NextCursor = EncodeCursor(cursorFromKey(req.SortBy, DirNext, key(items[len(items)-1])))
	}

	if page.HasPrev {
		page.PrevCursor = EncodeCursor(cursorFromKey(req.SortBy, DirPrev, key(items[0])))
	}

	return page, nil
}

func cursorFromKey(field SortField, dir Direction, k Key) Cursor {
	return Cursor{
		Field: field,
		Dir:   dir,
		Time:  k.Time,
		Title: k.Title,
		ID:    k.ID,
	}
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
