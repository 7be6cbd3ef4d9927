// Package pagination реализует курсорную (keyset) пагинацию поверх MongoDB:
// непрозрачные курсоры, сборку bson-предикатов и общий движок выдачи страниц.
//
// Ключ страницы — пара (значение сортировки, _id): _id всегда участвует как
// tie-break в том же направлении, поэтому порядок детерминирован даже при
// равных значениях поля сортировки, а страницы не дублируются и не теряют
// записи при вставках между запросами.
package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCursor — битый/чужой cursor-токен.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidFilter — некорректные параметры выдачи (limit, диапазон дат, сортировка).
	ErrInvalidFilter = errors.New("invalid filter")
)

// Пределы размера страницы.
const (
	DefaultLimit int64 = 100
	MinLimit     int64 = 10
	MaxLimit     int64 = 1000
)

// SortField — поле сортировки выдачи. Строковое значение совпадает
// с именем поля документа в MongoDB.
type SortField string

const (
	SortByReleasedAt SortField = "releasedAt"
	SortByTitle      SortField = "title"
	SortByCreatedAt  SortField = "createdAt"
)

// ParseSortField разбирает пользовательское значение sort_by.
// Пустая строка — сортировка по умолчанию (releasedAt).
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "":
		return SortByReleasedAt, nil
	case SortByReleasedAt, SortByTitle, SortByCreatedAt:
		return SortField(s), nil
	default:
		return "", fmt.Errorf("sort_by %q: %w", s, ErrInvalidFilter)
	}
}

func (f SortField) valid() bool {
	switch f {
	case SortByReleasedAt, SortByTitle, SortByCreatedAt:
		return true
	default:
		return false
	}
}

// Order — направление сортировки.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder разбирает пользовательское значение order.
// Пустая строка — порядок по умолчанию (desc, сначала новые).
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "":
		return OrderDesc, nil
	case OrderAsc, OrderDesc:
		return Order(s), nil
	default:
		return "", fmt.Errorf("order %q: %w", s, ErrInvalidFilter)
	}
}

func (o Order) valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// invert возвращает противоположное направление (для шага «назад»).
func (o Order) invert() Order {
	if o == OrderAsc {
		return OrderDesc
	}

	return OrderAsc
}
