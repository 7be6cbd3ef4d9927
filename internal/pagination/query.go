package pagination

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filters — опциональные условия выдачи. Нулевые значения означают
// отсутствие условия; все заданные условия комбинируются через AND.
type Filters struct {
	// From/To ограничивают releasedAt полуинтервалом [From, To).
	From time.Time
	To   time.Time
	// Source — точное совпадение кода источника.
	Source string
	// AssetSlug — совпадение с любым элементом массива assets по slug.
	AssetSlug string
	// Keyword — регистронезависимый поиск подстроки в title/subtitle/content.
	// Значение экранируется, спецсимволы регулярных выражений ищутся буквально.
	Keyword string
}

// validate — согласованность диапазона дат. Равные границы допустимы
// (пустой полуинтервал), To раньше From — ошибка.
func (f Filters) validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return ErrInvalidFilter
	}

	return nil
}

// keywordFields — поля документа, по которым ищется keyword.
var keywordFields = [...]string{"title", "subtitle", "content"}

// BuildFilter собирает bson-предикат списка: пользовательские фильтры плюс
// граница курсора. Если и keyword, и курсор порождают $or-группы, они
// объединяются через явный $and (два ключа $or в одном документе невозможны).
func BuildFilter(f Filters, field SortField, order Order, cur *Cursor) bson.D {
	filter := bson.D{}

	if f.Source != "" {
		filter = append(filter, bson.E{Key: "source", Value: f.Source})
	}

	if f.AssetSlug != "" {
		filter = append(filter, bson.E{Key: "assets.slug", Value: f.AssetSlug})
	}

	if !f.From.IsZero() || !f.To.IsZero() {
		rng := bson.D{}
		if !f.From.IsZero() {
			rng = append(rng, bson.E{Key: "$gte", Value: f.From.UTC()})
		}

		if !f.To.IsZero() {
			rng = append(rng, bson.E{Key: "$lt", Value: f.To.UTC()})
		}

		filter = append(filter, bson.E{Key: "releasedAt", Value: rng})
	}

	var keywordOr bson.A
	if f.Keyword != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
		for _, key := range keywordFields {
			keywordOr = append(keywordOr, bson.D{{Key: key, Value: re}})
		}
	}

	var cursorOr bson.A
	if cur != nil {
		cursorOr = cursorCondition(field, order, cur)
	}

	switch {
	case keywordOr != nil && cursorOr != nil:
		filter = append(filter, bson.E{Key: "$and", Value: bson.A{
			bson.D{{Key: "$or", Value: keywordOr}},
			bson.D{{Key: "$or", Value: cursorOr}},
		}})
	case keywordOr != nil:
		filter = append(filter, bson.E{Key: "$or", Value: keywordOr})
	case cursorOr != nil:
		filter = append(filter, bson.E{Key: "$or", Value: cursorOr})
	}

	return filter
}

// cursorCondition — строгая компаунд-граница keyset-пагинации:
// (field < v) OR (field == v AND _id < id) для desc, с $gt для asc.
// Строгое неравенство исключает сам граничный документ из следующей страницы.
func cursorCondition(field SortField, order Order, cur *Cursor) bson.A {
	cmp := "$lt"
	if order == OrderAsc {
		cmp = "$gt"
	}

	var v any
	switch field {
	case SortByTitle:
		v = cur.Title
	default:
		v = cur.Time.UTC()
	}

	return bson.A{
		bson.D{{Key: string(field), Value: bson.D{{Key: cmp, Value: v}}}},
		bson.D{
			{Key: string(field), Value: v},
			{Key: "_id", Value: bson.D{{Key: cmp, Value: cur.ID}}},
		},
	}
}

// BuildSort — спецификация сортировки: поле запроса и _id в одном направлении.
func BuildSort(field SortField, order Order) bson.D {
	dir := -1
	if order == OrderAsc {
		dir = 1
	}

	return bson.D{
		{Key: string(field), Value: dir},
		{Key: "_id", Value: dir},
	}
}
