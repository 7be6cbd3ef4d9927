// Package models содержит доменные сущности news-api.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News — внутренняя доменная модель новости (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB; участвует в курсорной пагинации как tie-break.
//   - Slug — человекочитаемый уникальный идентификатор для выдачи карточки.
//   - Source — машинный код источника (фильтр), SourceName/SourceURL — витринные поля.
//   - ReleasedAt/CreatedAt — ключи сортировки; хранятся в UTC (Mongo усекает до миллисекунд).
//   - Assets — привязанные активы; фильтрация идёт по assets.slug.
//   - Content в списочной выдаче не читается из БД (см. storage.FindNews), только в карточке.
type News struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Slug       string             `bson:"slug"`
	Title      string             `bson:"title"`
	Subtitle   string             `bson:"subtitle,omitempty"`
	Content    string             `bson:"content,omitempty"`
	Source     string             `bson:"source"`
	SourceName string             `bson:"sourceName,omitempty"`
	SourceURL  string             `bson:"sourceUrl,omitempty"`
	ReleasedAt time.Time          `bson:"releasedAt"`
	Assets     []Asset            `bson:"assets,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// Asset — актив, упомянутый в новости (например, криптовалюта).
type Asset struct {
	Name   string `bson:"name"`
	Slug   string `bson:"slug"`
	Symbol string `bson:"symbol"`
}
