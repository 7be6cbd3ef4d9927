package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/crypto-news-api/internal/models"
	"github.com/pribylovaa/crypto-news-api/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindNews исполняет готовый фильтр и сортировку, собранные пагинационным
// движком, и возвращает до limit документов. Поле content исключается
// проекцией: в ленте оно не отдаётся, а тянуть полные тексты из коллекции
// ради списка дорого.
func (m *Mongo) FindNews(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]models.News, error) {
	const op = "storage/mongo/FindNews"

	findOpts := options.Find().
		SetSort(sort).
		SetLimit(limit).
		SetProjection(bson.D{{Key: "content", Value: 0}})

	cur, err := m.news.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, wrapDriverErr(op, err)
	}
	defer cur.Close(ctx)

	var items []models.News
	for cur.Next(ctx) {
		var n models.News
		if err := cur.Decode(&n); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		normalizeTimes(&n)
		items = append(items, n)
	}

	if err := cur.Err(); err != nil {
		return nil, wrapDriverErr(op, err)
	}

	return items, nil
}

// NewsBySlug возвращает полную запись новости, включая content.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) NewsBySlug(ctx context.Context, slug string) (*models.News, error) {
	const op = "storage/mongo/NewsBySlug"

	var out models.News
	err := m.news.FindOne(ctx, bson.D{{Key: "slug", Value: strings.TrimSpace(slug)}}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, wrapDriverErr(op, err)
	}

	normalizeTimes(&out)

	return &out, nil
}

// normalizeTimes приводит временные поля к UTC: драйвер отдаёт DateTime
// в локальной зоне процесса, а курсоры и ответы строятся по UTC.
func normalizeTimes(n *models.News) {
	n.ReleasedAt = n.ReleasedAt.UTC()
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
}

// wrapDriverErr классифицирует ошибки драйвера: сетевые проблемы, таймауты
// и разорванное соединение поднимаются наверх как storage.ErrUnavailable,
// остальное — как есть.
func wrapDriverErr(op string, err error) error {
	if mongodriver.IsTimeout(err) || mongodriver.IsNetworkError(err) || errors.Is(err, mongodriver.ErrClientDisconnected) {
		return fmt.Errorf("%s: %w: %v", op, storage.ErrUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
