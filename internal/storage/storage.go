package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/crypto-news-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable — хранилище недоступно (сеть, таймаут, разорванное соединение).
	ErrUnavailable = errors.New("storage unavailable")
)

// Storage описывает операции чтения новостей.
//
// Слой намеренно узкий: состав фильтра и порядок сортировки собирает
// пагинационный движок (internal/pagination), хранилище лишь исполняет
// готовый запрос. Это позволяет подменять реализацию в тестах, не
// дублируя знание о keyset-границах.
type Storage interface {
	// FindNews возвращает до limit документов по готовому фильтру и сортировке.
	// Поле content в выдачу не входит (см. GET /news/{slug} для полной записи).
	FindNews(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]models.News, error)

	// NewsBySlug возвращает полную запись новости, включая content.
	// Если запись не найдена — ErrNotFound.
	NewsBySlug(ctx context.Context, slug string) (*models.News, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
