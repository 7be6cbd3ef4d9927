// service содержит бизнес-логику crypto-news-api.
package service

import (
	"errors"

	"github.com/pribylovaa/crypto-news-api/internal/config"
	"github.com/pribylovaa/crypto-news-api/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCursor — битый/чужой cursor-токен.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidFilter — некорректные параметры выдачи (limit, сортировка, диапазон дат).
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable — хранилище недоступно, запрос можно повторить позже.
	ErrUnavailable = errors.New("unavailable")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику crypto-news-api.
type Service struct {
	storage storage.Storage
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}
