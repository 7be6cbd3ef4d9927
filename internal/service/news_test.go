package service

// Тесты сервисного слоя crypto-news-api (internal/service/news.go).
//
//  Проверяем:
//  - валидацию входов (sort_by/order/limit/диапазон дат/slug);
//  - маппинг ошибок pagination/storage -> service (InvalidFilter / InvalidCursor / NotFound / Unavailable / Internal);
//  - подстановку дефолтного лимита из конфигурации и передачу фильтров в storage;
//  - happy-path каждого метода.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейса хранилища:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1
//
// Примечание: моки сгенерированы в пакете /mocks (MockStorage).

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/crypto-news-api/internal/config"
	"github.com/pribylovaa/crypto-news-api/internal/models"
	"github.com/pribylovaa/crypto-news-api/internal/storage"
	"github.com/pribylovaa/crypto-news-api/mocks"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newServiceWithMocks — поднимает сервис с моками стораджа.
func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	s := &Service{
		storage: ms,
		cfg: config.Config{
			Limits: config.LimitsConfig{Default: 100},
		},
	}
	return s, ms, ctrl
}

// mustNews — быстрый хелпер для сборки новости.
func mustNews(slug string, released time.Time) models.News {
	return models.News{
		ID:         primitive.NewObjectID(),
		Slug:       slug,
		Title:      "Title " + slug,
		Source:     "coindesk",
		ReleasedAt: released.UTC(),
		CreatedAt:  released.UTC(),
		UpdatedAt:  released.UTC(),
	}
}

// Валидация: неизвестные sort_by/order, limit вне диапазона, to < from,
// битый курсор. До стораджа такие запросы не доходят.
func TestService_ListNews_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// неизвестное поле сортировки
	_, err := s.ListNews(context.Background(), ListNewsInput{SortBy: "rating"})
	require.ErrorIs(t, err, ErrInvalidFilter)

	// неизвестный порядок
	_, err = s.ListNews(context.Background(), ListNewsInput{Order: "sideways"})
	require.ErrorIs(t, err, ErrInvalidFilter)

	// limit вне [10, 1000]
	_, err = s.ListNews(context.Background(), ListNewsInput{Limit: 5})
	require.ErrorIs(t, err, ErrInvalidFilter)

	_, err = s.ListNews(context.Background(), ListNewsInput{Limit: 1001})
	require.ErrorIs(t, err, ErrInvalidFilter)

	// to раньше from
	from := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err = s.ListNews(context.Background(), ListNewsInput{From: &from, To: &to})
	require.ErrorIs(t, err, ErrInvalidFilter)

	// битый cursor-токен
	_, err = s.ListNews(context.Background(), ListNewsInput{Cursor: "!!!"})
	require.ErrorIs(t, err, ErrInvalidCursor)
}

// limit=0 -> дефолт из конфигурации; сторадж получает default+1 (запрос лишнего элемента).
func TestService_ListNews_DefaultLimitFromConfig(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	s.cfg.Limits.Default = 42

	ms.EXPECT().
		FindNews(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ bson.D, _ bson.D, limit int64) ([]models.News, error) {
			require.EqualValues(t, 43, limit)
			return nil, nil
		})

	page, err := s.ListNews(context.Background(), ListNewsInput{})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
	require.EqualValues(t, 42, page.Limit)
}

// Happy-path: лишний элемент отбрасывается, выставляется has_next и next_cursor.
func TestService_ListNews_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	fetched := []models.News{
		mustNews("c", base.Add(2*time.Hour)),
		mustNews("b", base.Add(time.Hour)),
		mustNews("a", base),
	}

	ms.EXPECT().
		FindNews(gomock.Any(), gomock.Any(), gomock.Any(), int64(11)).
		Return(fetched, nil)

	page, err := s.ListNews(context.Background(), ListNewsInput{Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	require.Equal(t, "c", page.Items[0].Slug)
	require.Equal(t, "a", page.Items[2].Slug)
	require.False(t, page.HasNext, "страница меньше limit — следующей нет")
	require.False(t, page.HasPrev)
	require.Empty(t, page.NextCursor)
}

// Страница, заполненная под завязку: fetch вернул limit+1 элементов.
func TestService_ListNews_TrimsExtraItem(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	fetched := make([]models.News, 0, 11)
	for i := 10; i >= 0; i-- {
		fetched = append(fetched, mustNews("n", base.Add(time.Duration(i)*time.Hour)))
	}

	ms.EXPECT().
		FindNews(gomock.Any(), gomock.Any(), gomock.Any(), int64(11)).
		Return(fetched, nil)

	page, err := s.ListNews(context.Background(), ListNewsInput{Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 10)
	require.True(t, page.HasNext)
	require.NotEmpty(t, page.NextCursor)
}

// Фильтры доезжают до стораджа в собранном виде.
func TestService_ListNews_PassesFiltersToStorage(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ms.EXPECT().
		FindNews(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter bson.D, sort bson.D, _ int64) ([]models.News, error) {
			require.Contains(t, filter, bson.E{Key: "source", Value: "coindesk"})
			require.Contains(t, filter, bson.E{Key: "assets.slug", Value: "bitcoin"})
			require.Equal(t, bson.D{
				{Key: "releasedAt", Value: -1},
				{Key: "_id", Value: -1},
			}, sort)
			return nil, nil
		})

	_, err := s.ListNews(context.Background(), ListNewsInput{
		Source:    "  coindesk  ",
		AssetSlug: "bitcoin",
	})
	require.NoError(t, err)
}

// Маппинг: ошибки стораджа должны транслироваться в сервисные.
func TestService_ListNews_StorageErrors(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// Unavailable
	ms.EXPECT().
		FindNews(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrUnavailable)
	_, err := s.ListNews(context.Background(), ListNewsInput{})
	require.ErrorIs(t, err, ErrUnavailable)

	// Internal (любая иная)
	ms.EXPECT().
		FindNews(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))
	_, err = s.ListNews(context.Background(), ListNewsInput{})
	require.ErrorIs(t, err, ErrInternal)
}

// Валидация: пустой slug (после TrimSpace).
func TestService_NewsBySlug_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.NewsBySlug(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.NewsBySlug(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Happy-path: slug нормализуется, запись возвращается как есть.
func TestService_NewsBySlug_OK(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	want := mustNews("btc-rally", time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	want.Content = "full text"

	ms.EXPECT().
		NewsBySlug(gomock.Any(), "btc-rally").
		Return(&want, nil)

	got, err := s.NewsBySlug(context.Background(), "  btc-rally  ")
	require.NoError(t, err)
	require.Equal(t, &want, got)
	require.Equal(t, "full text", got.Content)
}

// Маппинг: ошибки стораджа должны транслироваться в сервисные.
func TestService_NewsBySlug_StorageErrors(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// NotFound
	ms.EXPECT().
		NewsBySlug(gomock.Any(), "missing").
		Return(nil, storage.ErrNotFound)
	_, err := s.NewsBySlug(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	// Unavailable
	ms.EXPECT().
		NewsBySlug(gomock.Any(), "btc").
		Return(nil, storage.ErrUnavailable)
	_, err = s.NewsBySlug(context.Background(), "btc")
	require.ErrorIs(t, err, ErrUnavailable)

	// Internal (любая иная)
	ms.EXPECT().
		NewsBySlug(gomock.Any(), "btc").
		Return(nil, errors.New("db down"))
	_, err = s.NewsBySlug(context.Background(), "btc")
	require.ErrorIs(t, err, ErrInternal)
}
