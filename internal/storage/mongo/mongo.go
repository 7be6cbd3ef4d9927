package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/crypto-news-api/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	newsCollection = "news"
	defaultDBName  = "crypto_news"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	news   *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		client: cli,
		db:     db,
		news:   db.Collection(newsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы под профили чтения новостной ленты.
//   - releasedAt(desc) + _id(desc) — лента по умолчанию и keyset-граница;
//   - source + releasedAt(desc), assets.slug + releasedAt(desc) — фильтры ленты;
//   - slug (unique) — карточка новости;
//   - createdAt(desc) + _id(desc), title + _id — альтернативные сортировки.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "releasedAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("released_id_desc"),
		},
		{
			Keys:    bson.D{{Key: "source", Value: 1}, {Key: "releasedAt", Value: -1}},
			Options: options.Index().SetName("source_released_desc"),
		},
		{
			Keys:    bson.D{{Key: "assets.slug", Value: 1}, {Key: "releasedAt", Value: -1}},
			Options: options.Index().SetName("asset_released_desc"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_id_desc"),
		},
		{
			Keys:    bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("title_id_asc"),
		},
	}

	_, err := m.news.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
