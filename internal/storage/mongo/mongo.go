// mongo реализует storage.Storage поверх MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

const (
	tendersCollection = "tenders"
	defaultDBName     = "tenders"

	// closeTimeout - дедлайн на Disconnect при Close().
	closeTimeout = 5 * time.Second
)

// Mongo - тонкий адаптер для подключения и коллекции тендеров.
type Mongo struct {
	client  *mongodriver.Client
	db      *mongodriver.Database
	tenders *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение и обеспечивает индексацию.
func New(ctx context.Context, uri string) (*Mongo, error) {
	const op = "storage.mongo.New"

	if uri == "" {
		return nil, fmt.Errorf("%s: empty uri", op)
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: connect: %w", op, err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	db := cli.Database(databaseFromURI(uri))
	m := &Mongo{
		client:  cli,
		db:      db,
		tenders: db.Collection(tendersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		m.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// Close отключает клиента.
func (m *Mongo) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	_ = m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы коллекции тендеров:
// - уникальный по tender_url (ключ дедупликации);
// - по полям сортировки с _id как тай-брейком;
// - по полям фильтров.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "tender_url", Value: 1}},
			Options: options.Index().SetName("tender_url_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "deadline", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("deadline_id"),
		},
		{
			Keys:    bson.D{{Key: "publication_date", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("publication_date_id"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "region", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("category_region_status"),
		},
	}

	if _, err := m.tenders.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Mongo)(nil)
