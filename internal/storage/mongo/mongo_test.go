package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

// testTimeout - общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Адрес контейнера прокидывается в ENV DATABASE_URL, а каждый тест
// создаёт свою БД с уникальным именем (см. mustNewMongo).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной тестовой БД и регистрирует очистку.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	uri := os.Getenv("DATABASE_URL") + "/tenders_test_" + uuid.New().String()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, uri)
	require.NoError(t, err, "DATABASE_URL=%s", uri)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		m.Close()
	})

	return m
}

func ptr[T any](v T) *T { return &v }

func mkTender(url string, deadline time.Time) models.Tender {
	return models.Tender{
		Title:           "Tender " + url,
		PublicationDate: deadline.Add(-72 * time.Hour),
		Deadline:        deadline,
		TenderURL:       url,
		Source:          "service.bund.de Tenders",
		Status:          models.StatusNew,
	}
}

func TestDatabaseFromURI(t *testing.T) {
	t.Parallel()

	require.Equal(t, "db1", databaseFromURI("mongodb://localhost:27017/db1"))
	require.Equal(t, "db1", databaseFromURI("mongodb://u:p@localhost:27017/db1?authSource=admin"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017/"))
}

func TestBuildFilter(t *testing.T) {
	t.Parallel()

	require.Empty(t, buildFilter(models.ListOptions{}))

	f := buildFilter(models.ListOptions{Search: " a.b ", Category: "Bauarbeiten", Status: "new"})
	require.Len(t, f, 3)
	require.Equal(t, "$or", f[0].Key)
	or := f[0].Value.(bson.A)
	require.Equal(t, bson.D{{Key: "title", Value: primitive.Regex{Pattern: `a\.b`, Options: "i"}}}, or[0])
	require.Equal(t, bson.E{Key: "category", Value: "Bauarbeiten"}, f[1])
	require.Equal(t, bson.E{Key: "status", Value: "new"}, f[2])
}

func TestDocRoundTrip_OptionalFields(t *testing.T) {
	t.Parallel()

	in := mkTender("https://x/1", time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC))
	in.ID = uuid.New()
	in.Category = ptr(models.CategoryFacility)

	out, err := fromDoc(toDoc(in))
	require.NoError(t, err)
	require.Equal(t, in.ID, out.ID)
	require.Equal(t, models.CategoryFacility, *out.Category)
	require.Nil(t, out.Region)
	require.Nil(t, out.EstimatedValue)

	_, err = fromDoc(tenderDoc{ID: "not-a-uuid"})
	require.Error(t, err)
}

func TestInsertTender_ExistsAndDuplicate(t *testing.T) {
	m := mustNewMongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	url := "https://example.org/t/1"
	exists, err := m.TenderExists(ctx, url)
	require.NoError(t, err)
	require.False(t, exists)

	tender := mkTender(url, time.Now().Add(24*time.Hour))
	tender.Region = ptr("Berlin")
	require.NoError(t, m.InsertTender(ctx, tender))

	exists, err = m.TenderExists(ctx, url)
	require.NoError(t, err)
	require.True(t, exists)

	err = m.InsertTender(ctx, mkTender(url, time.Now()))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestListTenders_SortNullsLastAndPaginate(t *testing.T) {
	m := mustNewMongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		tender := mkTender(fmt.Sprintf("https://example.org/t/%d", i), base.Add(time.Duration(i)*time.Hour))
		if i > 0 {
			tender.EstimatedValue = ptr(float64(i) * 1000)
			tender.Category = ptr(models.CategoryIT)
			tender.Region = ptr("Hamburg")
		}
		require.NoError(t, m.InsertTender(ctx, tender))
	}

	for _, order := range []models.SortOrder{models.SortAsc, models.SortDesc} {
		page, err := m.ListTenders(ctx, models.ListOptions{SortBy: models.SortByEstimatedValue, SortOrder: order, Page: 1, Limit: 10})
		require.NoError(t, err)
		require.EqualValues(t, 4, page.Total)
		require.Len(t, page.Items, 4)
		require.Nil(t, page.Items[3].EstimatedValue, string(order))
	}

	page, err := m.ListTenders(ctx, models.ListOptions{SortBy: models.SortByDeadline, SortOrder: models.SortDesc, Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "https://example.org/t/0", page.Items[0].TenderURL)

	byID, err := m.TenderByID(ctx, page.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, page.Items[0].TenderURL, byID.TenderURL)

	_, err = m.TenderByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = m.ListTenders(ctx, models.ListOptions{SortBy: "title"})
	require.ErrorIs(t, err, storage.ErrInvalidArgument)

	filters, err := m.Filters(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{string(models.CategoryIT)}, filters.Categories)
	require.Equal(t, []string{"Hamburg"}, filters.Regions)
}
