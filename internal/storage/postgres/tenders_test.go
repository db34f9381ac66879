package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

// Интеграционные тесты для пакета postgres:
// - поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - применяют миграции из ./migrations;
// - проверяют TenderExists/InsertTender (уникальность tender_url -> ErrAlreadyExists),
//   ListTenders (фильтры, сортировка, пагинация, total), TenderByID и Filters.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile - определяет корень репозитория относительно текущего файла тестов.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration - читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres - поднимает PostgreSQL, применяет миграции и возвращает хранилище.
// Если переменная окружения GO_TEST_INTEGRATION не установлена - тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// Postgres может принять соединение до завершения init-скриптов.
	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		p, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return false
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return false
		}
		pool = p
		return true
	}, 30*time.Second, 500*time.Millisecond)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "1_init_tenders.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func ptr[T any](v T) *T { return &v }

func mkTender(url string, deadline time.Time) models.Tender {
	return models.Tender{
		Title:           "Tender " + url,
		Description:     "Beschreibung",
		PublicationDate: deadline.Add(-72 * time.Hour),
		Deadline:        deadline,
		TenderURL:       url,
		Source:          "service.bund.de Tenders",
		SourceURL:       "https://www.service.bund.de/feed.xml",
		Status:          models.StatusNew,
	}
}

func TestIntegration_InsertTender_ExistsAndDuplicate(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()
	ctx := context.Background()

	url := "https://example.org/t/1"
	exists, err := st.TenderExists(ctx, url)
	require.NoError(t, err)
	require.False(t, exists)

	tender := mkTender(url, time.Now().UTC().Add(24*time.Hour).Truncate(time.Second))
	tender.Category = ptr(models.CategoryIT)
	tender.Region = ptr("Berlin")
	tender.EstimatedValue = ptr(50000.0)
	require.NoError(t, st.InsertTender(ctx, tender))

	exists, err = st.TenderExists(ctx, url)
	require.NoError(t, err)
	require.True(t, exists)

	err = st.InsertTender(ctx, mkTender(url, time.Now().UTC()))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	page, err := st.ListTenders(ctx, models.ListOptions{SortBy: models.SortByDeadline, SortOrder: models.SortAsc, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)

	got := page.Items[0]
	require.NotEqual(t, uuid.Nil, got.ID)
	require.True(t, tender.Deadline.Equal(got.Deadline))
	require.Equal(t, models.CategoryIT, *got.Category)
	require.Equal(t, "Berlin", *got.Region)
	require.InDelta(t, 50000.0, *got.EstimatedValue, 0.001)
	require.Equal(t, models.StatusNew, got.Status)
	require.False(t, got.CreatedAt.IsZero())

	byID, err := st.TenderByID(ctx, got.ID)
	require.NoError(t, err)
	require.Equal(t, url, byID.TenderURL)
}

func TestIntegration_TenderByID_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.TenderByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ListTenders_FilterSortPaginate(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tender := mkTender(fmt.Sprintf("https://example.org/t/%d", i), base.Add(time.Duration(i)*time.Hour))
		if i%2 == 0 {
			tender.Category = ptr(models.CategoryConstruction)
			tender.Region = ptr("Bayern")
			tender.EstimatedValue = ptr(float64(i+1) * 1000)
		}
		if i == 3 {
			tender.Title = "Neubau Software_Portal"
		}
		require.NoError(t, st.InsertTender(ctx, tender))
	}

	page, err := st.ListTenders(ctx, models.ListOptions{
		Category: string(models.CategoryConstruction), SortBy: models.SortByEstimatedValue,
		SortOrder: models.SortDesc, Page: 1, Limit: 2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	require.InDelta(t, 5000.0, *page.Items[0].EstimatedValue, 0.001)
	require.InDelta(t, 3000.0, *page.Items[1].EstimatedValue, 0.001)
	require.EqualValues(t, 2, page.TotalPages())

	page2, err := st.ListTenders(ctx, models.ListOptions{
		Category: string(models.CategoryConstruction), SortBy: models.SortByEstimatedValue,
		SortOrder: models.SortDesc, Page: 2, Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	require.InDelta(t, 1000.0, *page2.Items[0].EstimatedValue, 0.001)

	// estimated_value NULL - в конце при любом направлении.
	all, err := st.ListTenders(ctx, models.ListOptions{SortBy: models.SortByEstimatedValue, SortOrder: models.SortAsc, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all.Items, 5)
	require.NotNil(t, all.Items[0].EstimatedValue)
	require.Nil(t, all.Items[4].EstimatedValue)

	// Поиск без учёта регистра; "_" - литерал, а не шаблон.
	found, err := st.ListTenders(ctx, models.ListOptions{Search: "software_portal", SortBy: models.SortByDeadline, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, found.Total)
	require.Equal(t, "https://example.org/t/3", found.Items[0].TenderURL)

	filters, err := st.Filters(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{string(models.CategoryConstruction)}, filters.Categories)
	require.Equal(t, []string{"Bayern"}, filters.Regions)
}

func TestIntegration_ListTenders_InvalidSort(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.ListTenders(context.Background(), models.ListOptions{SortBy: "title; DROP TABLE tenders", Limit: 10})
	require.ErrorIs(t, err, storage.ErrInvalidArgument)
}

func TestIntegration_InsertTender_ContextDeadlineExceeded(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	err := st.InsertTender(ctx, mkTender("https://example.org/deadline", time.Now().UTC()))
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), context.DeadlineExceeded.Error()))
}

func TestWhereClause(t *testing.T) {
	t.Parallel()

	where, args := whereClause(models.ListOptions{})
	require.Empty(t, where)
	require.Empty(t, args)

	where, args = whereClause(models.ListOptions{Search: " 100%_ok ", Category: "Bauarbeiten", Region: "Berlin", Status: "new"})
	require.Equal(t, "WHERE (title ILIKE $1 OR description ILIKE $1) AND category = $2 AND region = $3 AND status = $4", where)
	require.Equal(t, []any{`%100\%\_ok%`, "Bauarbeiten", "Berlin", "new"}, args)

	where, args = whereClause(models.ListOptions{Region: "Bayern"})
	require.Equal(t, "WHERE region = $1", where)
	require.Equal(t, []any{"Bayern"}, args)
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	got, ok := orderClause(models.SortByDeadline, models.SortAsc)
	require.True(t, ok)
	require.Equal(t, "ORDER BY deadline ASC NULLS LAST, id ASC", got)

	got, ok = orderClause(models.SortByEstimatedValue, models.SortDesc)
	require.True(t, ok)
	require.Equal(t, "ORDER BY estimated_value DESC NULLS LAST, id DESC", got)

	_, ok = orderClause("title", models.SortAsc)
	require.False(t, ok)

	_, ok = orderClause(models.SortByDeadline, "sideways")
	require.False(t, ok)
}
