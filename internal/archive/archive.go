// archive сохраняет «сырые» снимки RSS-ленты в S3-совместимое хранилище (MinIO).
// Снимок пишется один раз на прогон по ключу feeds/YYYY/MM/DD/<run_id>.xml.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pribylovaa/go-tender-aggregator/internal/config"
)

const defaultContentType = "application/rss+xml"

// FeedArchive - адаптер MinIO для снимков ленты.
type FeedArchive struct {
	client *mclient.Client
	bucket string
}

// New создает клиент MinIO.
// Схема endpoint определяет Secure, бакет должен существовать заранее.
func New(ctx context.Context, cfg config.ArchiveConfig) (*FeedArchive, error) {
	const op = "archive.New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &FeedArchive{client: client, bucket: cfg.Bucket}, nil
}

// FeedKey - ключ объекта снимка: дата прогона в UTC и его идентификатор.
func FeedKey(runID string, at time.Time) string {
	return path.Join("feeds", at.UTC().Format("2006/01/02"), runID+".xml")
}

// PutFeed сохраняет тело ленты и возвращает ключ объекта.
func (a *FeedArchive) PutFeed(ctx context.Context, runID string, at time.Time, body []byte, contentType string) (string, error) {
	const op = "archive.PutFeed"

	if runID == "" {
		return "", fmt.Errorf("%s: empty run id", op)
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	key := FeedKey(runID, at)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), mclient.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"run-id": runID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return key, nil
}
