package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
)

// ErrFetch - ошибка загрузки ленты (сеть, таймаут, HTTP-статус >= 400).
var ErrFetch = errors.New("feed fetch failed")

// FetcherOptions - параметры HTTP-запроса к ленте.
type FetcherOptions struct {
	UserAgent      string
	Accept         string
	AcceptLanguage string
	// Timeout применяется только к клиенту, созданному самим Fetcher.
	Timeout time.Duration
	// MaxRedirects применяется только к клиенту, созданному самим Fetcher.
	MaxRedirects int
	// MaxBodyBytes - 0 означает «без ограничения».
	MaxBodyBytes int64
}

// Response - «сырой» ответ источника.
type Response struct {
	Body        []byte
	Status      int
	ContentType string
}

// Fetcher загружает ленту одним GET-запросом, без повторов:
// политика ретраев принадлежит внешнему планировщику.
type Fetcher struct {
	client *http.Client
	opts   FetcherOptions
}

// NewFetcher создаёт Fetcher. Если client == nil, создаётся клиент
// с opts.Timeout и ограничением числа редиректов opts.MaxRedirects.
func NewFetcher(client *http.Client, opts FetcherOptions) *Fetcher {
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}

		client = &http.Client{
			Timeout:       timeout,
			CheckRedirect: limitRedirects(opts.MaxRedirects),
		}
	}

	return &Fetcher{client: client, opts: opts}
}

// limitRedirects разрешает не более max переходов.
func limitRedirects(max int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) > max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		return nil
	}
}

// Fetch загружает ленту по url.
// Любая ошибка оборачивает ErrFetch и исходную причину.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	const op = "feed.Fetch"

	lg := log.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: new_request: %w", op, ErrFetch, err)
	}

	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}
	if f.opts.Accept != "" {
		req.Header.Set("Accept", f.opts.Accept)
	}
	if f.opts.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.opts.AcceptLanguage)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		lg.Warn("feed_http_error",
			slog.String("op", op),
			slog.String("url", url),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w: do: %w", op, ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w: status=%d", op, ErrFetch, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.opts.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, f.opts.MaxBodyBytes+1)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: read_body: %w", op, ErrFetch, err)
	}

	if f.opts.MaxBodyBytes > 0 && int64(len(raw)) > f.opts.MaxBodyBytes {
		return nil, fmt.Errorf("%s: %w: body exceeds %d bytes", op, ErrFetch, f.opts.MaxBodyBytes)
	}

	lg.Debug("feed_fetched",
		slog.String("op", op),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(raw)),
		slog.Duration("dur", time.Since(start)),
	)

	return &Response{
		Body:        raw,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
