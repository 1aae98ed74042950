package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

// maxPageBytes bounds how much of a response body is read.
const maxPageBytes = 10 << 20

// Doer is satisfied by network.Client.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Fetcher downloads the target page with a single GET. It never retries.
type Fetcher struct {
	client  Doer
	timeout time.Duration
	logger  zerolog.Logger
}

func NewFetcher(client Doer, timeout time.Duration, logger zerolog.Logger) *Fetcher {
	return &Fetcher{client: client, timeout: timeout, logger: logger}
}

func (f *Fetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	applyHeaders(req, nil)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode, Err: ErrHTTPStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	f.logger.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("page fetched")
	return body, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
