package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
)

// koboToNaira renders a kobo amount as the decimal naira string the
// aggregator APIs expect.
func koboToNaira(amountKobo int64) string {
	return entity.KoboToString(amountKobo)
}

// httpDoer is the subset of http.Client the adapters need.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient builds the shared client used by all provider adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// postForm sends an application/x-www-form-urlencoded POST and returns the
// raw response body. Any transport or read failure is returned as an error
// so callers can treat the outcome as unknown rather than rejected.
func postForm(ctx context.Context, client httpDoer, endpoint string, values url.Values, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return doRead(client, req)
}

// postJSON sends a JSON POST with the given pre-encoded body.
func postJSON(ctx context.Context, client httpDoer, endpoint string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return doRead(client, req)
}

// get sends a GET request and returns the raw response body.
func get(ctx context.Context, client httpDoer, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return doRead(client, req)
}

func doRead(client httpDoer, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	return body, nil
}
