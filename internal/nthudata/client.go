package nthudata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/cenkalti/backoff/v4"

	"nthudata.org/api/internal/logging"
)

const fileDetailsPath = "file_details.json"

type fileDetail struct {
	LastCommit string `json:"last_commit"`
}

// Client talks to the data repository over HTTP.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	details    gcache.Cache
	payloads   gcache.Cache
}

// NewClient creates a Client. A nil logger falls back to slog.Default.
func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultConfig().CacheSize
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultConfig().RequestTimeout
	}

	client := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		logger:     logger.With(slog.String("component", "nthudata")),
		payloads:   gcache.New(config.CacheSize).LRU().Build(),
	}
	// Without a TTL every Get rechecks the listing.
	if config.DetailsTTL > 0 {
		client.details = gcache.New(1).Simple().Expiration(config.DetailsTTL).Build()
	}
	return client
}

// Get returns the newest version of key. The payload is downloaded only when
// its commit hash has not been seen before.
func (c *Client) Get(ctx context.Context, key string) (*Snapshot, error) {
	details, err := c.fileDetails(ctx)
	if err != nil {
		return nil, err
	}

	detail, ok := details[key]
	if !ok || detail.LastCommit == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	cacheKey := key + "@" + detail.LastCommit
	if cached, err := c.payloads.Get(cacheKey); err == nil {
		return &Snapshot{CommitHash: detail.LastCommit, Payload: cached.(json.RawMessage)}, nil
	}

	body, err := c.download(ctx, key)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrUpstream, key)
	}

	payload := json.RawMessage(body)
	if err := c.payloads.Set(cacheKey, payload); err != nil {
		logging.LogError(c.logger, "failed to cache payload", err, slog.String("key", key))
	}
	logging.LogOperation(c.logger, "nthudata_payload_downloaded",
		slog.String("key", key),
		slog.String("commit", detail.LastCommit),
		slog.Int("bytes", len(body)))

	return &Snapshot{CommitHash: detail.LastCommit, Payload: payload}, nil
}

// Invalidate forgets the cached file listing so the next Get rechecks hashes.
func (c *Client) Invalidate() {
	if c.details != nil {
		c.details.Purge()
	}
}

func (c *Client) fileDetails(ctx context.Context) (map[string]fileDetail, error) {
	if c.details != nil {
		if cached, err := c.details.Get(fileDetailsPath); err == nil {
			return cached.(map[string]fileDetail), nil
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.config.MaxRetries), ctx)

	details, err := backoff.RetryNotifyWithData(
		func() (map[string]fileDetail, error) {
			body, err := c.download(ctx, fileDetailsPath)
			if err != nil {
				return nil, err
			}
			var details map[string]fileDetail
			if err := json.Unmarshal(body, &details); err != nil {
				return nil, backoff.Permanent(fmt.Errorf("%w: decode %s: %v", ErrUpstream, fileDetailsPath, err))
			}
			return details, nil
		},
		policy,
		func(err error, d time.Duration) {
			c.logger.Warn("retrying file details fetch", "error", err, "backoff", d)
		},
	)
	if err != nil {
		return nil, err
	}

	if c.details != nil {
		if err := c.details.Set(fileDetailsPath, details); err != nil {
			logging.LogError(c.logger, "failed to cache file details", err)
		}
	}
	return details, nil
}

func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "http_response_body")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, path))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s returned %d", ErrUpstream, path, resp.StatusCode))
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s returned %d", ErrUpstream, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}
