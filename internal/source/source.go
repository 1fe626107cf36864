package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const maxErrorBody = 512

// Options parameterise dataset retrieval.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// Opener resolves a dataset reference to a readable stream.
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Loader opens local files and http(s) URLs.
type Loader struct {
	opts   Options
	logger zerolog.Logger
	client *http.Client
}

// NewLoader constructs a Loader.
func NewLoader(opts Options, logger zerolog.Logger) *Loader {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Loader{
		opts:   opts,
		logger: logger.With().Str("component", "source").Logger(),
		client: &http.Client{Timeout: timeout},
	}
}

// Open returns the dataset behind ref. The caller closes the stream.
func (l *Loader) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("dataset source not provided")
	}

	if isRemote(ref) {
		return l.fetch(ctx, ref)
	}

	file, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	l.logger.Debug().Str("path", ref).Msg("opened local dataset")
	return file, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create dataset request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")
	if ua := strings.TrimSpace(l.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "wcgoals/1.0")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp.StatusCode, resp.Body)
	}

	l.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("fetched remote dataset")
	return resp.Body, nil
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func parseHTTPError(status int, body io.Reader) error {
	payload, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if msg := strings.TrimSpace(string(payload)); msg != "" {
		return fmt.Errorf("dataset source error (%d): %s", status, msg)
	}
	return fmt.Errorf("dataset source error (%d)", status)
}

var _ Opener = (*Loader)(nil)
