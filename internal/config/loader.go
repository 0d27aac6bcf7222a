package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/revendamais/plan-quoter/pkg/catalog"
)

// maxRemoteSize caps the size of a price list fetched over HTTP
const maxRemoteSize = 1 << 20

// Loader resolves a catalog source: empty means the built-in price list,
// an http(s) URL is fetched, anything else is a local file path.
type Loader struct {
	httpClient *retryablehttp.Client
	logger     hclog.Logger
}

// NewLoader creates a loader with a retrying HTTP client
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 3 * time.Second
	retryClient.Logger = nil // Disable default logging
	retryClient.HTTPClient.Timeout = 15 * time.Second

	return &Loader{
		httpClient: retryClient,
		logger:     logger,
	}
}

// IsRemote reports whether source is fetched over HTTP
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load returns the catalog described by source
func (l *Loader) Load(ctx context.Context, source string) (*catalog.Catalog, error) {
	switch {
	case source == "":
		l.logger.Debug("using built-in price list")
		return catalog.Default(), nil
	case IsRemote(source):
		return l.loadRemote(ctx, source)
	default:
		l.logger.Debug("loading price list file", "path", source)
		return LoadCatalogFile(source)
	}
}

func (l *Loader) loadRemote(ctx context.Context, url string) (*catalog.Catalog, error) {
	l.logger.Debug("fetching price list", "url", url)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch price list: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read price list: %w", err)
	}

	cfg, err := ParseBytes(body, url)
	if err != nil {
		return nil, err
	}

	cat, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded remote price list", "url", url, "version", cat.Version())
	return cat, nil
}
