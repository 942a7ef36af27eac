package corona

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/limejump/corona-analytics/pkg/config"
	"github.com/limejump/corona-analytics/pkg/httputil"
	"github.com/limejump/corona-analytics/pkg/logger"
)

// Corona API paths
const (
	PathQuotes        = "ppa/quotes"
	PathProductQuotes = "ppa/product-quotes"
	PathRegistrations = "ppa/registrations"
	PathSites         = "sites"
	PathBillingInfo   = "billing-info"
	PathCompanies     = "companies"
)

var ErrNotFound = errors.New("corona: not found")

// Client handles communication with the Corona API
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a Corona client; the token is sent as the Authorization header
func NewClient(cfg config.CoronaConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if cfg.Token != "" {
		httpClient.WithHeader("Authorization", cfg.Token)
	}
	return &Client{
		httpClient: httpClient,
		logger:     log.Component("corona"),
		baseURL:    base,
	}
}

// collectionURL returns the list URL for path, e.g. <base>ppa/quotes/
func (c *Client) collectionURL(path string) string {
	return c.baseURL + path + "/"
}

// detailURL returns the URL of a single resource, e.g. <base>sites/42
func (c *Client) detailURL(path string, id int64) string {
	return fmt.Sprintf("%s%s/%d", c.baseURL, path, id)
}

// get decodes a Corona response, mapping 404 to ErrNotFound
func (c *Client) get(ctx context.Context, endpoint, rawURL string, query url.Values, dest interface{}) error {
	err := c.httpClient.GetJSON(ctx, endpoint, rawURL, query, dest)
	if err == nil {
		return nil
	}

	var serr *httputil.StatusError
	if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, serr.URL)
	}

	c.logger.WithError(err).WithField("endpoint", endpoint).Warn("Corona request failed")
	return fmt.Errorf("corona %s: %w", endpoint, err)
}
