// Package catalog fetches product metadata from the external catalog API
// and builds the lookup used for enrichment.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mwhitfield/salespipe/internal/common"
	"github.com/mwhitfield/salespipe/internal/model"
)

// DefaultLimit is how many products a single fetch requests. The API
// serves the whole catalog within the first page at this size, so no
// pagination is needed.
const DefaultLimit = 100

// Client implements the CatalogFetcher interface against a DummyJSON-style
// products endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limit      int
}

// productsResponse mirrors the API payload shape.
type productsResponse struct {
	Products []model.CatalogProduct `json:"products"`
}

// NewClient creates a catalog client with a bounded request timeout.
func NewClient(baseURL string, limit int, timeout time.Duration) *Client {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves the product catalog. Transport failures and non-200
// responses surface as ErrCatalogUnavailable; the caller decides whether
// that degrades the run or aborts it.
func (c *Client) Fetch(ctx context.Context) ([]model.CatalogProduct, error) {
	u, err := url.Parse(c.baseURL + "/products")
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL: %w", err)
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	slog.Debug("Requesting product catalog", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d - %s", common.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", common.ErrCatalogUnavailable, err)
	}

	slog.Info("Fetched product catalog", "products", len(payload.Products))

	return payload.Products, nil
}
