package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domproduct "example.com/rocketshoes/app/internal/domain/product"
)

// Client reads products and stock from the storefront REST API
// (GET /products/{id}, GET /stock/{id}).
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient builds a client. timeout 0 means no per-request limit.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("catalog url %q must be absolute", baseURL)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := c.get(ctx, "products", id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetStock(ctx context.Context, id int64) (*domproduct.Stock, error) {
	var s domproduct.Stock
	if err := c.get(ctx, "stock", id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) get(ctx context.Context, resource string, id int64, dst any) error {
	endpoint := c.baseURL.JoinPath(resource, strconv.FormatInt(id, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domproduct.ErrLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domproduct.ErrLookup, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domproduct.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: GET %s: status %d", domproduct.ErrLookup, endpoint.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domproduct.ErrLookup, endpoint.Path, err)
	}
	return nil
}
