package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/microshop/order-service/internal/order/domain"
)

// Client queries the inventory service over HTTP. All sku codes of one order
// travel in a single request as repeated skuCode query parameters.
type Client struct {
	log     *slog.Logger
	httpc   *http.Client
	baseURL string
}

func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		httpc:   &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type availabilityResponse struct {
	SKUCode string `json:"skuCode"`
	InStock bool   `json:"inStock"`
}

// CheckAvailability performs one blocking round trip. Any transport failure,
// non-success status, or undecodable body is reported as an error, never as an
// out-of-stock answer.
func (c *Client) CheckAvailability(ctx context.Context, skuCodes []string) ([]domain.AvailabilityResult, error) {
	u, err := url.Parse(c.baseURL + "/api/inventory")
	if err != nil {
		return nil, fmt.Errorf("inventory url: %w", err)
	}
	q := u.Query()
	for _, code := range skuCodes {
		q.Add("skuCode", code)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("inventory request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory responded %d", resp.StatusCode)
	}

	var body []availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("inventory response decode: %w", err)
	}

	results := make([]domain.AvailabilityResult, len(body))
	for i, entry := range body {
		results[i] = domain.AvailabilityResult{SKUCode: entry.SKUCode, InStock: entry.InStock}
	}
	c.log.DebugContext(ctx, "inventory checked", "requested", len(skuCodes), "returned", len(results))
	return results, nil
}
