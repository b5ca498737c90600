package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"order-downloader/internal/config"
	"order-downloader/internal/entity"
)

const (
	referrer             = "https://www.realcanadiansuperstore.ca/"
	historicalOrdersPath = "/pcx-bff/api/v1/ecommerce/v2/superstore/customers/historical-orders"
	productsPath         = "/pcx-bff/api/v1/products"
	banner               = "superstore"
	pickupType           = "STORE"
	dateLayout           = "02012006"
)

// StatusError reports a non-success HTTP status from the remote API.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// Client is a read-only facade over the PC Express API.
type Client struct {
	baseURL    string
	authToken  string
	apiKey     string
	storeID    int
	httpClient *http.Client
}

// New creates a client from the loaded configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		authToken:  cfg.AuthToken,
		apiKey:     cfg.APIKey,
		storeID:    cfg.StoreID,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "bearer "+c.authToken)
	req.Header.Set("Referer", referrer)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-apikey", c.apiKey)
	return req, nil
}

// ListOrderHistory fetches the customer's historical-orders listing.
func (c *Client) ListOrderHistory(ctx context.Context) (*entity.OrderHistory, error) {
	url := c.baseURL + historicalOrdersPath
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, URL: url}
	}

	var history entity.OrderHistory
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("decoding order history: %w", err)
	}
	return &history, nil
}

// FetchOrderDetail fetches one order's full document and returns the
// response body verbatim; the raw text is what gets persisted.
func (c *Client) FetchOrderDetail(ctx context.Context, orderID string) (string, error) {
	url := fmt.Sprintf("%s%s/%s", c.baseURL, historicalOrdersPath, orderID)
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Status: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading order %s body: %w", orderID, err)
	}
	return string(body), nil
}

// FetchProductDetail fetches one product's full document for today's date
// at the configured store. A non-success status is not an error: individual
// discontinued or unavailable products are expected, so the status is
// returned for the caller to report and skip. err is set only for
// transport-level failures.
func (c *Client) FetchProductDetail(ctx context.Context, productID string) (string, int, error) {
	date := time.Now().Format(dateLayout)
	url := fmt.Sprintf("%s%s/%s?lang=en&date=%s&pickupType=%s&storeId=%d&banner=%s",
		c.baseURL, productsPath, productID, date, pickupType, c.storeID, banner)

	req, err := c.newRequest(ctx, url)
	if err != nil {
		return "", 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("reading product %s body: %w", productID, err)
	}
	return string(body), resp.StatusCode, nil
}
