package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-downloader/internal/config"
)

func newTestClient(baseURL string) *Client {
	return New(&config.Config{
		AuthToken: "test-token",
		APIKey:    "test-key",
		BaseURL:   baseURL,
		StoreID:   1560,
	})
}

func TestListOrderHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pcx-bff/api/v1/ecommerce/v2/superstore/customers/historical-orders", r.URL.Path)
		assert.Equal(t, "bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "test-key", r.Header.Get("x-apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "https://www.realcanadiansuperstore.ca/", r.Header.Get("Referer"))

		w.Write([]byte(`{
			"offlineOrdersCount": 2,
			"onlineOrdersCount": 0,
			"orderHistory": [
				{"id": "1001", "total": 42.50, "placed": "2024-03-01T15:04:05Z", "store": "Superstore"},
				{"id": "1002", "total": 13.37, "placed": "2024-03-08T15:04:05Z", "store": "Superstore"}
			]
		}`))
	}))
	defer srv.Close()

	history, err := newTestClient(srv.URL).ListOrderHistory(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, history.OfflineOrdersCount)
	require.Len(t, history.OrderHistory, 2)
	assert.Equal(t, "1001", history.OrderHistory[0].ID)
	assert.Equal(t, 42.50, history.OrderHistory[0].Total)
	assert.Equal(t, "Superstore", history.OrderHistory[1].Store)
}

func TestListOrderHistoryStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListOrderHistory(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
}

func TestListOrderHistoryDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListOrderHistory(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestFetchOrderDetailReturnsBodyVerbatim(t *testing.T) {
	raw := "{\n  \"orderDetails\": {\"entries\": []}\n}"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pcx-bff/api/v1/ecommerce/v2/superstore/customers/historical-orders/1001", r.URL.Path)
		w.Write([]byte(raw))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).FetchOrderDetail(context.Background(), "1001")
	require.NoError(t, err)
	require.Equal(t, raw, body)
}

func TestFetchOrderDetailStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchOrderDetail(context.Background(), "1001")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestFetchProductDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pcx-bff/api/v1/products/20345678_EA", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "en", query.Get("lang"))
		assert.Equal(t, time.Now().Format("02012006"), query.Get("date"))
		assert.Equal(t, "STORE", query.Get("pickupType"))
		assert.Equal(t, "1560", query.Get("storeId"))
		assert.Equal(t, "superstore", query.Get("banner"))

		w.Write([]byte(`{"name":"bread"}`))
	}))
	defer srv.Close()

	body, status, err := newTestClient(srv.URL).FetchProductDetail(context.Background(), "20345678_EA")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"name":"bread"}`, body)
}

func TestFetchProductDetailMissIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	body, status, err := newTestClient(srv.URL).FetchProductDetail(context.Background(), "20345678_EA")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, body)
}
