package api

import (
	"database/sql"
	"errors"

	"github.com/labstack/echo/v4"

	"order-downloader/internal/repository"
)

// BrowseHandler serves read-only views over the downloaded data.
type BrowseHandler struct {
	store *repository.Store
}

func NewBrowseHandler(store *repository.Store) *BrowseHandler {
	return &BrowseHandler{store: store}
}

func (h *BrowseHandler) ListOrders(c echo.Context) error {
	ids, err := h.store.ListOrderIDs(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]interface{}{"count": len(ids), "orders": ids})
}

func (h *BrowseHandler) GetOrder(c echo.Context) error {
	body, err := h.store.GetOrderBody(c.Request().Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(404, map[string]string{"error": "order not found"})
	}
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSONBlob(200, []byte(body))
}

func (h *BrowseHandler) ListProducts(c echo.Context) error {
	codes, err := h.store.ListProductCodes(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]interface{}{"count": len(codes), "products": codes})
}

func (h *BrowseHandler) GetProduct(c echo.Context) error {
	body, err := h.store.GetProductBody(c.Request().Context(), c.Param("code"))
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(404, map[string]string{"error": "product not found"})
	}
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSONBlob(200, []byte(body))
}
