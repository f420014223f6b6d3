package cart

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

type stubMenus struct {
	items map[string]*domain.MenuItem
}

func (s *stubMenus) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	return s.items[id], nil
}

func setupHandler(t *testing.T) *Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	menus := &stubMenus{items: map[string]*domain.MenuItem{
		"item-a": {ID: "item-a", Name: "Nasi Goreng", Price: 50_000, Image: "nasi.jpg", Available: true},
		"item-x": {ID: "item-x", Name: "Retired Dish", Price: 10_000, Available: false},
	}}

	return NewHandler(NewStore(client), menus, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleAddItem(t *testing.T) {
	t.Run("snapshots catalog name and price into the cart", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"menu_id": "item-a", "quantity": 2}`))
		req.Header.Set("X-Customer-ID", "cust-1")
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var cart domain.Cart
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "Nasi Goreng", cart.Lines[0].Name)
		assert.Equal(t, int64(50_000), cart.Lines[0].Price)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
	})

	t.Run("rejects unknown menu item", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"menu_id": "nope", "quantity": 1}`))
		req.Header.Set("X-Customer-ID", "cust-1")
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects unavailable menu item", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"menu_id": "item-x", "quantity": 1}`))
		req.Header.Set("X-Customer-ID", "cust-1")
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"menu_id": "item-a", "quantity": 0}`))
		req.Header.Set("X-Customer-ID", "cust-1")
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires customer id", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"menu_id": "item-a", "quantity": 1}`))
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleRemoveItem(t *testing.T) {
	handler := setupHandler(t)

	addReq := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"menu_id": "item-a", "quantity": 1}`))
	addReq.Header.Set("X-Customer-ID", "cust-1")
	handler.HandleAddItem(httptest.NewRecorder(), addReq)

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/item-a", nil)
	req.SetPathValue("itemId", "item-a")
	req.Header.Set("X-Customer-ID", "cust-1")
	rec := httptest.NewRecorder()

	handler.HandleRemoveItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Empty(t, cart.Lines)
}
