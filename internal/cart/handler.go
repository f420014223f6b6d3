package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

// MenuGetter resolves catalog items when lines are added, so the cart can
// snapshot the current name, price and image.
type MenuGetter interface {
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
}

type Handler struct {
	store  *Store
	menus  MenuGetter
	logger *slog.Logger
}

func NewHandler(store *Store, menus MenuGetter, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		menus:  menus,
		logger: logger,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing customer id")
		return
	}

	cart, err := h.store.Get(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to load cart", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cart)
}

type addItemRequest struct {
	MenuID   string `json:"menu_id"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing customer id")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MenuID == "" || req.Quantity <= 0 {
		h.writeError(w, http.StatusBadRequest, "menu_id and a positive quantity are required")
		return
	}

	item, err := h.menus.GetByID(r.Context(), req.MenuID)
	if err != nil {
		h.logger.Error("failed to look up menu item", "error", err, "menu_id", req.MenuID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item == nil || !item.Available {
		h.writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	cart, err := h.store.Add(r.Context(), customerID, domain.CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Quantity: req.Quantity,
		Price:    item.Price,
		Image:    item.Image,
	})
	if err != nil {
		h.logger.Error("failed to add cart line", "error", err, "customer_id", customerID, "menu_id", req.MenuID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("cart line added", "customer_id", customerID, "menu_id", req.MenuID, "quantity", req.Quantity)
	h.writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing customer id")
		return
	}

	itemID := r.PathValue("itemId")
	if itemID == "" {
		h.writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	cart, err := h.store.Remove(r.Context(), customerID, itemID)
	if err != nil {
		h.logger.Error("failed to remove cart line", "error", err, "customer_id", customerID, "item_id", itemID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
