package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// OrderPlacer is what the handler needs from the checkout service.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, customerID string, details DeliveryDetails) Outcome
}

type Handler struct {
	service OrderPlacer
	logger  *slog.Logger
}

func NewHandler(service OrderPlacer, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type placeOrderRequest struct {
	DeliveryDate    string `json:"delivery_date"`
	DeliveryAddress string `json:"delivery_address"`
	Notes           string `json:"notes"`
}

type placeOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// HandlePlaceOrder serves POST /orders. The authenticated customer id is
// expected in X-Customer-ID, set by the edge in front of this service.
func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing customer id")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "delivery_date must be formatted as YYYY-MM-DD")
		return
	}

	details := DeliveryDetails{
		Date:    date,
		Address: req.DeliveryAddress,
		Notes:   req.Notes,
	}
	if err := details.Validate(time.Now()); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome := h.service.PlaceOrder(r.Context(), customerID, details)
	if !outcome.Placed() {
		h.writeRejection(w, outcome.Rejection)
		return
	}

	h.writeJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID: outcome.OrderID,
		Status:  "pending",
	})
}

func (h *Handler) writeRejection(w http.ResponseWriter, rej *Rejection) {
	status := http.StatusInternalServerError
	switch rej.Reason {
	case ReasonEmptyCart, ReasonBelowMinimum:
		status = http.StatusUnprocessableEntity
	case ReasonItemNotFound:
		status = http.StatusNotFound
	case ReasonInsufficientStock:
		status = http.StatusConflict
	}

	h.writeJSON(w, status, rej)
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
