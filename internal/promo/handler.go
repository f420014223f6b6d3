package promo

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type Handler struct {
	repo   *PromoRepository
	logger *slog.Logger
}

func NewHandler(repo *PromoRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

type validateRequest struct {
	Code  string `json:"code"`
	Total int64  `json:"total"`
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
	Discount int64  `json:"discount,omitempty"`
}

// HandleValidate checks a promo code against the current cart total and
// reports the discount it would grant. It does not redeem the code.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		h.writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	promo, err := h.repo.GetByCode(r.Context(), strings.ToUpper(req.Code))
	if err != nil {
		h.logger.Error("failed to look up promo", "error", err, "code", req.Code)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if promo == nil {
		h.writeJSON(w, http.StatusOK, validateResponse{
			Valid:   false,
			Message: "invalid or expired promo code",
		})
		return
	}

	if promo.Exhausted() {
		h.writeJSON(w, http.StatusOK, validateResponse{
			Valid:   false,
			Message: "promo code usage limit reached",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, validateResponse{
		Valid:    true,
		Message:  "promo code applied",
		Discount: ComputeDiscount(*promo, req.Total),
	})
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
