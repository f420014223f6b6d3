package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

// Handler turns order.placed events into customer confirmation emails and
// moves the order to confirmed once the email is on its way.
type Handler struct {
	apiBaseURL     string
	mailGatewayURL string
	httpClient     *http.Client
	logger         *slog.Logger
}

func NewHandler(apiBaseURL, mailGatewayURL string, client *http.Client, logger *slog.Logger) *Handler {
	return &Handler{
		apiBaseURL:     apiBaseURL,
		mailGatewayURL: mailGatewayURL,
		httpClient:     client,
		logger:         logger,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing order placed event", "order_id", event.OrderID, "customer_id", event.CustomerID)

	if err := h.sendConfirmationEmail(ctx, event); err != nil {
		h.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	if err := h.confirmOrder(ctx, event.OrderID); err != nil {
		h.logger.Error("failed to confirm order", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("confirm order: %w", err)
	}

	h.logger.Info("order confirmed", "order_id", event.OrderID)
	return nil
}

func (h *Handler) sendConfirmationEmail(ctx context.Context, event domain.OrderPlacedEvent) error {
	body := map[string]string{
		"to":      event.CustomerID + "@example.com",
		"subject": "Order confirmation: " + event.OrderID,
		"body":    fmt.Sprintf("Your order %s with %d items (total %d) has been received and is being prepared.", event.OrderID, len(event.Lines), event.Total),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.mailGatewayURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail gateway returned status %d", resp.StatusCode)
	}

	return nil
}

func (h *Handler) confirmOrder(ctx context.Context, orderID string) error {
	data, err := json.Marshal(map[string]string{
		"status": string(domain.OrderStatusConfirmed),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/orders/%s/status", h.apiBaseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}

	return nil
}
