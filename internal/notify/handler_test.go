package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

func eventPayload(t *testing.T) []byte {
	t.Helper()

	payload, err := json.Marshal(domain.OrderPlacedEvent{
		OrderID:    "order-1",
		CustomerID: "cust-1",
		Lines: []domain.OrderLine{
			{ItemID: "item-a", Name: "Nasi Goreng", Quantity: 2, Price: 50_000},
		},
		Total:     100_000,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return payload
}

func TestHandle(t *testing.T) {
	t.Run("sends email then confirms the order", func(t *testing.T) {
		var emailSent bool
		mailServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/send" {
				t.Errorf("expected /send, got %s", r.URL.Path)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode email body: %v", err)
			}
			if body["to"] != "cust-1@example.com" {
				t.Errorf("unexpected recipient %s", body["to"])
			}
			emailSent = true
			w.WriteHeader(http.StatusOK)
		}))
		defer mailServer.Close()

		var statusUpdated bool
		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !emailSent {
				t.Error("order confirmed before the email was sent")
			}
			if r.Method != http.MethodPatch || r.URL.Path != "/orders/order-1/status" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode status body: %v", err)
			}
			if body["status"] != string(domain.OrderStatusConfirmed) {
				t.Errorf("expected confirmed, got %s", body["status"])
			}
			statusUpdated = true
			w.WriteHeader(http.StatusOK)
		}))
		defer apiServer.Close()

		handler := NewHandler(apiServer.URL, mailServer.URL, http.DefaultClient, slog.New(slog.NewTextHandler(io.Discard, nil)))

		if err := handler.Handle(context.Background(), eventPayload(t)); err != nil {
			t.Fatalf("handle failed: %v", err)
		}
		if !statusUpdated {
			t.Fatal("expected order status to be updated")
		}
	})

	t.Run("fails when the mail gateway errors so the message is retried", func(t *testing.T) {
		mailServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer mailServer.Close()

		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("order must not be confirmed when the email failed")
		}))
		defer apiServer.Close()

		handler := NewHandler(apiServer.URL, mailServer.URL, http.DefaultClient, slog.New(slog.NewTextHandler(io.Discard, nil)))

		if err := handler.Handle(context.Background(), eventPayload(t)); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("fails on malformed payload", func(t *testing.T) {
		handler := NewHandler("http://unused", "http://unused", http.DefaultClient, slog.New(slog.NewTextHandler(io.Discard, nil)))

		if err := handler.Handle(context.Background(), []byte("not json")); err == nil {
			t.Fatal("expected an error")
		}
	})
}
