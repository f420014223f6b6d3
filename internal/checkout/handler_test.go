package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubPlacer struct {
	outcome    Outcome
	customerID string
	details    DeliveryDetails
	called     bool
}

func (s *stubPlacer) PlaceOrder(_ context.Context, customerID string, details DeliveryDetails) Outcome {
	s.called = true
	s.customerID = customerID
	s.details = details
	return s.outcome
}

func newTestHandler(outcome Outcome) (*Handler, *stubPlacer) {
	placer := &stubPlacer{outcome: outcome}
	return NewHandler(placer, slog.New(slog.NewTextHandler(io.Discard, nil))), placer
}

func placeRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Customer-ID", "cust-1")
	return req
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestHandlePlaceOrder(t *testing.T) {
	t.Run("places order and returns 201", func(t *testing.T) {
		handler, placer := newTestHandler(Outcome{OrderID: "order-1"})

		body := `{"delivery_date": "` + tomorrow() + `", "delivery_address": "Jl. Merdeka 17", "notes": "no cutlery"}`
		rec := httptest.NewRecorder()
		handler.HandlePlaceOrder(rec, placeRequest(body))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !placer.called {
			t.Fatal("expected service to be called")
		}
		if placer.customerID != "cust-1" {
			t.Fatalf("expected customer cust-1, got %s", placer.customerID)
		}
		if placer.details.Address != "Jl. Merdeka 17" {
			t.Fatalf("unexpected address %q", placer.details.Address)
		}

		var resp placeOrderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.OrderID != "order-1" {
			t.Fatalf("expected order-1, got %s", resp.OrderID)
		}
	})

	t.Run("rejects missing customer id", func(t *testing.T) {
		handler, placer := newTestHandler(Outcome{OrderID: "order-1"})

		req := placeRequest(`{"delivery_date": "` + tomorrow() + `", "delivery_address": "a"}`)
		req.Header.Del("X-Customer-ID")
		rec := httptest.NewRecorder()
		handler.HandlePlaceOrder(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
		if placer.called {
			t.Fatal("service should not be called")
		}
	})

	t.Run("rejects malformed delivery date", func(t *testing.T) {
		handler, placer := newTestHandler(Outcome{OrderID: "order-1"})

		rec := httptest.NewRecorder()
		handler.HandlePlaceOrder(rec, placeRequest(`{"delivery_date": "tomorrow", "delivery_address": "a"}`))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if placer.called {
			t.Fatal("service should not be called")
		}
	})

	t.Run("rejects past delivery date", func(t *testing.T) {
		handler, placer := newTestHandler(Outcome{OrderID: "order-1"})

		body := `{"delivery_date": "` + time.Now().AddDate(0, 0, -1).Format("2006-01-02") + `", "delivery_address": "Jl. Merdeka 17"}`
		rec := httptest.NewRecorder()
		handler.HandlePlaceOrder(rec, placeRequest(body))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if placer.called {
			t.Fatal("service should not be called")
		}
	})

	t.Run("maps rejection reasons to status codes", func(t *testing.T) {
		tests := []struct {
			reason RejectReason
			status int
		}{
			{ReasonEmptyCart, http.StatusUnprocessableEntity},
			{ReasonBelowMinimum, http.StatusUnprocessableEntity},
			{ReasonItemNotFound, http.StatusNotFound},
			{ReasonInsufficientStock, http.StatusConflict},
			{ReasonInternal, http.StatusInternalServerError},
		}

		for _, tt := range tests {
			handler, _ := newTestHandler(Outcome{Rejection: &Rejection{Reason: tt.reason, Message: "nope"}})

			body := `{"delivery_date": "` + tomorrow() + `", "delivery_address": "Jl. Merdeka 17"}`
			rec := httptest.NewRecorder()
			handler.HandlePlaceOrder(rec, placeRequest(body))

			if rec.Code != tt.status {
				t.Fatalf("reason %s: expected status %d, got %d", tt.reason, tt.status, rec.Code)
			}

			var rej Rejection
			if err := json.Unmarshal(rec.Body.Bytes(), &rej); err != nil {
				t.Fatalf("failed to decode rejection: %v", err)
			}
			if rej.Reason != tt.reason {
				t.Fatalf("expected reason %s in body, got %s", tt.reason, rej.Reason)
			}
		}
	})
}
