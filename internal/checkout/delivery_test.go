package checkout

import (
	"strings"
	"testing"
	"time"
)

func TestDeliveryDetailsValidate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	tomorrow := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		details DeliveryDetails
		wantErr string
	}{
		{
			name:    "valid",
			details: DeliveryDetails{Date: tomorrow, Address: "Jl. Merdeka 17", Notes: "ring the bell"},
		},
		{
			name:    "missing date",
			details: DeliveryDetails{Address: "Jl. Merdeka 17"},
			wantErr: "delivery date is required",
		},
		{
			name:    "date today",
			details: DeliveryDetails{Date: now, Address: "Jl. Merdeka 17"},
			wantErr: "delivery date must be after today",
		},
		{
			name:    "date in the past",
			details: DeliveryDetails{Date: now.AddDate(0, 0, -1), Address: "Jl. Merdeka 17"},
			wantErr: "delivery date must be after today",
		},
		{
			name:    "missing address",
			details: DeliveryDetails{Date: tomorrow},
			wantErr: "delivery address is required",
		},
		{
			name:    "address too long",
			details: DeliveryDetails{Date: tomorrow, Address: strings.Repeat("x", 256)},
			wantErr: "delivery address must be at most 255 characters",
		},
		{
			name:    "notes too long",
			details: DeliveryDetails{Date: tomorrow, Address: "Jl. Merdeka 17", Notes: strings.Repeat("x", 1001)},
			wantErr: "notes must be at most 1000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate(now)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
