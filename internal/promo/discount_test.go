package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name  string
		promo domain.Promo
		total int64
		want  int64
	}{
		{
			name:  "percentage rounds down",
			promo: domain.Promo{DiscountType: domain.DiscountPercentage, DiscountValue: 10},
			total: 130_005,
			want:  13_000,
		},
		{
			name:  "fixed amount",
			promo: domain.Promo{DiscountType: domain.DiscountFixed, DiscountValue: 25_000},
			total: 130_000,
			want:  25_000,
		},
		{
			name:  "fixed amount capped at total",
			promo: domain.Promo{DiscountType: domain.DiscountFixed, DiscountValue: 200_000},
			total: 130_000,
			want:  130_000,
		},
		{
			name:  "hundred percent",
			promo: domain.Promo{DiscountType: domain.DiscountPercentage, DiscountValue: 100},
			total: 80_000,
			want:  80_000,
		},
		{
			name:  "zero total",
			promo: domain.Promo{DiscountType: domain.DiscountPercentage, DiscountValue: 50},
			total: 0,
			want:  0,
		},
		{
			name:  "unknown type grants nothing",
			promo: domain.Promo{DiscountType: "bogus", DiscountValue: 50},
			total: 100_000,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDiscount(tt.promo, tt.total))
		})
	}
}

func TestPromoExhausted(t *testing.T) {
	assert.False(t, domain.Promo{UsageLimit: 0, UsageCount: 999}.Exhausted(), "zero limit means unlimited")
	assert.False(t, domain.Promo{UsageLimit: 10, UsageCount: 9}.Exhausted())
	assert.True(t, domain.Promo{UsageLimit: 10, UsageCount: 10}.Exhausted())
}
