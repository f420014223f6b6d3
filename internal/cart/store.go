package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joao-fontenele/foodcourt/internal/domain"
)

const baseTTL = 24 * time.Hour

// Store keeps session-scoped carts in Redis as JSON values keyed by
// customer id. A missing key is an empty cart, not an error.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, customerID string) (domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}

	return cart, nil
}

// Add merges a line into the cart: an existing line for the same item has
// its quantity increased, otherwise the line is appended, preserving
// insertion order. The line's name, price and image are snapshots of the
// catalog at add time.
func (s *Store) Add(ctx context.Context, customerID string, line domain.CartLine) (domain.Cart, error) {
	cart, err := s.Get(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}

	merged := false
	for i := range cart.Lines {
		if cart.Lines[i].ItemID == line.ItemID {
			cart.Lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.save(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Remove drops the line for the given item, if present.
func (s *Store) Remove(ctx context.Context, customerID, itemID string) (domain.Cart, error) {
	cart, err := s.Get(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}

	lines := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.ItemID != itemID {
			lines = append(lines, l)
		}
	}
	cart.Lines = lines

	if err := s.save(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *Store) Clear(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	// Jitter spreads expirations of carts created in bursts.
	ttl := baseTTL + time.Duration(rand.Intn(30))*time.Minute
	if err := s.client.Set(ctx, cartKey(cart.CustomerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func cartKey(customerID string) string {
	return "cart:" + customerID
}
