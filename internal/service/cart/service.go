package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"strings"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

type productLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
}

type shareStore interface {
	Put(token string, cart domain.Cart) bool
	Get(token string) (domain.Cart, bool)
}

// Service operates on the session cart. Callers persist the cart after
// any mutating call.
type Service struct {
	products productLookup
	shares   shareStore
	newToken func() string
	logger   *log.Logger
}

func New(products productLookup, shares shareStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{products: products, shares: shares, newToken: uuid.NewString, logger: logger}
}

// Add puts qty units of the product into the cart. Unknown products return domain.ErrNotFound.
func (s *Service) Add(ctx context.Context, cart domain.Cart, productID int64, qty int) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart.Add(productID, qty)
	return p, nil
}

// Update sets the quantity; qty <= 0 removes the line.
func (s *Service) Update(cart domain.Cart, productID int64, qty int) {
	cart.Set(productID, qty)
}

// Remove reports whether the product was in the cart.
func (s *Service) Remove(cart domain.Cart, productID int64) bool {
	if _, ok := cart[productID]; !ok {
		return false
	}
	cart.Remove(productID)
	return true
}

// Details resolves the cart against the live catalog. Lines whose product
// no longer exists or whose quantity is out of range are skipped.
func (s *Service) Details(ctx context.Context, cart domain.Cart) (domain.CartDetails, error) {
	var out domain.CartDetails
	if len(cart) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return out, err
	}
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			continue
		}
		qty := cart[id]
		if !domain.ValidQuantity(qty) {
			continue
		}
		line := domain.CartLine{Product: p, Quantity: qty, SubtotalCents: p.PriceCents * int64(qty)}
		out.Lines = append(out.Lines, line)
		out.TotalCents += line.SubtotalCents
	}
	return out, nil
}

// Share stores a snapshot of the cart and returns its token.
func (s *Service) Share(cart domain.Cart) (string, error) {
	if len(cart) == 0 {
		return "", domain.ErrEmptyCart
	}
	for i := 0; i < 5; i++ {
		token := s.newToken()
		if s.shares.Put(token, cart) {
			s.logger.Printf("cart: shared token=%s lines=%d", token, len(cart))
			return token, nil
		}
	}
	return "", errors.New("share token collision")
}

// Load returns the shared snapshot for token. The caller replaces its cart
// with the result; unknown or expired tokens return domain.ErrNotFound.
func (s *Service) Load(token string) (domain.Cart, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrNotFound
	}
	snapshot, ok := s.shares.Get(token)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snapshot, nil
}
