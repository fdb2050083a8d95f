package wishlist

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrShareExpired = errors.New("shared wishlist expired")

type itemRepo interface {
	Add(ctx context.Context, userID, productID int64) (bool, error)
	Remove(ctx context.Context, userID, productID int64) (bool, error)
	ListProducts(ctx context.Context, userID int64) ([]domain.Product, error)
	ProductIDs(ctx context.Context, userID int64) ([]int64, error)
	Contains(ctx context.Context, userID, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type sharedRepo interface {
	Create(ctx context.Context, shared domain.SharedWishlist) (*domain.SharedWishlist, error)
	Get(ctx context.Context, token string) (*domain.SharedWishlist, error)
}

type productLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
}

type Service struct {
	items    itemRepo
	shared   sharedRepo
	products productLookup
	shareTTL time.Duration
	now      func() time.Time
	newToken func() string
	logger   *log.Logger
}

func New(items itemRepo, shared sharedRepo, products productLookup, shareTTL time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		items:    items,
		shared:   shared,
		products: products,
		shareTTL: shareTTL,
		now:      time.Now,
		newToken: uuid.NewString,
		logger:   logger,
	}
}

// SharedView is a shared wishlist resolved against the current catalog.
type SharedView struct {
	OwnerName string           `json:"ownerName"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Products  []domain.Product `json:"products"`
}

// Add reports added=false when the product was already in the wishlist.
func (s *Service) Add(ctx context.Context, userID, productID int64) (*domain.Product, bool, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	added, err := s.items.Add(ctx, userID, productID)
	if err != nil {
		return nil, false, err
	}
	return p, added, nil
}

// Remove deletes the entry if present. The product is nil when it no longer exists.
func (s *Service) Remove(ctx context.Context, userID, productID int64) (*domain.Product, bool, error) {
	removed, err := s.items.Remove(ctx, userID, productID)
	if err != nil {
		return nil, false, err
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, removed, nil
		}
		return nil, removed, err
	}
	return p, removed, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Product, error) {
	return s.items.ListProducts(ctx, userID)
}

func (s *Service) ProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.items.ProductIDs(ctx, userID)
}

func (s *Service) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	return s.items.Contains(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.items.Clear(ctx, userID)
}

// Share snapshots the wishlist under a fresh token that expires after the share TTL.
func (s *Service) Share(ctx context.Context, userID int64, userName string) (*domain.SharedWishlist, error) {
	products, err := s.items.ListProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrEmptyWishlist
	}

	snapshot := domain.WishlistSnapshot{UserName: userName}
	for _, p := range products {
		snapshot.Products = append(snapshot.Products, domain.WishlistSnapshotProduct{
			ID:         p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
		})
	}

	expiresAt := s.now().Add(s.shareTTL)
	for i := 0; i < 5; i++ {
		created, err := s.shared.Create(ctx, domain.SharedWishlist{
			Token:     s.newToken(),
			UserID:    userID,
			Snapshot:  snapshot,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			s.logger.Printf("wishlist: shared user=%d token=%s products=%d", userID, created.Token, len(snapshot.Products))
			return created, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("share token collision")
}

// ViewShared resolves a share token. Names and prices come from the current
// catalog and products deleted since sharing are omitted. Expired tokens
// return ErrShareExpired, which is joined with domain.ErrNotFound.
func (s *Service) ViewShared(ctx context.Context, token string) (*SharedView, error) {
	shared, err := s.shared.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if shared.Expired(s.now()) {
		return nil, errors.Join(ErrShareExpired, domain.ErrNotFound)
	}

	ids := make([]int64, 0, len(shared.Snapshot.Products))
	for _, p := range shared.Snapshot.Products {
		ids = append(ids, p.ID)
	}
	live, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &SharedView{
		OwnerName: shared.Snapshot.UserName,
		CreatedAt: shared.CreatedAt,
		ExpiresAt: shared.ExpiresAt,
		Products:  make([]domain.Product, 0, len(ids)),
	}
	for _, id := range ids {
		if p, ok := live[id]; ok {
			view.Products = append(view.Products, p)
		}
	}
	return view, nil
}

// MoveToCart adds one unit of the product to cart and, when alsoRemove is
// set, drops it from the wishlist.
func (s *Service) MoveToCart(ctx context.Context, userID int64, cart domain.Cart, productID int64, alsoRemove bool) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if alsoRemove {
		if _, err := s.items.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
	}
	cart.Add(productID, 1)
	return p, nil
}
