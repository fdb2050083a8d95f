package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type cartResolver interface {
	Details(ctx context.Context, cart domain.Cart) (domain.CartDetails, error)
}

type charityResolver interface {
	ResolveActive(ctx context.Context, id int64) (*domain.Charity, error)
}

type publisher interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
}

// Service turns a session cart into a persisted order.
type Service struct {
	repo      orderRepo
	carts     cartResolver
	charities charityResolver
	events    publisher
	logger    *log.Logger
}

func New(repo orderRepo, carts cartResolver, charities charityResolver, events publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, carts: carts, charities: charities, events: events, logger: logger}
}

// CheckoutInput captures the checkout form. Amounts are raw form values.
type CheckoutInput struct {
	Name           string `form:"name" json:"name"`
	Email          string `form:"email" json:"email"`
	Address        string `form:"address" json:"address"`
	DonationAmount string `form:"donation_amount" json:"donationAmount"`
	CharityID      string `form:"charity_id" json:"charityId"`
}

// Checkout prices the cart at live catalog prices, adds the donation and
// stores the order with its items. The cart is cleared only on success.
func (s *Service) Checkout(ctx context.Context, cart domain.Cart, in CheckoutInput) (*domain.Order, error) {
	details, err := s.carts.Details(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(details.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	address := strings.TrimSpace(in.Address)
	if name == "" || email == "" || address == "" {
		return nil, domain.NewValidationError("Please fill all required fields.")
	}

	donation, err := domain.ParseAmount(in.DonationAmount)
	if err != nil {
		return nil, err
	}
	if donation < 0 {
		return nil, domain.NewValidationError("Donation amount cannot be negative.")
	}

	var charityName string
	if donation > 0 {
		charityName, err = s.resolveCharity(ctx, in.CharityID)
		if err != nil {
			return nil, err
		}
	}

	itemsTotal, err := linesTotal(details.Lines)
	if err != nil {
		return nil, err
	}
	if donation > math.MaxInt64-itemsTotal {
		return nil, domain.NewValidationError("Please enter a valid amount.")
	}

	order := domain.Order{
		CustomerName:  name,
		CustomerEmail: email,
		Address:       address,
		TotalCents:    itemsTotal + donation,
		DonationCents: donation,
		CharityName:   charityName,
		Items:         make([]domain.OrderItem, 0, len(details.Lines)),
	}
	for _, line := range details.Lines {
		pid := line.Product.ID
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      &pid,
			ProductName:    line.Product.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.Product.PriceCents,
		})
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	for id := range cart {
		delete(cart, id)
	}
	s.logger.Printf("order: placed order=%d total_cents=%d donation_cents=%d", created.ID, created.TotalCents, created.DonationCents)

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, *created); err != nil {
			s.logger.Printf("order: publish order=%d error=%v", created.ID, err)
		}
	}
	return created, nil
}

// linesTotal recomputes the cart total from unit prices, rejecting
// out-of-range quantities and sums that do not fit in int64.
func linesTotal(lines []domain.CartLine) (int64, error) {
	var total int64
	for _, line := range lines {
		if !domain.ValidQuantity(line.Quantity) {
			return 0, domain.NewValidationError("Please enter a valid quantity.")
		}
		price := line.Product.PriceCents
		qty := int64(line.Quantity)
		if price < 0 || price > math.MaxInt64/qty {
			return 0, domain.NewValidationError("Order total is too large.")
		}
		subtotal := price * qty
		if total > math.MaxInt64-subtotal {
			return 0, domain.NewValidationError("Order total is too large.")
		}
		total += subtotal
	}
	return total, nil
}

func (s *Service) resolveCharity(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.NewValidationError("Please choose a charity for your donation.")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", domain.NewValidationError("Please choose a valid charity for your donation.")
	}
	c, err := s.charities.ResolveActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NewValidationError("Please choose a valid charity for your donation.")
		}
		return "", err
	}
	return c.Name, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.repo.ListByEmail(ctx, strings.TrimSpace(email))
}

// ConfirmationMessage is the flash shown after a successful checkout.
func ConfirmationMessage(o domain.Order) string {
	msg := fmt.Sprintf("Thank you! Order #%d placed successfully.", o.ID)
	if o.DonationCents > 0 {
		msg += fmt.Sprintf(" Your donation of %s%s to %s is appreciated!", domain.CurrencySymbol, domain.FormatAmount(o.DonationCents), o.CharityName)
	}
	return msg
}
