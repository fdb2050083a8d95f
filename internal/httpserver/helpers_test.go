package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/session"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	wishlistsvc "storefront/internal/service/wishlist"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCatalog struct {
	products map[int64]domain.Product
	deleted  []int64
}

func (s *stubCatalog) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubCatalog) Categories(_ context.Context) ([]string, error) {
	return []string{"General"}, nil
}

func (s *stubCatalog) Get(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.Get(ctx, id)
}

func (s *stubCatalog) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubCatalog) Delete(_ context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubWishlist struct {
	catalog *stubCatalog
	items   map[int64]bool
	shared  *domain.SharedWishlist
	view    *wishlistsvc.SharedView
	viewErr error
}

func (s *stubWishlist) Add(_ context.Context, _ int64, productID int64) (*domain.Product, bool, error) {
	p, ok := s.catalog.products[productID]
	if !ok {
		return nil, false, domain.ErrNotFound
	}
	if s.items[productID] {
		return &p, false, nil
	}
	s.items[productID] = true
	return &p, true, nil
}

func (s *stubWishlist) Remove(_ context.Context, _ int64, productID int64) (*domain.Product, bool, error) {
	if !s.items[productID] {
		return nil, false, nil
	}
	delete(s.items, productID)
	p := s.catalog.products[productID]
	return &p, true, nil
}

func (s *stubWishlist) List(_ context.Context, _ int64) ([]domain.Product, error) {
	var out []domain.Product
	for id := range s.items {
		out = append(out, s.catalog.products[id])
	}
	return out, nil
}

func (s *stubWishlist) ProductIDs(_ context.Context, _ int64) ([]int64, error) {
	var out []int64
	for id := range s.items {
		out = append(out, id)
	}
	return out, nil
}

func (s *stubWishlist) Contains(_ context.Context, _ int64, productID int64) (bool, error) {
	return s.items[productID], nil
}

func (s *stubWishlist) Clear(_ context.Context, _ int64) (int64, error) {
	n := int64(len(s.items))
	s.items = map[int64]bool{}
	return n, nil
}

func (s *stubWishlist) Share(_ context.Context, userID int64, userName string) (*domain.SharedWishlist, error) {
	if len(s.items) == 0 {
		return nil, domain.ErrEmptyWishlist
	}
	s.shared = &domain.SharedWishlist{
		Token:    "wl-token",
		UserID:   userID,
		Snapshot: domain.WishlistSnapshot{UserName: userName},
	}
	return s.shared, nil
}

func (s *stubWishlist) ViewShared(_ context.Context, _ string) (*wishlistsvc.SharedView, error) {
	return s.view, s.viewErr
}

func (s *stubWishlist) MoveToCart(_ context.Context, _ int64, cart domain.Cart, productID int64, alsoRemove bool) (*domain.Product, error) {
	p, ok := s.catalog.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cart.Add(productID, 1)
	if alsoRemove {
		delete(s.items, productID)
	}
	return &p, nil
}

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	nextID int64
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.orders[o.ID] = &o
	return &o, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) ListByEmail(_ context.Context, email string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if strings.EqualFold(o.CustomerEmail, email) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type stubCharities struct {
	charities []domain.Charity
}

func (s *stubCharities) ListActive(_ context.Context) ([]domain.Charity, error) {
	return s.charities, nil
}

func (s *stubCharities) ResolveActive(_ context.Context, id int64) (*domain.Charity, error) {
	for _, c := range s.charities {
		if c.ID == id && c.Active {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubAccounts struct {
	users     map[int64]domain.User
	loginErr  error
	signupErr error
	signups   []accountsvc.SignupInput
}

func (s *stubAccounts) Signup(_ context.Context, in accountsvc.SignupInput) (*domain.User, error) {
	s.signups = append(s.signups, in)
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &domain.User{ID: 99, Name: in.Name, Email: in.Email}, nil
}

func (s *stubAccounts) Login(_ context.Context, email, _ string) (*domain.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, accountsvc.ErrAccountNotFound
}

func (s *stubAccounts) Get(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

var (
	alice = domain.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	bob   = domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	root  = domain.User{ID: 3, Name: "Root", Email: "admin@example.com", IsAdmin: true}
)

type testEnv struct {
	router    *gin.Engine
	sessions  *session.Store
	catalog   *stubCatalog
	wishlist  *stubWishlist
	orderRepo *stubOrderRepo
	accounts  *stubAccounts
	feed      *OrderFeed
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &stubCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Key: "lamp", Name: "Lamp", PriceCents: 1250, Category: "General", Stock: 3, ImageURL: domain.DefaultProductImage},
		2: {ID: 2, Key: "mug", Name: "Mug", PriceCents: 500, Category: "Kitchen", Stock: 10, ImageURL: domain.DefaultProductImage},
	}}
	env := &testEnv{
		sessions:  session.NewStore("test-secret", time.Hour, false),
		catalog:   catalog,
		wishlist:  &stubWishlist{catalog: catalog, items: map[int64]bool{}},
		orderRepo: &stubOrderRepo{orders: map[int64]*domain.Order{}},
		accounts:  &stubAccounts{users: map[int64]domain.User{alice.ID: alice, bob.ID: bob, root.ID: root}},
		feed:      NewOrderFeed(logDiscard()),
	}
	charities := &stubCharities{charities: []domain.Charity{
		{ID: 1, Name: "Food Bank", Active: true},
		{ID: 2, Name: "Closed Fund", Active: false},
	}}
	carts := cartsvc.New(catalog, cartsvc.NewShareStore(time.Hour), logDiscard())

	router, err := buildRouter(logDiscard(), nil, Deps{
		Sessions:  env.sessions,
		Catalog:   catalog,
		Cart:      carts,
		Wishlist:  env.wishlist,
		Orders:    ordersvc.New(env.orderRepo, carts, charities, env.feed, logDiscard()),
		Charities: charities,
		Accounts:  env.accounts,
		OrderFeed: env.feed,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	env.router = router
	return env
}

func loggedIn(u domain.User) *session.Data {
	s := &session.Data{}
	s.Login(u)
	return s
}

// do sends a request carrying s as its session cookie and returns the
// response together with the session the handler wrote back, if any.
func (e *testEnv) do(t *testing.T, method, target string, form url.Values, s *session.Data, headers map[string]string) (*httptest.ResponseRecorder, *session.Data) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if s != nil {
		value, err := e.sessions.Encode(s)
		if err != nil {
			t.Fatalf("encode session: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name != session.CookieName {
			continue
		}
		out, err := e.sessions.Decode(c.Value)
		if err != nil {
			t.Fatalf("decode response session: %v", err)
		}
		return rec, out
	}
	return rec, nil
}

var xhr = map[string]string{"X-Requested-With": "XMLHttpRequest"}

func lastFlash(t *testing.T, s *session.Data) session.Flash {
	t.Helper()
	if s == nil || len(s.Flashes) == 0 {
		t.Fatalf("expected a flash message")
	}
	return s.Flashes[len(s.Flashes)-1]
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
