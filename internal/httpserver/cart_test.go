package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestCartAdd_XHR(t *testing.T) {
	env := newTestEnv(t)
	rec, s := env.do(t, http.MethodPost, "/cart/add/1", url.Values{"quantity": {"2"}}, loggedIn(alice), xhr)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Success     bool   `json:"success"`
		ProductName string `json:"product_name"`
		CartCount   int    `json:"cart_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.ProductName != "Lamp" || body.CartCount != 1 {
		t.Fatalf("unexpected body %+v", body)
	}
	if s.Cart[1] != 2 {
		t.Fatalf("expected qty 2 in session cart, got %v", s.Cart)
	}
}

func TestCartAdd_FormRedirectsBack(t *testing.T) {
	env := newTestEnv(t)
	headers := map[string]string{"Referer": "http://example.com/product/1"}
	rec, s := env.do(t, http.MethodPost, "/cart/add/1", url.Values{"quantity": {"x"}}, loggedIn(alice), headers)
	expectRedirect(t, rec, "/product/1")
	if s.Cart[1] != 1 {
		t.Fatalf("expected invalid quantity to add one, got %v", s.Cart)
	}
	if f := lastFlash(t, s); f.Message != "Added Lamp to cart." {
		t.Fatalf("unexpected flash %+v", f)
	}
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	rec, s := env.do(t, http.MethodPost, "/cart/add/42", url.Values{}, loggedIn(alice), xhr)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if len(s.Cart) != 0 {
		t.Fatalf("expected empty cart, got %v", s.Cart)
	}
}

func TestCartUpdate_ZeroRemovesLine(t *testing.T) {
	env := newTestEnv(t)
	s := loggedIn(alice)
	s.Cart = domain.Cart{1: 2, 2: 1}
	rec, out := env.do(t, http.MethodPost, "/cart/update/1", url.Values{"quantity": {"0"}}, s, nil)
	expectRedirect(t, rec, "/cart")
	if _, ok := out.Cart[1]; ok || out.Cart[2] != 1 {
		t.Fatalf("unexpected cart %v", out.Cart)
	}
}

func TestCartView_SkipsVanishedProducts(t *testing.T) {
	env := newTestEnv(t)
	s := loggedIn(alice)
	s.Cart = domain.Cart{1: 2, 77: 1}
	rec, _ := env.do(t, http.MethodGet, "/cart", nil, s, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Cart cartView `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Cart.Items) != 1 || body.Cart.TotalCents != 2500 || body.Cart.Total != "25.00" {
		t.Fatalf("unexpected cart view %+v", body.Cart)
	}
}

func TestCartShare_LoadReplacesCart(t *testing.T) {
	env := newTestEnv(t)
	owner := loggedIn(alice)
	owner.Cart = domain.Cart{1: 3}
	rec, _ := env.do(t, http.MethodGet, "/cart/share", nil, owner, xhr)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		ShareURL string `json:"share_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	const prefix = "http://example.com/cart/share/"
	if !strings.HasPrefix(body.ShareURL, prefix) {
		t.Fatalf("unexpected share url %q", body.ShareURL)
	}

	friend := loggedIn(bob)
	friend.Cart = domain.Cart{2: 1}
	rec, out := env.do(t, http.MethodGet, strings.TrimPrefix(body.ShareURL, "http://example.com"), nil, friend, nil)
	expectRedirect(t, rec, "/cart")
	if len(out.Cart) != 1 || out.Cart[1] != 3 {
		t.Fatalf("expected shared cart to replace, got %v", out.Cart)
	}
}

func TestCartLoadShared_UnknownTokenKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	s := loggedIn(bob)
	s.Cart = domain.Cart{2: 4}
	rec, out := env.do(t, http.MethodGet, "/cart/share/not-a-token", nil, s, nil)
	expectRedirect(t, rec, "/cart")
	if out.Cart[2] != 4 {
		t.Fatalf("expected cart untouched, got %v", out.Cart)
	}
	if f := lastFlash(t, out); f.Message != "Shared cart not found or expired." {
		t.Fatalf("unexpected flash %+v", f)
	}
}

func TestCartShare_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	rec, s := env.do(t, http.MethodGet, "/cart/share", nil, loggedIn(alice), nil)
	expectRedirect(t, rec, "/cart")
	if f := lastFlash(t, s); f.Message != "Your cart is empty." {
		t.Fatalf("unexpected flash %+v", f)
	}
}

func TestCartAdd_HugeQuantityIsClampedBeforeCheckout(t *testing.T) {
	env := newTestEnv(t)
	s := loggedIn(alice)
	s.Cart = domain.Cart{1: 1}

	_, s = env.do(t, http.MethodPost, "/cart/add/1", url.Values{"quantity": {"9223372036854775807"}}, s, xhr)
	if s.Cart[1] != domain.MaxLineQuantity {
		t.Fatalf("expected qty clamped to %d, got %v", domain.MaxLineQuantity, s.Cart)
	}

	form := url.Values{"name": {"Alice"}, "email": {"alice@example.com"}, "address": {"1 Main St"}}
	rec, _ := env.do(t, http.MethodPost, "/checkout", form, s, nil)
	expectRedirect(t, rec, "/orders/1")
	o := env.orderRepo.orders[1]
	if o.TotalCents != 1250*domain.MaxLineQuantity || o.Items[0].Quantity != domain.MaxLineQuantity {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestCartQuantityParsing(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{" 7 ", 7},
		{"1000", domain.MaxLineQuantity},
		{"99999999999999999999999", domain.MaxLineQuantity},
	}
	for _, tc := range cases {
		got, err := parseQuantity(tc.raw)
		if err != nil || got != tc.want {
			t.Fatalf("parseQuantity(%q) = %d, %v; want %d", tc.raw, got, err, tc.want)
		}
	}
	for _, raw := range []string{"", "abc", "-99999999999999999999999"} {
		if _, err := parseQuantity(raw); err == nil {
			t.Fatalf("parseQuantity(%q): expected error", raw)
		}
	}
}

func TestCartUpdate_ClampsHugeQuantity(t *testing.T) {
	env := newTestEnv(t)
	s := loggedIn(alice)
	s.Cart = domain.Cart{2: 1}
	rec, out := env.do(t, http.MethodPost, "/cart/update/2", url.Values{"quantity": {"2147483648"}}, s, nil)
	expectRedirect(t, rec, "/cart")
	if out.Cart[2] != domain.MaxLineQuantity {
		t.Fatalf("expected qty clamped, got %v", out.Cart)
	}
}
