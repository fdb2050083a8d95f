// Package session keeps per-visitor state in a signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "storefront_session"

// Flash categories.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data is the session payload.
type Data struct {
	UserID   int64       `json:"uid,omitempty"`
	UserName string      `json:"name,omitempty"`
	IsAdmin  bool        `json:"admin,omitempty"`
	Cart     domain.Cart `json:"cart,omitempty"`
	Next     string      `json:"next,omitempty"`
	Flashes  []Flash     `json:"flashes,omitempty"`
}

func (d *Data) Authenticated() bool {
	return d.UserID > 0
}

// Login binds the session to u. The cart is kept.
func (d *Data) Login(u domain.User) {
	d.UserID = u.ID
	d.UserName = u.Name
	d.IsAdmin = u.IsAdmin
}

// Logout clears identity and any pending return URL. The cart is kept.
func (d *Data) Logout() {
	d.UserID = 0
	d.UserName = ""
	d.IsAdmin = false
	d.Next = ""
}

// CartOrInit returns the session cart, creating it when absent.
func (d *Data) CartOrInit() domain.Cart {
	if d.Cart == nil {
		d.Cart = domain.Cart{}
	}
	return d.Cart
}

// MaxFlashes bounds pending flashes so the cookie stays small when no page
// is rendered to drain them. The oldest are dropped first.
const MaxFlashes = 5

func (d *Data) AddFlash(category, message string) {
	d.Flashes = append(d.Flashes, Flash{Category: category, Message: message})
	if n := len(d.Flashes); n > MaxFlashes {
		d.Flashes = append([]Flash(nil), d.Flashes[n-MaxFlashes:]...)
	}
}

// TakeFlashes returns pending flashes and clears them.
func (d *Data) TakeFlashes() []Flash {
	out := d.Flashes
	d.Flashes = nil
	return out
}

type claims struct {
	Session Data `json:"sess"`
	jwt.RegisteredClaims
}

// Store encodes sessions as HS256 JWTs in an HttpOnly cookie.
type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	return &Store{secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

// Load returns the request's session. Missing, expired or tampered cookies
// yield an empty anonymous session.
func (s *Store) Load(r *http.Request) *Data {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return &Data{}
	}
	d, err := s.Decode(c.Value)
	if err != nil {
		return &Data{}
	}
	return d
}

func (s *Store) Save(w http.ResponseWriter, d *Data) error {
	value, err := s.Encode(d)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Store) Encode(d *Data) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Session: *d,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

func (s *Store) Decode(value string) (*Data, error) {
	var out claims
	token, err := jwt.ParseWithClaims(value, &out, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session")
	}
	return &out.Session, nil
}
