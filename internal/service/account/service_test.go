package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// memoryRepo is a lightweight in-memory user repository for tests.
type memoryRepo struct {
	byEmail map[string]domain.User
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]domain.User)}
}

func (r *memoryRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	clone := u
	clone.ID = r.nextID
	r.byEmail[key] = clone
	return &clone, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[strings.ToLower(email)]; ok {
		clone := u
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newTestService() *Service {
	svc := New(newMemoryRepo(), nil)
	svc.cost = bcrypt.MinCost
	return svc
}

func validSignup() SignupInput {
	return SignupInput{
		Name:          "Asha",
		Email:         "asha@example.com",
		Password:      "Passw0rd!",
		Address:       "12 Lane",
		ContactNumber: "5550100",
	}
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if u.Username != "asha@example.com" || u.PasswordHash == "Passw0rd!" {
		t.Fatalf("unexpected user %+v", u)
	}

	got, err := svc.Login(ctx, "asha@example.com", " Passw0rd! ")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected user %d, got %d", u.ID, got.ID)
	}

	if _, err := svc.Signup(ctx, validSignup()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken on second signup, got %v", err)
	}
}

func TestSignup_RejectsBlankAndMalformed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	blank := validSignup()
	blank.Address = "  "
	_, err := svc.Signup(ctx, blank)
	if msg, ok := domain.ValidationMessage(err); !ok || msg != "All fields are required." {
		t.Fatalf("expected blank-field validation, got %v", err)
	}

	bad := validSignup()
	bad.Email = "asha@example"
	if _, err := svc.Signup(ctx, bad); err == nil {
		t.Fatalf("expected invalid email to be rejected")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		pass string
		ok   bool
	}{
		{"Passw0rd!", true},
		{"password", false},
		{"PASSWORD1!", false},
		{"Passw0rd", false},
		{"Pa0!", false},
		{"Aa1!" + strings.Repeat("x", 70), false},
	}
	for _, tc := range cases {
		err := validatePassword(tc.pass)
		if tc.ok && err != nil {
			t.Fatalf("expected %q to be accepted, got %v", tc.pass, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("expected %q to be rejected", tc.pass)
		}
	}
}

func TestLogin_DistinguishesUnknownAndWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Login(ctx, "asha@example.com", "Wr0ng!pass"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.Login(ctx, "missing@example.com", "Passw0rd!"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.Login(ctx, "not-an-email", "Passw0rd!"); err == nil {
		t.Fatalf("expected invalid email to be rejected before lookup")
	}
	if _, err := svc.Login(ctx, "asha@example.com", "   "); err == nil {
		t.Fatalf("expected empty password to be rejected")
	}
}
