package account

import (
	"context"
	"errors"
	"io"
	"log"
	"regexp"
	"strings"

	"storefront/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAccountNotFound is returned by Login when no account uses the email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidPassword is returned by Login when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrEmailTaken is returned by Signup when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

const (
	passwordMin = 8
	// bcrypt ignores input past 72 bytes.
	passwordMaxBytes = 72
	specialChars     = `!@#$%^&*(),.?":{}|<>`
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service handles signup and login.
type Service struct {
	repo   userRepo
	logger *log.Logger
	cost   int
}

func New(repo userRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

// SignupInput captures the signup form.
type SignupInput struct {
	Name          string `form:"name" json:"name"`
	Email         string `form:"email" json:"email"`
	Password      string `form:"password" json:"password"`
	Address       string `form:"address" json:"address"`
	ContactNumber string `form:"contact_number" json:"contactNumber"`
}

// Signup validates the form and creates an account whose username is its email.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	address := strings.TrimSpace(in.Address)
	contact := strings.TrimSpace(in.ContactNumber)

	if name == "" || email == "" || password == "" || address == "" || contact == "" {
		return nil, domain.NewValidationError("All fields are required.")
	}
	if !ValidEmail(email) {
		return nil, domain.NewValidationError("Please enter a valid email.")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, domain.User{
		Name:          name,
		Username:      strings.ToLower(email),
		Email:         strings.ToLower(email),
		PasswordHash:  string(hashed),
		Address:       address,
		ContactNumber: contact,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		s.logger.Printf("account: signup email=%s error=%v", email, err)
		return nil, err
	}
	s.logger.Printf("account: signup user=%d", u.ID)
	return u, nil
}

// Login checks the credentials. Unknown accounts and wrong passwords are
// reported with distinct errors so the caller can route to signup.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if !ValidEmail(email) {
		return nil, domain.NewValidationError("Please enter a valid email.")
	}
	if password == "" {
		return nil, domain.NewValidationError("Password is required.")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ValidEmail reports whether email has a local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validatePassword(p string) error {
	if len(p) > passwordMaxBytes {
		return domain.NewValidationError("Password must be at most 72 bytes long.")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	if len(p) < passwordMin || !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return domain.NewValidationError("Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character, and be at least 8 characters long.")
	}
	return nil
}
