package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

// TokenIssuer signs access tokens. *auth.TokenManager satisfies it.
type TokenIssuer interface {
	Generate(userID, email string, isAdmin bool) (string, error)
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	cost     int
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register creates a regular (non-admin) user and logs them in.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	user := &models.User{
		Email:     normalizeEmail(in.Email),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err := validateUser(user); err != nil {
		return nil, "", err
	}
	if len(in.Password) < minPasswordLen {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !repository.IsNotFound(err) {
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[AuthService] user %s registered", user.ID)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", invalidf("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", ErrInvalidLogin
		}
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidLogin
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUser(u *models.User) error {
	switch {
	case u.Email == "":
		return invalidf("email is required")
	case !emailPattern.MatchString(u.Email):
		return ErrInvalidEmail
	case u.FirstName == "" || len(u.FirstName) > 50:
		return invalidf("first name is required and must be less than 50 characters")
	case u.LastName == "" || len(u.LastName) > 50:
		return invalidf("last name is required and must be less than 50 characters")
	}
	return nil
}
