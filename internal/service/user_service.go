package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserPatch struct {
	FirstName *string
	LastName  *string
	Password  *string
}

type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, patch UserPatch) (*models.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes names and password. Email and admin flag are not
// editable here.
func (s *userService) UpdateProfile(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		user.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		user.LastName = strings.TrimSpace(*patch.LastName)
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLen {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) SetAdmin(ctx context.Context, id string, isAdmin bool) (*models.User, error) {
	if err := s.repo.SetAdmin(ctx, id, isAdmin); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("set admin: %w", err)
	}

	log.Printf("[UserService] user %s admin=%t", id, isAdmin)
	return s.GetUser(ctx, id)
}
