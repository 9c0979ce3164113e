package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstepanov/warehouse-api/internal/domain"
	"github.com/dstepanov/warehouse-api/internal/pkg/hashhelper"
	"github.com/dstepanov/warehouse-api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrUserNotFound   = repository.ErrUserNotFound

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so a caller can never tell which one failed.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// Register stores a new account with a bcrypt hash of the password. The
// username's uniqueness is ultimately guaranteed by the database constraint,
// so two concurrent registrations can never both succeed.
func (s *UserService) Register(ctx context.Context, username, password, role string) (domain.User, error) {
	hash, err := hashhelper.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashhelper.HashPassword -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username: username,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return domain.User{}, ErrUsernameExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, error) {
	users, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, nil
}

// Authenticate resolves the account for a username/password pair. Both an
// unknown username and a failed verification come back as
// ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	ok, err := hashhelper.VerifyPassword(password, user.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashhelper.VerifyPassword -> %w", err)
	}
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}
