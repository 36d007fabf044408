package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/tripledger/internal/domain"
)

// UserUseCase handles user registration and lookup.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, idGen: idGen}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Name  string
	Email *string
}

// CreateUser creates a user with an optional unique email.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if input.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*input.Email))
		if err := domain.ValidateEmail(normalized); err != nil {
			return nil, err
		}
		input.Email = &normalized
	}

	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
