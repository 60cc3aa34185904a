package service

import (
	"context"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages credential-store records past registration.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput carries the optional fields of a user update. Password, if
// present, arrives in clear text and is hashed here.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Address  *string
	Phone    *string
	Role     *string
	Active   *bool
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Update applies the present fields and returns the updated user.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, input UpdateUserInput) (*models.User, error) {
	if input.Role != nil && !constants.IsValidRole(*input.Role) {
		return nil, newValidationError("role", "must be one of: user, admin")
	}

	update := repository.UserUpdate{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
		Role:    input.Role,
		Active:  input.Active,
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.Password = &hashed
	}

	user, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Delete removes a user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
