package service

import (
	"context"
	"strings"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService manages product categories.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create inserts a category. Name and description are both required.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, requiredError("name")
	}
	if strings.TrimSpace(description) == "" {
		return nil, requiredError("description")
	}
	category := models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update replaces name and description of a category.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, requiredError("name")
	}
	if strings.TrimSpace(description) == "" {
		return nil, requiredError("description")
	}
	category, err := s.categoryRepo.Update(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}
