package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ItemService is the basic items CRUD demo.
type ItemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, name, description string) (*domain.Item, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}
	it := &domain.Item{Name: name, Description: description}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update applies a partial change: nil fields keep their old values.
func (s *ItemService) Update(ctx context.Context, id int64, name, description *string) (*domain.Item, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		it.Name = *name
	}
	if description != nil {
		it.Description = *description
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
