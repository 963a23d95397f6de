package service

import (
	"context"
	"strings"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/idx"
)

// TaxonomyService manages the category and tag vocabularies. Creation is an
// admin concern; reads are public.
type TaxonomyService struct {
	Store store.Store
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrInvalidInput
	}
	c := domain.Category{
		ID:   idx.New().String(),
		Name: name,
		Slug: Slugify(name),
	}
	if err := s.Store.Categories().CreateCategory(ctx, c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx)
}

func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, ErrInvalidInput
	}
	t := domain.Tag{
		ID:   idx.New().String(),
		Name: name,
		Slug: Slugify(name),
	}
	if err := s.Store.Tags().CreateTag(ctx, t); err != nil {
		return domain.Tag{}, err
	}
	return t, nil
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.Store.Tags().ListTags(ctx)
}
