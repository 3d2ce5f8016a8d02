package services

import (
	"database/sql"
	"errors"

	"prodcat/internal/apperr"
	"prodcat/internal/domain"
	"prodcat/internal/repos"
	"prodcat/internal/validate"
)

type CategoryCreate struct {
	Title string `json:"title" validate:"required,max=100"`
}

type CategoryUpdate struct {
	Title *string `json:"title" validate:"omitempty,max=100"`
}

type CategoryService struct {
	Cats *repos.CategoryRepo
}

func NewCategoryService(cats *repos.CategoryRepo) *CategoryService {
	return &CategoryService{Cats: cats}
}

// Create normalizes the title and rejects duplicates; two titles that
// normalize to the same value conflict.
func (s *CategoryService) Create(data CategoryCreate) (domain.Category, error) {
	title, ok := validate.NormalizeTitle(data.Title)
	if !ok {
		return domain.Category{}, apperr.BadRequestf("category title must not be empty")
	}

	if _, err := s.Cats.GetByTitle(title); err == nil {
		return domain.Category{}, apperr.Conflictf("category '%s' already exists", title)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, err
	}

	created, err := s.Cats.Create(title)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.Category{}, apperr.Conflictf("category '%s' already exists", title)
		}
		return domain.Category{}, err
	}
	return created, nil
}

func (s *CategoryService) GetByID(id int64) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperr.NotFoundf("category %d not found", id)
	}
	return c, err
}

func (s *CategoryService) GetByTitle(title string) (domain.Category, error) {
	normalized, ok := validate.NormalizeTitle(title)
	if !ok {
		return domain.Category{}, apperr.BadRequestf("category title must not be empty")
	}
	c, err := s.Cats.GetByTitle(normalized)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperr.NotFoundf("category '%s' not found", normalized)
	}
	return c, err
}

func (s *CategoryService) List() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CategoryService) Update(id int64, data CategoryUpdate) (domain.Category, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return domain.Category{}, err
	}
	if data.Title == nil {
		return c, nil
	}

	title, ok := validate.NormalizeTitle(*data.Title)
	if !ok {
		return domain.Category{}, apperr.BadRequestf("category title must not be empty")
	}
	if title != c.Title {
		if existing, err := s.Cats.GetByTitle(title); err == nil && existing.ID != id {
			return domain.Category{}, apperr.Conflictf("category '%s' already exists", title)
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, err
		}
	}

	if err := s.Cats.UpdateTitle(id, title); err != nil {
		if isConstraintViolation(err) {
			return domain.Category{}, apperr.Conflictf("category '%s' already exists", title)
		}
		return domain.Category{}, err
	}
	return s.Cats.Get(id)
}

// Delete cascades to the category's attribute definitions and products.
func (s *CategoryService) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.Cats.Delete(id)
}
