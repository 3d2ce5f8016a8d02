package services

import (
	"database/sql"
	"errors"

	"prodcat/internal/apperr"
	"prodcat/internal/domain"
	"prodcat/internal/repos"
	"prodcat/internal/validate"
)

type AttributeCreate struct {
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=50"`
	Type       string `json:"type" validate:"required,oneof=string number boolean enum array"`
	Required   bool   `json:"required"`
}

type AttributeUpdate struct {
	Title    *string `json:"title" validate:"omitempty,max=50"`
	Type     *string `json:"type" validate:"omitempty,oneof=string number boolean enum array"`
	Required *bool   `json:"required"`
}

// AttributeService is the admin CRUD for attribute definitions. The
// validator reads these definitions whenever a product in the category is
// written with attributes.
type AttributeService struct {
	Attrs *repos.AttributeRepo
}

func NewAttributeService(attrs *repos.AttributeRepo) *AttributeService {
	return &AttributeService{Attrs: attrs}
}

func (s *AttributeService) Create(data AttributeCreate) (domain.AttributeDefinition, error) {
	title, ok := validate.NormalizeTitle(data.Title)
	if !ok {
		return domain.AttributeDefinition{}, apperr.BadRequestf("attribute title must not be empty")
	}

	if _, err := s.Attrs.GetByCategoryAndTitle(data.CategoryID, title); err == nil {
		return domain.AttributeDefinition{}, apperr.Conflictf("attribute '%s' already exists in category %d", title, data.CategoryID)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.AttributeDefinition{}, err
	}

	created, err := s.Attrs.Create(domain.AttributeDefinition{
		CategoryID: data.CategoryID,
		Title:      title,
		Type:       domain.AttributeType(data.Type),
		Required:   data.Required,
	})
	if err != nil {
		if isFKViolation(err) {
			return domain.AttributeDefinition{}, apperr.NotFoundf("category %d not found", data.CategoryID)
		}
		if isConstraintViolation(err) {
			return domain.AttributeDefinition{}, apperr.BadRequestf("data integrity error")
		}
		return domain.AttributeDefinition{}, err
	}
	return created, nil
}

func (s *AttributeService) GetByID(id int64) (domain.AttributeDefinition, error) {
	d, err := s.Attrs.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AttributeDefinition{}, apperr.NotFoundf("attribute %d not found", id)
	}
	return d, err
}

func (s *AttributeService) List() ([]domain.AttributeDefinition, error) {
	return s.Attrs.List()
}

func (s *AttributeService) ListByCategory(categoryID int64) ([]domain.AttributeDefinition, error) {
	return s.Attrs.ListByCategory(categoryID)
}

func (s *AttributeService) Update(id int64, data AttributeUpdate) (domain.AttributeDefinition, error) {
	d, err := s.GetByID(id)
	if err != nil {
		return domain.AttributeDefinition{}, err
	}

	if data.Title != nil {
		title, ok := validate.NormalizeTitle(*data.Title)
		if !ok {
			return domain.AttributeDefinition{}, apperr.BadRequestf("attribute title must not be empty")
		}
		if title != d.Title {
			if existing, err := s.Attrs.GetByCategoryAndTitle(d.CategoryID, title); err == nil && existing.ID != id {
				return domain.AttributeDefinition{}, apperr.Conflictf("attribute '%s' already exists in category %d", title, d.CategoryID)
			} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return domain.AttributeDefinition{}, err
			}
		}
		d.Title = title
	}
	if data.Type != nil {
		d.Type = domain.AttributeType(*data.Type)
	}
	if data.Required != nil {
		d.Required = *data.Required
	}

	if err := s.Attrs.Update(d); err != nil {
		if isConstraintViolation(err) {
			return domain.AttributeDefinition{}, apperr.Conflictf("attribute '%s' already exists in category %d", d.Title, d.CategoryID)
		}
		return domain.AttributeDefinition{}, err
	}
	return s.Attrs.Get(id)
}

func (s *AttributeService) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.Attrs.Delete(id)
}
