package services

import (
	"database/sql"
	"errors"
	"slices"
	"strings"

	"prodcat/internal/apperr"
	"prodcat/internal/domain"
	"prodcat/internal/repos"
	"prodcat/internal/validate"
)

type ProductCreate struct {
	Title       string         `json:"title" validate:"required,max=255"`
	Price       int64          `json:"price" validate:"gte=0"`
	CategoryID  int64          `json:"category_id" validate:"required,gt=0"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Rating      float64        `json:"rating" validate:"gte=0,lte=5"`
	Status      string         `json:"status" validate:"omitempty,oneof=active archived"`
	Attributes  map[string]any `json:"attributes"`
}

// ProductUpdate is a partial update: nil means "leave unchanged".
type ProductUpdate struct {
	Title       *string        `json:"title" validate:"omitempty,max=255"`
	Price       *int64         `json:"price" validate:"omitempty,gte=0"`
	CategoryID  *int64         `json:"category_id" validate:"omitempty,gt=0"`
	Description *string        `json:"description"`
	Images      *[]string      `json:"images"`
	Stock       *int           `json:"stock" validate:"omitempty,gte=0"`
	Rating      *float64       `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Status      *string        `json:"status" validate:"omitempty,oneof=active archived"`
	Attributes  map[string]any `json:"attributes"`
}

type ProductDetail struct {
	domain.Product
	Category domain.Category `json:"category"`
}

type ProductPage struct {
	Items    []domain.Product `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ProductService is the write path: referential-integrity checks, attribute
// validation, persistence, and post-commit change notifications.
type ProductService struct {
	Cats      *repos.CategoryRepo
	Prods     *repos.ProductRepo
	Validator *AttributeValidator
	Cart      CartNotifier
}

func NewProductService(cats *repos.CategoryRepo, prods *repos.ProductRepo, validator *AttributeValidator, cart CartNotifier) *ProductService {
	return &ProductService{Cats: cats, Prods: prods, Validator: validator, Cart: cart}
}

func (s *ProductService) Create(data ProductCreate) (domain.Product, error) {
	title, ok := validate.NormalizeTitle(data.Title)
	if !ok {
		return domain.Product{}, apperr.BadRequestf("product title must not be empty")
	}

	if _, err := s.Cats.Get(data.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, apperr.NotFoundf("category %d not found", data.CategoryID)
		}
		return domain.Product{}, err
	}

	if len(data.Attributes) > 0 {
		violations, err := s.Validator.Validate(data.CategoryID, data.Attributes)
		if err != nil {
			return domain.Product{}, err
		}
		if len(violations) > 0 {
			return domain.Product{}, apperr.NewValidation("product attributes failed validation", violations)
		}
	}

	status := data.Status
	if status == "" {
		status = domain.StatusActive
	}
	p := domain.Product{
		CategoryID:  data.CategoryID,
		Title:       title,
		Description: data.Description,
		Price:       data.Price,
		Stock:       data.Stock,
		Rating:      data.Rating,
		Status:      status,
		Images:      data.Images,
		Attributes:  data.Attributes,
	}
	if err := p.Encode(); err != nil {
		return domain.Product{}, err
	}

	created, err := s.Prods.Create(p)
	if err != nil {
		// The category may have been deleted between the check above and
		// the insert; surface that race as the same not-found condition.
		if isFKViolation(err) {
			return domain.Product{}, apperr.NotFoundf("category %d not found", data.CategoryID)
		}
		if isConstraintViolation(err) {
			return domain.Product{}, apperr.BadRequestf("data integrity error")
		}
		return domain.Product{}, err
	}
	// No notification on create: only update, delete and reserve notify.
	return created, nil
}

func (s *ProductService) GetByID(id int64) (ProductDetail, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductDetail{}, apperr.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return ProductDetail{}, err
	}
	cat, err := s.Cats.Get(p.CategoryID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Category: cat}, nil
}

func (s *ProductService) GetByTitle(title string) (domain.Product, error) {
	normalized, ok := validate.NormalizeTitle(title)
	if !ok {
		return domain.Product{}, apperr.BadRequestf("product title must not be empty")
	}
	p, err := s.Prods.GetByTitle(normalized)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFoundf("product '%s' not found", normalized)
	}
	return p, err
}

func (s *ProductService) List(page, pageSize int) (ProductPage, error) {
	items, err := s.Prods.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return ProductPage{}, err
	}
	total, err := s.Prods.Count()
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *ProductService) ListByCategory(categoryID int64) ([]domain.Product, error) {
	if _, err := s.Cats.Get(categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFoundf("category %d not found", categoryID)
		}
		return nil, err
	}
	return s.Prods.ListByCategory(categoryID)
}

// Update applies a partial update and, after commit, fires the change events
// independently: title/price/image changes, stock crossing to zero, stock
// coming back from zero. Any subset may fire for a single call.
func (s *ProductService) Update(id int64, data ProductUpdate) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return domain.Product{}, err
	}

	prevTitle := p.Title
	prevPrice := p.Price
	prevImages := append([]string(nil), p.Images...)
	prevStock := p.Stock

	effectiveCategory := p.CategoryID
	if data.CategoryID != nil && *data.CategoryID != p.CategoryID {
		if _, err := s.Cats.Get(*data.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Product{}, apperr.NotFoundf("category %d not found", *data.CategoryID)
			}
			return domain.Product{}, err
		}
		effectiveCategory = *data.CategoryID
	}

	// Attributes are re-validated against the category the product will end
	// up in, not necessarily the one it came from.
	if data.Attributes != nil {
		violations, err := s.Validator.Validate(effectiveCategory, data.Attributes)
		if err != nil {
			return domain.Product{}, err
		}
		if len(violations) > 0 {
			return domain.Product{}, apperr.NewValidation("product attributes failed validation", violations)
		}
		p.Attributes = data.Attributes
	}

	if data.Title != nil {
		title, ok := validate.NormalizeTitle(*data.Title)
		if !ok {
			return domain.Product{}, apperr.BadRequestf("product title must not be empty")
		}
		p.Title = title
	}
	if data.Price != nil {
		p.Price = *data.Price
	}
	p.CategoryID = effectiveCategory
	if data.Description != nil {
		p.Description = *data.Description
	}
	if data.Images != nil {
		p.Images = *data.Images
	}
	if data.Stock != nil {
		p.Stock = *data.Stock
	}
	if data.Rating != nil {
		p.Rating = *data.Rating
	}
	if data.Status != nil {
		p.Status = *data.Status
	}
	if err := p.Encode(); err != nil {
		return domain.Product{}, err
	}

	if err := s.Prods.Update(p); err != nil {
		if isFKViolation(err) {
			return domain.Product{}, apperr.NotFoundf("category %d not found", effectiveCategory)
		}
		if isConstraintViolation(err) {
			return domain.Product{}, apperr.BadRequestf("data integrity error")
		}
		return domain.Product{}, err
	}

	if p.Title != prevTitle || p.Price != prevPrice || !slices.Equal(p.Images, prevImages) {
		s.Cart.NotifyProductUpdated(p.ID, p.Title, p.Price, p.FirstImage())
	}
	if prevStock > 0 && p.Stock == 0 {
		s.Cart.NotifyOutOfStock(p.ID)
	}
	if prevStock == 0 && p.Stock > 0 {
		s.Cart.NotifyBackInStock(p.ID)
	}

	updated, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

func (s *ProductService) Delete(id int64) error {
	if _, err := s.Prods.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("product %d not found", id)
		}
		return err
	}
	if err := s.Prods.Delete(id); err != nil {
		return err
	}
	s.Cart.NotifyProductDeleted(id)
	return nil
}

func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
