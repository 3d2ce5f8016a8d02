package repos

import (
	"prodcat/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AttributeRepo struct{ db *sqlx.DB }

func NewAttributeRepo(db *sqlx.DB) *AttributeRepo { return &AttributeRepo{db: db} }

func (r *AttributeRepo) Create(d domain.AttributeDefinition) (domain.AttributeDefinition, error) {
	res, err := r.db.Exec(`
  INSERT INTO attribute_definitions(category_id, title, type, required)
  VALUES (?, ?, ?, ?)
`, d.CategoryID, d.Title, d.Type, d.Required)
	if err != nil {
		return domain.AttributeDefinition{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.AttributeDefinition{}, err
	}
	return r.Get(id)
}

func (r *AttributeRepo) Get(id int64) (domain.AttributeDefinition, error) {
	var d domain.AttributeDefinition
	err := r.db.Get(&d, `
  SELECT id, category_id, title, type, required
  FROM attribute_definitions
  WHERE id = ?
`, id)
	return d, err
}

// GetByCategoryAndTitle backs the case-insensitive uniqueness check.
func (r *AttributeRepo) GetByCategoryAndTitle(categoryID int64, title string) (domain.AttributeDefinition, error) {
	var d domain.AttributeDefinition
	err := r.db.Get(&d, `
  SELECT id, category_id, title, type, required
  FROM attribute_definitions
  WHERE category_id = ? AND LOWER(title) = LOWER(?)
`, categoryID, title)
	return d, err
}

func (r *AttributeRepo) ListByCategory(categoryID int64) ([]domain.AttributeDefinition, error) {
	out := []domain.AttributeDefinition{}
	err := r.db.Select(&out, `
  SELECT id, category_id, title, type, required
  FROM attribute_definitions
  WHERE category_id = ?
  ORDER BY id
`, categoryID)
	return out, err
}

func (r *AttributeRepo) List() ([]domain.AttributeDefinition, error) {
	out := []domain.AttributeDefinition{}
	err := r.db.Select(&out, `
  SELECT id, category_id, title, type, required
  FROM attribute_definitions
  ORDER BY id
`)
	return out, err
}

func (r *AttributeRepo) Update(d domain.AttributeDefinition) error {
	_, err := r.db.Exec(`
  UPDATE attribute_definitions
  SET title = ?, type = ?, required = ?
  WHERE id = ?
`, d.Title, d.Type, d.Required, d.ID)
	return err
}

func (r *AttributeRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM attribute_definitions WHERE id = ?`, id)
	return err
}
