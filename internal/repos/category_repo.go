package repos

import (
	"prodcat/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(title string) (domain.Category, error) {
	res, err := r.db.Exec(`INSERT INTO categories(title) VALUES (?)`, title)
	if err != nil {
		return domain.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Category{}, err
	}
	return r.Get(id)
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
  SELECT id, title, created_at, updated_at
  FROM categories
  WHERE id = ?
`, id)
	return c, err
}

// GetByTitle matches case-insensitively; callers normalize first.
func (r *CategoryRepo) GetByTitle(title string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
  SELECT id, title, created_at, updated_at
  FROM categories
  WHERE LOWER(title) = LOWER(?)
`, title)
	return c, err
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT id, title, created_at, updated_at
  FROM categories
  ORDER BY id
`)
	return out, err
}

func (r *CategoryRepo) UpdateTitle(id int64, title string) error {
	_, err := r.db.Exec(`
  UPDATE categories SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, title, id)
	return err
}

// Delete cascades to the category's attribute definitions and products.
func (r *CategoryRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
