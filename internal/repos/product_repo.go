package repos

import (
	"errors"
	"fmt"

	"prodcat/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientStock reports a guarded decrement that matched no row.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, category_id, title, description, price, stock, rating, status,
    images_json, attributes_json, created_at, updated_at`

func (r *ProductRepo) Create(p domain.Product) (domain.Product, error) {
	res, err := r.db.Exec(`
  INSERT INTO products(category_id, title, description, price, stock, rating, status, images_json, attributes_json)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.CategoryID, p.Title, p.Description, p.Price, p.Stock, p.Rating, p.Status, p.ImagesJSON, p.AttributesJSON)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	p.Decode()
	return p, err
}

// GetByTitle matches case-insensitively; callers normalize first.
func (r *ProductRepo) GetByTitle(title string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE LOWER(title) = LOWER(?)`, title)
	p.Decode()
	return p, err
}

func (r *ProductRepo) List(limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
  SELECT`+productCols+`
  FROM products
  ORDER BY id
  LIMIT ? OFFSET ?
`, limit, offset)
	for i := range out {
		out[i].Decode()
	}
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) ListByCategory(categoryID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
  SELECT`+productCols+`
  FROM products
  WHERE category_id = ?
  ORDER BY id
`, categoryID)
	for i := range out {
		out[i].Decode()
	}
	return out, err
}

// Update rewrites every mutable column; the service applies partial updates
// to the loaded row before calling it.
func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
  UPDATE products
  SET category_id = ?, title = ?, description = ?, price = ?, stock = ?, rating = ?,
      status = ?, images_json = ?, attributes_json = ?, updated_at = CURRENT_TIMESTAMP
  WHERE id = ?
`, p.CategoryID, p.Title, p.Description, p.Price, p.Stock, p.Rating, p.Status, p.ImagesJSON, p.AttributesJSON, p.ID)
	return err
}

func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// Tx-scoped reads/mutations for the reservation engine. The transaction is
// owned by the single operation that opened it.

func (r *ProductRepo) GetTx(tx *sqlx.Tx, id int64) (domain.Product, error) {
	var p domain.Product
	err := tx.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	p.Decode()
	return p, err
}

// DecrementStock subtracts "by" units only if enough stock exists, so stock
// never goes negative even transiently inside the transaction.
func (r *ProductRepo) DecrementStock(tx *sqlx.Tx, id int64, by int) error {
	res, err := tx.Exec(`
  UPDATE products
  SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
  WHERE id = ? AND stock >= ?
`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w for product %d", ErrInsufficientStock, id)
	}
	return nil
}

func (r *ProductRepo) IncrementStock(tx *sqlx.Tx, id int64, by int) error {
	_, err := tx.Exec(`
  UPDATE products
  SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
  WHERE id = ?
`, by, id)
	return err
}

func (r *ProductRepo) Begin() (*sqlx.Tx, error) { return r.db.Beginx() }
