package domain

import "encoding/json"

type AttributeType string

const (
	AttrString  AttributeType = "string"
	AttrNumber  AttributeType = "number"
	AttrBoolean AttributeType = "boolean"
	AttrEnum    AttributeType = "enum"
	AttrArray   AttributeType = "array"
)

func (t AttributeType) Valid() bool {
	switch t {
	case AttrString, AttrNumber, AttrBoolean, AttrEnum, AttrArray:
		return true
	}
	return false
}

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

type Category struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// AttributeDefinition describes one allowed dynamic attribute for products of
// a category: its name (unique within the category, compared
// case-insensitively), declared type and whether products must carry it.
type AttributeDefinition struct {
	ID         int64         `db:"id" json:"id"`
	CategoryID int64         `db:"category_id" json:"category_id"`
	Title      string        `db:"title" json:"title"`
	Type       AttributeType `db:"type" json:"type"`
	Required   bool          `db:"required" json:"required"`
}

type Product struct {
	ID          int64   `db:"id" json:"id"`
	CategoryID  int64   `db:"category_id" json:"category_id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description,omitempty"`
	Price       int64   `db:"price" json:"price"` // minor currency units
	Stock       int     `db:"stock" json:"stock"`
	Rating      float64 `db:"rating" json:"rating"`
	Status      string  `db:"status" json:"status"`

	// Raw JSON columns and their decoded forms. Repos decode after scanning;
	// services encode before writing.
	ImagesJSON     string         `db:"images_json" json:"-"`
	AttributesJSON string         `db:"attributes_json" json:"-"`
	Images         []string       `db:"-" json:"images"`
	Attributes     map[string]any `db:"-" json:"attributes"`

	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// Decode fills Images and Attributes from the raw JSON columns.
func (p *Product) Decode() {
	p.Images = []string{}
	if p.ImagesJSON != "" {
		_ = json.Unmarshal([]byte(p.ImagesJSON), &p.Images)
	}
	p.Attributes = map[string]any{}
	if p.AttributesJSON != "" {
		_ = json.Unmarshal([]byte(p.AttributesJSON), &p.Attributes)
	}
}

// Encode refreshes the raw JSON columns from Images and Attributes.
func (p *Product) Encode() error {
	imgs := p.Images
	if imgs == nil {
		imgs = []string{}
	}
	b, err := json.Marshal(imgs)
	if err != nil {
		return err
	}
	p.ImagesJSON = string(b)

	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	b, err = json.Marshal(attrs)
	if err != nil {
		return err
	}
	p.AttributesJSON = string(b)
	return nil
}

func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
