package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"prodcat/internal/repos"
	"prodcat/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCategory(t *testing.T, db *sqlx.DB, title string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO categories(title) VALUES (?)`, title)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedAttribute(t *testing.T, db *sqlx.DB, categoryID int64, title, typ string, required bool) {
	t.Helper()
	if _, err := db.Exec(`
		INSERT INTO attribute_definitions(category_id, title, type, required)
		VALUES (?, ?, ?, ?)`, categoryID, title, typ, required); err != nil {
		t.Fatal(err)
	}
}

func TestAttributeValidator_RequiredAndTypes(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "Phones")
	seedAttribute(t, db, catID, "Color", "string", true)
	seedAttribute(t, db, catID, "Weight", "number", false)

	v := services.NewAttributeValidator(repos.NewAttributeRepo(db))

	// empty map: only the required attribute is reported
	violations, err := v.Validate(catID, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 1 || violations[0].Field != "Color" || violations[0].Message != "required attribute missing" {
		t.Fatalf("want single Color violation, got %+v", violations)
	}

	// wrong type for Weight: exactly one violation
	violations, err = v.Validate(catID, map[string]any{"Color": "Red", "Weight": "heavy"})
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 1 || violations[0].Field != "Weight" {
		t.Fatalf("want single Weight violation, got %+v", violations)
	}
	if violations[0].Message != "attribute must be of type number" {
		t.Fatalf("unexpected message: %q", violations[0].Message)
	}
}

func TestAttributeValidator_CaseInsensitiveMatch(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "Phones")
	seedAttribute(t, db, catID, "Color", "string", true)

	v := services.NewAttributeValidator(repos.NewAttributeRepo(db))

	violations, err := v.Validate(catID, map[string]any{"color": "red"})
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Fatalf("lowercase key should satisfy the definition, got %+v", violations)
	}
}

func TestAttributeValidator_UnknownKeysIgnored(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "Phones")
	seedAttribute(t, db, catID, "Color", "string", false)

	v := services.NewAttributeValidator(repos.NewAttributeRepo(db))

	violations, err := v.Validate(catID, map[string]any{"Bogus": 123, "Other": []any{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Fatalf("unknown attributes must pass through, got %+v", violations)
	}
}

func TestAttributeValidator_AllTypeShapes(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "Gadgets")
	seedAttribute(t, db, catID, "Name", "string", false)
	seedAttribute(t, db, catID, "Count", "number", false)
	seedAttribute(t, db, catID, "Fragile", "boolean", false)
	seedAttribute(t, db, catID, "Size", "enum", false)
	seedAttribute(t, db, catID, "Tags", "array", false)

	v := services.NewAttributeValidator(repos.NewAttributeRepo(db))

	ok := map[string]any{
		"Name":    "Box",
		"Count":   float64(3), // decoded JSON numbers arrive as float64
		"Fragile": true,
		"Size":    "XL", // enum is checked as text only
		"Tags":    []any{"a", "b"},
	}
	violations, err := v.Validate(catID, ok)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Fatalf("valid shapes rejected: %+v", violations)
	}

	bad := map[string]any{
		"Name":    7,
		"Count":   "three",
		"Fragile": "yes",
		"Size":    5,
		"Tags":    "a,b",
	}
	violations, err = v.Validate(catID, bad)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 5 {
		t.Fatalf("want all 5 violations in one pass, got %d: %+v", len(violations), violations)
	}
}
