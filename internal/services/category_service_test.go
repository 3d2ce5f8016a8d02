package services_test

import (
	"testing"

	"prodcat/internal/apperr"
	"prodcat/internal/repos"
	"prodcat/internal/services"
)

func TestCategoryCreate_NormalizedUniqueness(t *testing.T) {
	db := memdb(t)
	svc := services.NewCategoryService(repos.NewCategoryRepo(db))

	first, err := svc.Create(services.CategoryCreate{Title: "  phones "})
	if err != nil {
		t.Fatal(err)
	}
	if first.Title != "Phones" {
		t.Fatalf("title not normalized: %q", first.Title)
	}

	// a different spelling that normalizes to the same title conflicts
	_, err = svc.Create(services.CategoryCreate{Title: "PHONES"})
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.Conflict {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestCategoryUpdate_RenameConflicts(t *testing.T) {
	db := memdb(t)
	svc := services.NewCategoryService(repos.NewCategoryRepo(db))

	a, _ := svc.Create(services.CategoryCreate{Title: "Phones"})
	b, _ := svc.Create(services.CategoryCreate{Title: "Laptops"})

	title := "phones"
	_, err := svc.Update(b.ID, services.CategoryUpdate{Title: &title})
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.Conflict {
		t.Fatalf("want conflict renaming onto existing title, got %v", err)
	}

	// renaming a category onto itself is fine
	same := "PHONES"
	updated, err := svc.Update(a.ID, services.CategoryUpdate{Title: &same})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Phones" {
		t.Fatalf("want Phones, got %q", updated.Title)
	}
}

func TestCategoryDelete_Cascades(t *testing.T) {
	db := memdb(t)
	svc := services.NewCategoryService(repos.NewCategoryRepo(db))

	cat, err := svc.Create(services.CategoryCreate{Title: "Phones"})
	if err != nil {
		t.Fatal(err)
	}
	seedAttribute(t, db, cat.ID, "Color", "string", true)
	seedProduct(t, db, cat.ID, "Alpha", 1000, 5)

	if err := svc.Delete(cat.ID); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM attribute_definitions`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("attribute definitions must cascade")
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("products must cascade")
	}

	if err := svc.Delete(cat.ID); err == nil {
		t.Fatal("second delete must 404")
	}
}

func TestCategoryGetByTitle(t *testing.T) {
	db := memdb(t)
	svc := services.NewCategoryService(repos.NewCategoryRepo(db))

	if _, err := svc.Create(services.CategoryCreate{Title: "Phones"}); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetByTitle(" phones ")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Phones" {
		t.Fatalf("lookup should normalize first, got %+v", got)
	}

	_, err = svc.GetByTitle("Tablets")
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.NotFound {
		t.Fatalf("want not-found, got %v", err)
	}
}
