package services_test

import (
	"testing"

	"prodcat/internal/apperr"
	"prodcat/internal/repos"
	"prodcat/internal/services"
)

func TestAttributeCreate_UniquePerCategory(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "Phones")
	otherCat := seedCategory(t, db, "Laptops")
	svc := services.NewAttributeService(repos.NewAttributeRepo(db))

	d, err := svc.Create(services.AttributeCreate{CategoryID: catID, Title: "color", Type: "string", Required: true})
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "Color" || !d.Required {
		t.Fatalf("unexpected definition: %+v", d)
	}

	// duplicate within the category conflicts, case-insensitively
	_, err = svc.Create(services.AttributeCreate{CategoryID: catID, Title: "COLOR", Type: "string"})
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.Conflict {
		t.Fatalf("want conflict, got %v", err)
	}

	// same name in another category is fine
	if _, err := svc.Create(services.AttributeCreate{CategoryID: otherCat, Title: "Color", Type: "string"}); err != nil {
		t.Fatalf("same title in another category must pass: %v", err)
	}
}

func TestAttributeCreate_MissingCategory(t *testing.T) {
	db := memdb(t)
	svc := services.NewAttributeService(repos.NewAttributeRepo(db))

	_, err := svc.Create(services.AttributeCreate{CategoryID: 42, Title: "Color", Type: "string"})
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.NotFound {
		t.Fatalf("FK failure must surface as not-found, got %v", err)
	}
}

func TestAttributeUpdateDelete(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "Phones")
	svc := services.NewAttributeService(repos.NewAttributeRepo(db))

	d, err := svc.Create(services.AttributeCreate{CategoryID: catID, Title: "Color", Type: "string"})
	if err != nil {
		t.Fatal(err)
	}

	typ := "enum"
	req := true
	updated, err := svc.Update(d.ID, services.AttributeUpdate{Type: &typ, Required: &req})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Type != "enum" || !updated.Required {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.Delete(d.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(d.ID); err == nil {
		t.Fatal("second delete must 404")
	}
}
