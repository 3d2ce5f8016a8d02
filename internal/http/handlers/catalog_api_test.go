package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func TestAdminGate(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		name string
		role string
		want int
	}{
		{"no header is trusted", "", fiber.StatusCreated},
		{"admin passes", "admin", fiber.StatusCreated},
		{"customer is rejected", "customer", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.role != "" {
				headers["X-User-Role"] = tc.role
			}
			status, body := postJSON(t, app, "/api/v1/categories",
				`{"title":"`+tc.name+`"}`, headers)
			if status != tc.want {
				t.Fatalf("want %d, got %d body=%v", tc.want, status, body)
			}
			if tc.want == fiber.StatusForbidden && body["error_type"] != "forbidden" {
				t.Fatalf("unexpected forbidden body: %v", body)
			}
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	app, db := newTestApp(t)
	id := seedCatalog(t, db, 1) // category "Phones", product "Alpha"

	t.Run("not found", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/products/9999")
		if status != fiber.StatusNotFound || body["error_type"] != "not_found" {
			t.Fatalf("got %d %v", status, body)
		}
		if body["detail"] == "" {
			t.Fatal("detail must name the missing resource")
		}
	})

	t.Run("conflict", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/v1/categories", `{"title":"  PHONES "}`, nil)
		if status != fiber.StatusConflict || body["error_type"] != "conflict" {
			t.Fatalf("normalized duplicate must conflict, got %d %v", status, body)
		}
	})

	t.Run("validation lists violations", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/v1/products",
			`{"title":"Beta","price":-5,"stock":-1,"category_id":1}`, nil)
		if status != fiber.StatusUnprocessableEntity || body["error_type"] != "validation_error" {
			t.Fatalf("got %d %v", status, body)
		}
		if errs := body["errors"].([]any); len(errs) != 2 {
			t.Fatalf("want violations for price and stock, got %v", errs)
		}
	})

	t.Run("bad request on malformed body", func(t *testing.T) {
		status, body := postJSON(t, app, "/api/v1/products", `not json`, nil)
		if status != fiber.StatusBadRequest || body["error_type"] != "bad_request" {
			t.Fatalf("got %d %v", status, body)
		}
	})

	t.Run("bad request on junk id", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/products/abc")
		if status != fiber.StatusBadRequest {
			t.Fatalf("got %d %v", status, body)
		}
	})

	t.Run("detail resolves category", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/v1/products/"+itoa(id))
		if status != fiber.StatusOK {
			t.Fatalf("got %d %v", status, body)
		}
		cat := body["category"].(map[string]any)
		if cat["title"] != "Phones" {
			t.Fatalf("category not resolved: %v", body)
		}
	})
}

func TestGetByTitleEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	seedCatalog(t, db, 1)

	// lookup normalizes before matching, so any casing finds the row
	status, body := getJSON(t, app, "/api/v1/products/by-title/aLPHA")
	if status != fiber.StatusOK || body["title"] != "Alpha" {
		t.Fatalf("got %d %v", status, body)
	}

	status, body = getJSON(t, app, "/api/v1/categories/by-title/phones")
	if status != fiber.StatusOK || body["title"] != "Phones" {
		t.Fatalf("got %d %v", status, body)
	}

	status, body = getJSON(t, app, "/api/v1/products/by-title/nope")
	if status != fiber.StatusNotFound || body["error_type"] != "not_found" {
		t.Fatalf("got %d %v", status, body)
	}
}

func TestProductCreateEndpoint_ValidatesAttributes(t *testing.T) {
	app, db := newTestApp(t)
	seedCatalog(t, db, 1)
	mustExec(t, db, `INSERT INTO attribute_definitions(category_id, title, type, required) VALUES (1, 'Color', 'string', 1)`)

	status, body := postJSON(t, app, "/api/v1/products",
		`{"title":"gamma","price":500,"stock":3,"category_id":1,"attributes":{"color":42}}`, nil)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("got %d %v", status, body)
	}
	errs := body["errors"].([]any)
	first := errs[0].(map[string]any)
	if first["field"] != "color" {
		t.Fatalf("violation must carry the offending key: %v", errs)
	}

	// and the well-formed variant lands, with the title normalized
	status, body = postJSON(t, app, "/api/v1/products",
		`{"title":"  gamma  ","price":500,"stock":3,"category_id":1,"attributes":{"Color":"red"}}`, nil)
	if status != fiber.StatusCreated {
		t.Fatalf("got %d %v", status, body)
	}
	if body["title"] != "Gamma" {
		t.Fatalf("title not normalized: %v", body["title"])
	}
}

func mustExec(t *testing.T, db *sqlx.DB, q string, args ...any) {
	t.Helper()
	if _, err := db.Exec(q, args...); err != nil {
		t.Fatal(err)
	}
}
