package handlers

import (
	applog "prodcat/internal/log"
	"prodcat/internal/repos"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler renders the read-only dashboard. All mutation goes through
// the JSON API; the dashboard exists for operators to eyeball the catalog.
type AdminHandler struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Attrs *repos.AttributeRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not load dashboard")
	}
	prods, err := h.Prods.List(100, 0)
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not load dashboard")
	}
	defs, err := h.Attrs.List()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not load dashboard")
	}
	total, _ := h.Prods.Count()
	return c.Render("admin_dashboard", fiber.Map{
		"Categories":    cats,
		"Products":      prods,
		"Attributes":    defs,
		"ProductsTotal": total,
	})
}
