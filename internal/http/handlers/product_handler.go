package handlers

import (
	"net/url"

	"prodcat/internal/config"
	applog "prodcat/internal/log"
	"prodcat/internal/services"
	"prodcat/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
	Cfg      config.Config
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.ProductCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Products.Create(req)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "category_id": p.CategoryID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := validate.Page(c.Query("page"))
	pageSize := validate.PageSize(c.Query("page_size"), h.Cfg.DefaultPageSize, h.Cfg.MaxPageSize)
	out, err := h.Products.List(page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/products/:id and GET /products/:id (internal) share this:
// the full representation with the resolved category.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	detail, err := h.Products.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// GET /api/v1/products/by-title/:title
func (h *ProductHandler) GetByTitle(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product title")
	}
	p, err := h.Products.GetByTitle(title)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// GET /api/v1/categories/:id/products
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}
	items, err := h.Products.ListByCategory(id)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// PATCH /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	var req services.ProductUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.Products.Update(id, req)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Products.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
