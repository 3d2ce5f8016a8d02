package handlers

import (
	"net/url"

	applog "prodcat/internal/log"
	"prodcat/internal/services"
	"prodcat/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req services.CategoryCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	cat, err := h.Categories.Create(req)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID, "title": cat.Title})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List()
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

// GET /api/v1/categories/by-title/:title
func (h *CategoryHandler) GetByTitle(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category title")
	}
	cat, err := h.Categories.GetByTitle(title)
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}
	cat, err := h.Categories.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// PATCH /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}
	var req services.CategoryUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	cat, err := h.Categories.Update(id, req)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.JSON(cat)
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}
	if err := h.Categories.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
