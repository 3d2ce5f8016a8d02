package handlers

import (
	applog "prodcat/internal/log"
	"prodcat/internal/services"
	"prodcat/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AttributeHandler struct {
	Attributes *services.AttributeService
}

// POST /api/v1/attributes
func (h *AttributeHandler) Create(c *fiber.Ctx) error {
	var req services.AttributeCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.Attributes.Create(req)
	if err != nil {
		return err
	}
	applog.Audit(c, "attribute.create", map[string]any{"attribute_id": d.ID, "category_id": d.CategoryID})
	return c.Status(fiber.StatusCreated).JSON(d)
}

// GET /api/v1/attributes
func (h *AttributeHandler) List(c *fiber.Ctx) error {
	defs, err := h.Attributes.List()
	if err != nil {
		return err
	}
	return c.JSON(defs)
}

// GET /api/v1/attributes/:id
func (h *AttributeHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attribute id")
	}
	d, err := h.Attributes.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// GET /api/v1/categories/:id/attributes
func (h *AttributeHandler) ListByCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}
	defs, err := h.Attributes.ListByCategory(id)
	if err != nil {
		return err
	}
	return c.JSON(defs)
}

// PATCH /api/v1/attributes/:id
func (h *AttributeHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attribute id")
	}
	var req services.AttributeUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	d, err := h.Attributes.Update(id, req)
	if err != nil {
		return err
	}
	applog.Audit(c, "attribute.update", map[string]any{"attribute_id": id})
	return c.JSON(d)
}

// DELETE /api/v1/attributes/:id
func (h *AttributeHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attribute id")
	}
	if err := h.Attributes.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "attribute.delete", map[string]any{"attribute_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
