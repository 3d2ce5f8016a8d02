package handlers

import (
	applog "prodcat/internal/log"
	"prodcat/internal/services"

	"github.com/gofiber/fiber/v2"
)

type reserveRequest struct {
	Items []services.ReservationItem `json:"items" validate:"required,min=1,dive"`
}

// ReserveHandler exposes the reservation protocol consumed by the external
// order workflow. Outcomes travel as data (success flag + error list), not
// as HTTP error statuses.
type ReserveHandler struct {
	Reservations *services.ReservationService
}

// POST /products/reserve
func (h *ReserveHandler) Reserve(c *fiber.Ctx) error {
	var req reserveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.Reservations.Reserve(req.Items)
	if err != nil {
		return err
	}
	applog.Info(c, "products.reserve", map[string]any{
		"success": res.Success, "items": len(req.Items), "errors": len(res.Errors),
	})
	return c.JSON(res)
}

// POST /products/cancel-reserve
func (h *ReserveHandler) CancelReserve(c *fiber.Ctx) error {
	var req reserveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.Reservations.CancelReserve(req.Items)
	if err != nil {
		return err
	}
	applog.Info(c, "products.cancel_reserve", map[string]any{
		"success": res.Success, "items": len(req.Items), "errors": len(res.Errors),
	})
	return c.JSON(res)
}

// POST /products/confirm-reserve
func (h *ReserveHandler) ConfirmReserve(c *fiber.Ctx) error {
	var req reserveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	count := h.Reservations.ConfirmReserve(req.Items)
	applog.Info(c, "products.confirm_reserve", map[string]any{"items": count})
	return c.JSON(fiber.Map{"status": "confirmed", "items_count": count})
}
