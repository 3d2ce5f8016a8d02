package main

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"prodcat/internal/config"
	"prodcat/internal/http/handlers"
	"prodcat/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: !cfg.CORSWildcard(),
	}))

	deps := handlers.NewDeps(db, cfg)
	admin := handlers.RequireAdmin()

	// ---------- Public catalog API ----------
	api := app.Group("/api/v1")

	api.Post("/categories", admin, deps.CategoryHandler.Create)
	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/by-title/:title", deps.CategoryHandler.GetByTitle)
	api.Get("/categories/:id", deps.CategoryHandler.Get)
	api.Patch("/categories/:id", admin, deps.CategoryHandler.Update)
	api.Delete("/categories/:id", admin, deps.CategoryHandler.Delete)
	api.Get("/categories/:id/products", deps.ProductHandler.ListByCategory)
	api.Get("/categories/:id/attributes", deps.AttributeHandler.ListByCategory)

	api.Post("/products", admin, deps.ProductHandler.Create)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/by-title/:title", deps.ProductHandler.GetByTitle)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Patch("/products/:id", admin, deps.ProductHandler.Update)
	api.Delete("/products/:id", admin, deps.ProductHandler.Delete)

	api.Post("/attributes", admin, deps.AttributeHandler.Create)
	api.Get("/attributes", deps.AttributeHandler.List)
	api.Get("/attributes/:id", deps.AttributeHandler.Get)
	api.Patch("/attributes/:id", admin, deps.AttributeHandler.Update)
	api.Delete("/attributes/:id", admin, deps.AttributeHandler.Delete)

	// ---------- Reservation protocol (order workflow) ----------
	app.Post("/products/reserve", deps.ReserveHandler.Reserve)
	app.Post("/products/cancel-reserve", deps.ReserveHandler.CancelReserve)
	app.Post("/products/confirm-reserve", deps.ReserveHandler.ConfirmReserve)
	app.Get("/products/:id", deps.ProductHandler.Detail)

	// ---------- Admin dashboard ----------
	app.Get("/admin", admin, deps.AdminHandler.Dashboard)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "not found", "error_type": "not_found",
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
