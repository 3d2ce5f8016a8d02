package handlers

import (
	"prodcat/internal/config"
	"prodcat/internal/repos"
	"prodcat/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	AttributeHandler *AttributeHandler
	ReserveHandler   *ReserveHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	attrRepo := repos.NewAttributeRepo(db)

	cartClient := services.NewCartWebhookClient(cfg.CartServiceURL)
	attrValidator := services.NewAttributeValidator(attrRepo)

	catSvc := services.NewCategoryService(catRepo)
	attrSvc := services.NewAttributeService(attrRepo)
	prodSvc := services.NewProductService(catRepo, prodRepo, attrValidator, cartClient)
	resSvc := services.NewReservationService(prodRepo, cartClient)

	return &Deps{
		CategoryHandler:  &CategoryHandler{Categories: catSvc},
		ProductHandler:   &ProductHandler{Products: prodSvc, Cfg: cfg},
		AttributeHandler: &AttributeHandler{Attributes: attrSvc},
		ReserveHandler:   &ReserveHandler{Reservations: resSvc},
		AdminHandler:     &AdminHandler{Cats: catRepo, Prods: prodRepo, Attrs: attrRepo},
	}
}
