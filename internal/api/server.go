package api

import "github.com/RoyceAzure/lab/kitchen/internal/api/handler"

type Server struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	PromoHandler   *handler.PromoHandler
	HealthHandler  *handler.HealthHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	promoHandler *handler.PromoHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	return &Server{
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		CatalogHandler: catalogHandler,
		CartHandler:    cartHandler,
		OrderHandler:   orderHandler,
		PromoHandler:   promoHandler,
		HealthHandler:  healthHandler,
	}
}
