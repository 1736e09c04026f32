package router

import (
	"myCatalogStore/internal/middleware"
	"myCatalogStore/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout, authRequired)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("", handler.Register)
	users.GET("", handler.GetAllUsers, authRequired)
	users.GET("/:id", handler.GetUserByID, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, middleware.SelfOnly())
	users.DELETE("/:id", handler.DeleteUser, authRequired, middleware.SelfOnly())
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired)
	products.PUT("/:id", handler.UpdateProduct, authRequired)
	products.DELETE("/:id", handler.DeleteProduct, authRequired)

	api.GET("/standard_specifications/:product_type", handler.GetStandardSpecifications)
}

func SetupPricingRoutes(api *echo.Group, handler *rest.PricingHandler, authRequired echo.MiddlewareFunc) {
	pricing := api.Group("/pricing")

	pricing.GET("", handler.GetAllPricing)
	pricing.GET("/:product_id", handler.GetPricing)
	pricing.POST("", handler.UpsertPricing, authRequired)
	pricing.DELETE("/:product_id", handler.DeletePricing, authRequired)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("", ordersHandler.GetAllOrders)
	orders.GET("/:id", ordersHandler.GetOrder)
	orders.PUT("/:id", ordersHandler.UpdateOrder)
	orders.DELETE("/:id", ordersHandler.DeleteOrder)
}
