package router

import (
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/http/handlers"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, handlers and the route table.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	authRequired := JWTAuthMiddleware(c.AuthService)
	adminOnly := RequireRoles(constants.RoleAdmin)
	anyRole := RequireRoles(constants.RoleUser, constants.RoleAdmin)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)

			users := auth.Group("/users", authRequired)
			{
				users.GET("", adminOnly, h.ListUsers)
				users.GET("/:id", anyRole, h.GetUser)
				users.PUT("/:id", anyRole, h.UpdateUser)
				users.DELETE("/:id", adminOnly, h.DeleteUser)
			}
		}

		category := api.Group("/category")
		{
			category.GET("", h.ListCategories)
			category.GET("/:id", h.GetCategory)
			category.POST("", authRequired, adminOnly, h.CreateCategory)
			category.PUT("/:id", authRequired, adminOnly, h.UpdateCategory)
		}

		product := api.Group("/product", authRequired)
		{
			product.GET("", anyRole, h.ListProducts)
			product.GET("/:id", anyRole, h.GetProduct)
			product.POST("", adminOnly, h.CreateProduct)
			product.PUT("/:id", adminOnly, h.ReplaceProduct)
			product.PATCH("/:id", adminOnly, h.PatchProduct)
		}

		cart := api.Group("/cart", authRequired, anyRole)
		{
			cart.GET("/:userId", h.GetCart)
			cart.POST("", h.AddCartItem)
			cart.PUT("", h.UpdateCartItem)
			cart.DELETE("", h.RemoveCartItem)
		}

		order := api.Group("/order", authRequired)
		{
			order.GET("", anyRole, h.ListOrders)
			order.POST("", anyRole, h.CreateOrder)
			order.GET("/:id", anyRole, h.GetOrder)
			order.PUT("/:id", adminOnly, h.UpdateOrder)
			order.DELETE("/:id", adminOnly, h.DeleteOrder)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
