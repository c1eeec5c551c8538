package auth

import (
	"github.com/gin-gonic/gin"

	"wisata/internal/shared/config"
	"wisata/internal/shared/middleware"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{controller: controller, config: cfg}
}

func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.JWTAuthWithConfig(authRouter.config))
		{
			protected.PUT("/change-password", authRouter.controller.ChangePassword)
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
