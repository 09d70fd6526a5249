package app

import (
	"adaptive_learning_backend/docs"
	"adaptive_learning_backend/internal/config"
	"adaptive_learning_backend/internal/middleware"
	"adaptive_learning_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需令牌）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/token", c.auth.Token)
	}

	// 2. 自适应学习接口（需协作方令牌）
	adaptive := router.Group("/api/adaptive")
	adaptive.Use(middleware.AuthMiddleware(cfg))
	{
		adaptive.POST("/profiles", c.profile.CreateProfile)
		adaptive.GET("/profiles/:userId", c.profile.GetProfile)
		adaptive.GET("/profiles/:userId/assessments", c.profile.GetAssessments)
		adaptive.POST("/profiles/:userId/recommendations", c.recommendation.Recommend)
		adaptive.POST("/profiles/:userId/outcomes", c.effectiveness.RecordOutcome)
		adaptive.GET("/effectiveness/:topic", c.effectiveness.GetTopicEffectiveness)
		adaptive.GET("/clusters", c.cluster.GetClusters)
	}
}
