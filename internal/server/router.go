package server

import (
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/steelman-backend/internal/handlers"
  "github.com/yungbote/steelman-backend/internal/middleware"
)

type RouterConfig struct {
  IdentityMiddleware *middleware.IdentityMiddleware
  AnalysisHandler    *handlers.AnalysisHandler
  DebateHandler      *handlers.DebateHandler
  UserHandler        *handlers.UserHandler
  BillingHandler     *handlers.BillingHandler
  UploadHandler      *handlers.UploadHandler
  AllowOrigins       string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  origins := []string{"http://localhost:3000", "http://localhost:5173"}
  if cfg.AllowOrigins != "" {
    origins = strings.Split(cfg.AllowOrigins, ",")
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(cfg.IdentityMiddleware.Attach())
  {
    // Identity is optional here: anonymous submissions analyze without history.
    api.POST("/analyze", cfg.AnalysisHandler.Analyze)
    api.GET("/me", cfg.UserHandler.GetMe)
    api.POST("/auth/login", cfg.UserHandler.SyncLogin)
    // Share-by-id: the random id is the capability, no ownership filter.
    api.GET("/debates/:id", cfg.DebateHandler.Get)
    api.POST("/billing/webhook", cfg.BillingHandler.Webhook)

    protected := api.Group("/")
    protected.Use(cfg.IdentityMiddleware.RequireIdentity())
    {
      protected.GET("/debates", cfg.DebateHandler.History)
      protected.PUT("/debates/:id", cfg.DebateHandler.Rename)
      protected.DELETE("/debates/:id", cfg.DebateHandler.Delete)
      protected.PUT("/users/me", cfg.UserHandler.UpdateProfile)
      protected.POST("/uploads", cfg.UploadHandler.Upload)
    }
  }

  return router
}
