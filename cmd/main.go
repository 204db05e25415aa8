package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/utils"
  "github.com/yungbote/steelman-backend/internal/db"
  "github.com/yungbote/steelman-backend/internal/repos"
  "github.com/yungbote/steelman-backend/internal/services"
  "github.com/yungbote/steelman-backend/internal/handlers"
  "github.com/yungbote/steelman-backend/internal/middleware"
  "github.com/yungbote/steelman-backend/internal/server"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  webhookSecret := utils.GetEnv("BILLING_WEBHOOK_SECRET", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  debateRepo := repos.NewDebateRepo(thePG, log)
  callLogRepo := repos.NewCompletionCallLogRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  completionClient, err := services.NewCompletionClient(log)
  if err != nil {
    log.Error("Could not init CompletionClient", "error", err)
    os.Exit(1)
  }
  completionGateway := services.NewCompletionGateway(log, completionClient)
  identityService := services.NewIdentityService(thePG, log, userRepo)
  shareCache, err := services.NewRedisShareCache(log)
  if err != nil {
    log.Warn("Share cache disabled", "error", err)
    shareCache = nil
  }
  bucketService, err := services.NewBucketService(log)
  if err != nil {
    log.Warn("Could not init BucketService, uploads disabled", "error", err)
    bucketService = nil
  }
  analysisService := services.NewAnalysisService(thePG, log, completionGateway, identityService, debateRepo, callLogRepo)
  debateService := services.NewDebateService(thePG, log, debateRepo, identityService, shareCache)

  // Handlers
  log.Info("Setting up handlers from main...")
  analysisHandler := handlers.NewAnalysisHandler(analysisService)
  debateHandler := handlers.NewDebateHandler(debateService)
  userHandler := handlers.NewUserHandler(identityService)
  billingHandler := handlers.NewBillingHandler(identityService, webhookSecret)
  uploadHandler := handlers.NewUploadHandler(log, bucketService)

  // Middleware
  log.Info("Setting up middleware from main...")
  identityMiddleware := middleware.NewIdentityMiddleware(log)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    IdentityMiddleware: identityMiddleware,
    AnalysisHandler:    analysisHandler,
    DebateHandler:      debateHandler,
    UserHandler:        userHandler,
    BillingHandler:     billingHandler,
    UploadHandler:      uploadHandler,
    AllowOrigins:       utils.GetEnv("CORS_ALLOW_ORIGINS", "", log),
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
