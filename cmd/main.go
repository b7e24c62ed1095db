package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/yungbote/ripple-backend/internal/db"
  "github.com/yungbote/ripple-backend/internal/handlers"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/middleware"
  "github.com/yungbote/ripple-backend/internal/observability"
  "github.com/yungbote/ripple-backend/internal/redisbus"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/server"
  "github.com/yungbote/ripple-backend/internal/services"
  "github.com/yungbote/ripple-backend/internal/sse"
  "github.com/yungbote/ripple-backend/internal/utils"
)

func main() {
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
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "ripple-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if otelShutdown != nil {
    defer func() {
      shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(shutdownCtx)
    }()
  }

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
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  postRepo := repos.NewPostRepo(thePG, log)
  likeRepo := repos.NewLikeRepo(thePG, log)
  bookmarkRepo := repos.NewBookmarkRepo(thePG, log)
  commentRepo := repos.NewCommentRepo(thePG, log)
  notificationRepo := repos.NewNotificationRepo(thePG, log)
  pendingMatchRepo := repos.NewPendingMatchRepo(thePG, log)
  verificationRequestRepo := repos.NewVerificationRequestRepo(thePG, log)
  userBlockRepo := repos.NewUserBlockRepo(thePG, log)

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewSSEHub(log)

  bus, err := redisbus.NewSSEBus(log)
  if err != nil {
    log.Error("Could not init redis SSE bus", "error", err)
    os.Exit(1)
  }
  defer bus.Close()
  if err := bus.StartForwarder(context.Background(), func(m sse.SSEMessage) {
    sseHub.Broadcast(m)
  }); err != nil {
    log.Error("Could not start redis SSE forwarder", "error", err)
    os.Exit(1)
  }

  // Services
  log.Info("Setting up Services from main...")
  bucketService, err := services.NewBucketService(log)
  if err != nil {
    log.Error("Could not init BucketService", "error", err)
    os.Exit(1)
  }
  avatarService, err := services.NewAvatarService(thePG, log, bucketService)
  if err != nil {
    log.Error("Could not init AvatarService", "error", err)
    os.Exit(1)
  }
  notificationService := services.NewNotificationService(thePG, log, notificationRepo, userBlockRepo, bus)
  engagementService := services.NewEngagementService(thePG, log, postRepo, likeRepo, commentRepo, bus.Client())
  matchService := services.NewMatchService(thePG, log, pendingMatchRepo, postRepo, notificationService)
  authService := services.NewAuthService(thePG, log, userRepo, avatarService, matchService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo, avatarService, bus)
  postService := services.NewPostService(thePG, log, postRepo, userRepo, pendingMatchRepo, userBlockRepo, notificationService, engagementService)
  likeService := services.NewLikeService(thePG, log, postRepo, likeRepo, userBlockRepo, notificationService, engagementService)
  bookmarkService := services.NewBookmarkService(thePG, log, postRepo, bookmarkRepo)
  commentService := services.NewCommentService(thePG, log, postRepo, commentRepo, userBlockRepo, notificationService, engagementService)
  verificationService := services.NewVerificationService(thePG, log, verificationRequestRepo, userRepo, notificationService)
  blockService := services.NewBlockService(thePG, log, userRepo, userBlockRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  sseHandler := handlers.NewSSEHandler(log, sseHub, postService)
  postHandler := handlers.NewPostHandler(postService)
  likeHandler := handlers.NewLikeHandler(likeService)
  bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService)
  commentHandler := handlers.NewCommentHandler(commentService)
  notificationHandler := handlers.NewNotificationHandler(notificationService)
  matchHandler := handlers.NewMatchHandler(matchService, userService)
  verificationHandler := handlers.NewVerificationHandler(verificationService, userService)
  blockHandler := handlers.NewBlockHandler(blockService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:         authHandler,
    AuthMiddleware:      authMiddleware,
    UserHandler:         userHandler,
    PostHandler:         postHandler,
    LikeHandler:         likeHandler,
    BookmarkHandler:     bookmarkHandler,
    CommentHandler:      commentHandler,
    NotificationHandler: notificationHandler,
    MatchHandler:        matchHandler,
    VerificationHandler: verificationHandler,
    BlockHandler:        blockHandler,
    SSEHandler:          sseHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
