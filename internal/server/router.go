package server

import (
  "os"
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/yungbote/ripple-backend/internal/handlers"
  "github.com/yungbote/ripple-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  UserHandler         *handlers.UserHandler
  PostHandler         *handlers.PostHandler
  LikeHandler         *handlers.LikeHandler
  BookmarkHandler     *handlers.BookmarkHandler
  CommentHandler      *handlers.CommentHandler
  NotificationHandler *handlers.NotificationHandler
  MatchHandler        *handlers.MatchHandler
  VerificationHandler *handlers.VerificationHandler
  BlockHandler        *handlers.BlockHandler
  SSEHandler          *handlers.SSEHandler
}

func allowedOrigins() []string {
  raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS"))
  if raw == "" {
    return []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    }
  }
  parts := strings.Split(raw, ",")
  origins := make([]string, 0, len(parts))
  for _, p := range parts {
    p = strings.TrimSpace(p)
    if p != "" {
      origins = append(origins, p)
    }
  }
  return origins
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("ripple-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowedOrigins(),
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
  }
  // Anonymous readers get public posts; a token upgrades the view.
  public := router.Group("/api")
  public.Use(cfg.AuthMiddleware.OptionalAuth())
  public.GET("/posts/top", cfg.PostHandler.Top)
  public.GET("/posts/:id", cfg.PostHandler.Get)
  public.GET("/posts/:id/comments", cfg.CommentHandler.List)

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // SSE
  protected.GET("/sse/stream", cfg.SSEHandler.Stream)
  protected.POST("/sse/subscribe", cfg.SSEHandler.Subscribe)
  protected.POST("/sse/unsubscribe", cfg.SSEHandler.Unsubscribe)
  // User
  protected.GET("/me", cfg.UserHandler.GetMe)
  protected.PATCH("/me", cfg.UserHandler.UpdateMe)
  protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)
  // Posts
  protected.POST("/posts", cfg.PostHandler.Create)
  protected.GET("/posts", cfg.PostHandler.Feed)
  protected.PATCH("/posts/:id", cfg.PostHandler.Update)
  protected.PUT("/posts/:id/override", cfg.PostHandler.SetRecipientOverride)
  protected.DELETE("/posts/:id", cfg.PostHandler.Delete)
  // Likes
  protected.PUT("/posts/:id/like", cfg.LikeHandler.Like)
  protected.DELETE("/posts/:id/like", cfg.LikeHandler.Unlike)
  // Bookmarks
  protected.PUT("/posts/:id/bookmark", cfg.BookmarkHandler.Bookmark)
  protected.DELETE("/posts/:id/bookmark", cfg.BookmarkHandler.Unbookmark)
  protected.GET("/bookmarks", cfg.BookmarkHandler.List)
  // Comments
  protected.POST("/posts/:id/comments", cfg.CommentHandler.Create)
  protected.DELETE("/comments/:commentId", cfg.CommentHandler.Delete)
  // Notifications
  protected.GET("/notifications", cfg.NotificationHandler.List)
  protected.GET("/notifications/unread-count", cfg.NotificationHandler.UnreadCount)
  protected.POST("/notifications/read", cfg.NotificationHandler.MarkRead)
  // Matches
  protected.GET("/matches/pending", cfg.MatchHandler.ListPending)
  protected.POST("/matches/:id/claim", cfg.MatchHandler.Claim)
  // Verification
  protected.POST("/verification-requests", cfg.VerificationHandler.Create)
  protected.GET("/verification-requests", cfg.VerificationHandler.ListOwn)
  protected.GET("/verification-requests/pending", cfg.VerificationHandler.ListPending)
  protected.POST("/verification-requests/:id/review", cfg.VerificationHandler.Review)
  // Blocks
  protected.PUT("/users/:id/block", cfg.BlockHandler.Block)
  protected.DELETE("/users/:id/block", cfg.BlockHandler.Unblock)
  protected.GET("/blocks", cfg.BlockHandler.List)

  return router
}
