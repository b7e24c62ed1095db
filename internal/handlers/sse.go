package handlers

import (
  "net/http"
  "sync"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/requestdata"
  "github.com/yungbote/ripple-backend/internal/services"
  "github.com/yungbote/ripple-backend/internal/sse"
)

type SSEHandler struct {
  log         *logger.Logger
  hub         *sse.SSEHub
  postService services.PostService

  mu      sync.RWMutex
  clients map[uuid.UUID]*sse.SSEClient // key: UserID
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub, postService services.PostService) *SSEHandler {
  return &SSEHandler{
    log:         log.With("handler", "SSEHandler"),
    hub:         hub,
    postService: postService,
    clients:     make(map[uuid.UUID]*sse.SSEClient),
  }
}

// Stream opens the event stream and subscribes the connection to the
// caller's own channel; notifications land there. A second stream from the
// same user replaces the first.
func (sh *SSEHandler) Stream(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
    return
  }
  userID := rd.UserID
  sh.log.Info("SSE stream open", "user_id", userID.String())

  sh.mu.Lock()
  if existing, ok := sh.clients[userID]; ok {
    sh.hub.CloseClient(existing)
    delete(sh.clients, userID)
  }
  client := sh.hub.NewSSEClient(userID)
  sh.clients[userID] = client
  sh.mu.Unlock()

  sh.hub.AddChannel(client, sse.UserChannel(userID))

  sh.hub.ServeHTTP(c.Writer, c.Request, client)

  sh.mu.Lock()
  delete(sh.clients, userID)
  sh.mu.Unlock()
  sh.hub.CloseClient(client)
}

// Subscribe adds a post channel to the caller's open stream. Only channels
// for posts the caller can see are accepted, so a private post's live
// events never reach a stranger.
func (sh *SSEHandler) Subscribe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
    return
  }

  var req struct {
    Channel string `json:"channel"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
    return
  }

  postID, ok := sse.ParsePostChannel(req.Channel)
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
    return
  }
  if _, err := sh.postService.GetPost(c.Request.Context(), rd.UserID, postID); err != nil {
    RespondServiceError(c, err)
    return
  }

  sh.mu.RLock()
  client, exists := sh.clients[rd.UserID]
  sh.mu.RUnlock()
  if !exists {
    c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection"})
    return
  }

  sh.hub.AddChannel(client, req.Channel)
  c.JSON(http.StatusOK, gin.H{"message": "subscribed", "channel": req.Channel})
}

func (sh *SSEHandler) Unsubscribe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
    return
  }

  var req struct {
    Channel string `json:"channel"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
    return
  }
  if _, ok := sse.ParsePostChannel(req.Channel); !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
    return
  }

  sh.mu.RLock()
  client, exists := sh.clients[rd.UserID]
  sh.mu.RUnlock()
  if !exists {
    c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection"})
    return
  }

  sh.hub.RemoveChannel(client, req.Channel)
  c.JSON(http.StatusOK, gin.H{"message": "unsubscribed", "channel": req.Channel})
}
