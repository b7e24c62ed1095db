package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/services"
)

type NotificationHandler struct {
  notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
  return &NotificationHandler{notificationService: notificationService}
}

func (nh *NotificationHandler) List(c *gin.Context) {
  limit, offset := parsePage(c)
  notifications, err := nh.notificationService.List(c.Request.Context(), currentUserID(c), limit, offset)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"notifications": notifications})
}

func (nh *NotificationHandler) UnreadCount(c *gin.Context) {
  count, err := nh.notificationService.UnreadCount(c.Request.Context(), currentUserID(c))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"unread_count": count})
}

func (nh *NotificationHandler) MarkRead(c *gin.Context) {
  var req struct {
    NotificationID *uuid.UUID `json:"notification_id"`
    All            bool       `json:"all"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := currentUserID(c)
  if req.All {
    count, err := nh.notificationService.MarkAllRead(c.Request.Context(), userID)
    if err != nil {
      RespondServiceError(c, err)
      return
    }
    RespondOK(c, gin.H{"marked": count})
    return
  }
  if req.NotificationID == nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "notification_id or all required"})
    return
  }
  if err := nh.notificationService.MarkRead(c.Request.Context(), userID, *req.NotificationID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"marked": 1})
}
