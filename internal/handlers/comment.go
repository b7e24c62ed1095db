package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/services"
)

type CommentHandler struct {
  commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
  return &CommentHandler{commentService: commentService}
}

func (ch *CommentHandler) Create(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Body            string     `json:"body"`
    ParentCommentID *uuid.UUID `json:"parent_comment_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  comment, err := ch.commentService.CreateComment(c.Request.Context(), currentUserID(c), postID, req.ParentCommentID, req.Body)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, comment)
}

func (ch *CommentHandler) List(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  limit, offset := parsePage(c)
  comments, err := ch.commentService.ListComments(c.Request.Context(), currentUserID(c), postID, limit, offset)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"comments": comments})
}

func (ch *CommentHandler) Delete(c *gin.Context) {
  commentID, ok := parseIDParam(c, "commentId")
  if !ok {
    return
  }
  if err := ch.commentService.DeleteComment(c.Request.Context(), currentUserID(c), commentID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
