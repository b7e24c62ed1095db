package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ripple-backend/internal/services"
)

type LikeHandler struct {
  likeService services.LikeService
}

func NewLikeHandler(likeService services.LikeService) *LikeHandler {
  return &LikeHandler{likeService: likeService}
}

func (lh *LikeHandler) Like(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := lh.likeService.Like(c.Request.Context(), currentUserID(c), postID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"liked": true})
}

func (lh *LikeHandler) Unlike(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := lh.likeService.Unlike(c.Request.Context(), currentUserID(c), postID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"liked": false})
}
