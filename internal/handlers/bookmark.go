package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ripple-backend/internal/services"
)

type BookmarkHandler struct {
  bookmarkService services.BookmarkService
}

func NewBookmarkHandler(bookmarkService services.BookmarkService) *BookmarkHandler {
  return &BookmarkHandler{bookmarkService: bookmarkService}
}

func (bh *BookmarkHandler) Bookmark(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := bh.bookmarkService.Bookmark(c.Request.Context(), currentUserID(c), postID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"bookmarked": true})
}

func (bh *BookmarkHandler) Unbookmark(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := bh.bookmarkService.Unbookmark(c.Request.Context(), currentUserID(c), postID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"bookmarked": false})
}

func (bh *BookmarkHandler) List(c *gin.Context) {
  limit, offset := parsePage(c)
  userID := currentUserID(c)
  posts, err := bh.bookmarkService.ListBookmarkedPosts(c.Request.Context(), userID, limit, offset)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"posts": viewPosts(posts, userID)})
}
