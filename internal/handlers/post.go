package handlers

import (
  "net/http"
  "strconv"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/ripple-backend/internal/services"
  "github.com/yungbote/ripple-backend/internal/types"
)

type PostHandler struct {
  postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
  return &PostHandler{postService: postService}
}

// PostView is the wire shape of a post. Anonymity is applied here: a
// first_name_only story drops the author's id for everyone but the author.
type PostView struct {
  ID                          uuid.UUID           `json:"id"`
  AuthorID                    *uuid.UUID          `json:"author_id,omitempty"`
  AuthorFirstName             string              `json:"author_first_name"`
  RecipientID                 *uuid.UUID          `json:"recipient_id,omitempty"`
  RecipientName               string              `json:"recipient_name"`
  Body                        string              `json:"body"`
  PrivacyLevel                types.PrivacyLevel  `json:"privacy_level"`
  RecipientVisibilityOverride *types.PrivacyLevel `json:"recipient_visibility_override,omitempty"`
  Anonymity                   types.Anonymity     `json:"anonymity"`
  LikeCount                   int                 `json:"like_count"`
  CommentCount                int                 `json:"comment_count"`
  EngagementScore             float64             `json:"engagement_score"`
  CreatedAt                   time.Time           `json:"created_at"`
}

func viewPost(p *types.Post, viewerID uuid.UUID) PostView {
  v := PostView{
    ID:                          p.ID,
    AuthorID:                    p.AuthorID,
    AuthorFirstName:             p.AuthorFirstName,
    RecipientID:                 p.RecipientID,
    RecipientName:               p.RecipientName,
    Body:                        p.Body,
    PrivacyLevel:                p.PrivacyLevel,
    RecipientVisibilityOverride: p.RecipientVisibilityOverride,
    Anonymity:                   p.Anonymity,
    LikeCount:                   p.LikeCount,
    CommentCount:                p.CommentCount,
    EngagementScore:             p.EngagementScore,
    CreatedAt:                   p.CreatedAt,
  }
  if p.Anonymity == types.AnonymityFirstNameOnly {
    if p.AuthorID == nil || *p.AuthorID != viewerID {
      v.AuthorID = nil
    }
  }
  return v
}

func viewPosts(posts []*types.Post, viewerID uuid.UUID) []PostView {
  views := make([]PostView, 0, len(posts))
  for _, p := range posts {
    views = append(views, viewPost(p, viewerID))
  }
  return views
}

func parsePage(c *gin.Context) (int, int) {
  limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
  if err != nil || limit <= 0 {
    limit = 20
  }
  if limit > 100 {
    limit = 100
  }
  offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
  if err != nil || offset < 0 {
    offset = 0
  }
  return limit, offset
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
    return uuid.Nil, false
  }
  return id, true
}

func (ph *PostHandler) Create(c *gin.Context) {
  var req struct {
    Body           string `json:"body"`
    PrivacyLevel   string `json:"privacy_level"`
    Anonymity      string `json:"anonymity"`
    RecipientName  string `json:"recipient_name"`
    RecipientEmail string `json:"recipient_email"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID := currentUserID(c)
  post, err := ph.postService.CreatePost(c.Request.Context(), userID, services.CreatePostInput{
    Body:           req.Body,
    PrivacyLevel:   types.PrivacyLevel(req.PrivacyLevel),
    Anonymity:      types.Anonymity(req.Anonymity),
    RecipientName:  req.RecipientName,
    RecipientEmail: req.RecipientEmail,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, viewPost(post, userID))
}

func (ph *PostHandler) Get(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  viewerID := currentUserID(c)
  post, err := ph.postService.GetPost(c.Request.Context(), viewerID, postID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, viewPost(post, viewerID))
}

func (ph *PostHandler) Feed(c *gin.Context) {
  limit, offset := parsePage(c)
  viewerID := currentUserID(c)
  posts, err := ph.postService.Feed(c.Request.Context(), viewerID, limit, offset)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"posts": viewPosts(posts, viewerID)})
}

func (ph *PostHandler) Top(c *gin.Context) {
  viewerID := currentUserID(c)
  posts, err := ph.postService.TopStories(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"posts": viewPosts(posts, viewerID)})
}

func (ph *PostHandler) Update(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Body         *string `json:"body"`
    PrivacyLevel *string `json:"privacy_level"`
    Anonymity    *string `json:"anonymity"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  input := services.UpdatePostInput{Body: req.Body}
  if req.PrivacyLevel != nil {
    level := types.PrivacyLevel(*req.PrivacyLevel)
    input.PrivacyLevel = &level
  }
  if req.Anonymity != nil {
    anonymity := types.Anonymity(*req.Anonymity)
    input.Anonymity = &anonymity
  }
  userID := currentUserID(c)
  post, err := ph.postService.UpdatePost(c.Request.Context(), userID, postID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, viewPost(post, userID))
}

func (ph *PostHandler) SetRecipientOverride(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Level *string `json:"level"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  var level *types.PrivacyLevel
  if req.Level != nil {
    l := types.PrivacyLevel(*req.Level)
    level = &l
  }
  userID := currentUserID(c)
  post, err := ph.postService.SetRecipientOverride(c.Request.Context(), userID, postID, level)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, viewPost(post, userID))
}

func (ph *PostHandler) Delete(c *gin.Context) {
  postID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := ph.postService.DeletePost(c.Request.Context(), currentUserID(c), postID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
