package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ripple-backend/internal/services"
)

type VerificationHandler struct {
  verificationService services.VerificationService
  userService         services.UserService
}

func NewVerificationHandler(verificationService services.VerificationService, userService services.UserService) *VerificationHandler {
  return &VerificationHandler{verificationService: verificationService, userService: userService}
}

func (vh *VerificationHandler) Create(c *gin.Context) {
  var req struct {
    Note string `json:"note"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  request, err := vh.verificationService.CreateRequest(c.Request.Context(), currentUserID(c), req.Note)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, request)
}

func (vh *VerificationHandler) ListOwn(c *gin.Context) {
  requests, err := vh.verificationService.ListOwn(c.Request.Context(), currentUserID(c))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"requests": requests})
}

func (vh *VerificationHandler) ListPending(c *gin.Context) {
  reviewer, err := vh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  limit, offset := parsePage(c)
  requests, err := vh.verificationService.ListPending(c.Request.Context(), reviewer, limit, offset)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"requests": requests})
}

func (vh *VerificationHandler) Review(c *gin.Context) {
  requestID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Approve bool `json:"approve"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  reviewer, err := vh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  if err := vh.verificationService.Review(c.Request.Context(), reviewer, requestID, req.Approve); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"reviewed": true})
}
