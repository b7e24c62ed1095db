package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ripple-backend/internal/services"
)

type MatchHandler struct {
  matchService services.MatchService
  userService  services.UserService
}

func NewMatchHandler(matchService services.MatchService, userService services.UserService) *MatchHandler {
  return &MatchHandler{matchService: matchService, userService: userService}
}

func (mh *MatchHandler) ListPending(c *gin.Context) {
  user, err := mh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  matches, err := mh.matchService.ListPendingFor(c.Request.Context(), user)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"matches": matches})
}

func (mh *MatchHandler) Claim(c *gin.Context) {
  matchID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  user, err := mh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  match, err := mh.matchService.Claim(c.Request.Context(), user, matchID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, match)
}
