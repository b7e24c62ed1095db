package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ripple-backend/internal/services"
)

type BlockHandler struct {
  blockService services.BlockService
}

func NewBlockHandler(blockService services.BlockService) *BlockHandler {
  return &BlockHandler{blockService: blockService}
}

func (bh *BlockHandler) Block(c *gin.Context) {
  blockedID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := bh.blockService.Block(c.Request.Context(), currentUserID(c), blockedID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"blocked": true})
}

func (bh *BlockHandler) Unblock(c *gin.Context) {
  blockedID, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := bh.blockService.Unblock(c.Request.Context(), currentUserID(c), blockedID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"blocked": false})
}

func (bh *BlockHandler) List(c *gin.Context) {
  ids, err := bh.blockService.ListBlocked(c.Request.Context(), currentUserID(c))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"blocked_ids": ids})
}
