package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/types"
)

type BlockService interface {
  Block(ctx context.Context, blockerID, blockedID uuid.UUID) error
  Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error
  ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]uuid.UUID, error)
}

type blockService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userBlockRepo repos.UserBlockRepo
}

func NewBlockService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  userBlockRepo repos.UserBlockRepo,
) BlockService {
  serviceLog := baseLog.With("service", "BlockService")
  return &blockService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userBlockRepo: userBlockRepo,
  }
}

func (bs *blockService) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
  if blockerID == blockedID {
    return fmt.Errorf("%w: cannot block yourself", ErrInvalidInput)
  }

  users, err := bs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{blockedID})
  if err != nil {
    return fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return ErrNotFound
  }

  exists, err := bs.userBlockRepo.Exists(ctx, nil, blockerID, blockedID)
  if err != nil {
    return fmt.Errorf("Failed to check existing block: %w", err)
  }
  if exists {
    return nil
  }

  if _, err := bs.userBlockRepo.Create(ctx, nil, &types.UserBlock{
    BlockerID: blockerID,
    BlockedID: blockedID,
  }); err != nil {
    return fmt.Errorf("Failed to create block: %w", err)
  }
  return nil
}

func (bs *blockService) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
  if _, err := bs.userBlockRepo.Delete(ctx, nil, blockerID, blockedID); err != nil {
    return fmt.Errorf("Failed to delete block: %w", err)
  }
  return nil
}

func (bs *blockService) ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]uuid.UUID, error) {
  return bs.userBlockRepo.ListBlockedIDs(ctx, nil, blockerID)
}
