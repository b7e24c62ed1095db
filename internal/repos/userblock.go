package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type UserBlockRepo interface {
  Create(ctx context.Context, tx *gorm.DB, block *types.UserBlock) (*types.UserBlock, error)
  Delete(ctx context.Context, tx *gorm.DB, blockerID, blockedID uuid.UUID) (int64, error)
  Exists(ctx context.Context, tx *gorm.DB, blockerID, blockedID uuid.UUID) (bool, error)
  BlockedEitherWay(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) (bool, error)
  ListBlockedIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
}

type userBlockRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserBlockRepo(db *gorm.DB, baseLog *logger.Logger) UserBlockRepo {
  repoLog := baseLog.With("repo", "UserBlockRepo")
  return &userBlockRepo{db: db, log: repoLog}
}

func (ubr *userBlockRepo) Create(ctx context.Context, tx *gorm.DB, block *types.UserBlock) (*types.UserBlock, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  if err := transaction.WithContext(ctx).Create(block).Error; err != nil {
    return nil, err
  }

  return block, nil
}

func (ubr *userBlockRepo) Delete(ctx context.Context, tx *gorm.DB, blockerID, blockedID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  result := transaction.WithContext(ctx).
    Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
    Delete(&types.UserBlock{})
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}

func (ubr *userBlockRepo) Exists(ctx context.Context, tx *gorm.DB, blockerID, blockedID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.UserBlock{}).
    Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
    Count(&count).Error; err != nil {
    return false, err
  }

  return count > 0, nil
}

// BlockedEitherWay reports whether a block exists in either direction
// between two users.
func (ubr *userBlockRepo) BlockedEitherWay(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.UserBlock{}).
    Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", userA, userB, userB, userA).
    Count(&count).Error; err != nil {
    return false, err
  }

  return count > 0, nil
}

func (ubr *userBlockRepo) ListBlockedIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  var ids []uuid.UUID
  if err := transaction.WithContext(ctx).
    Model(&types.UserBlock{}).
    Where("blocker_id = ?", userID).
    Pluck("blocked_id", &ids).Error; err != nil {
    return nil, err
  }

  return ids, nil
}
