package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type LikeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, error)
  Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (int64, error)
  Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error)
  CountByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error)
}

type likeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo {
  repoLog := baseLog.With("repo", "LikeRepo")
  return &likeRepo{db: db, log: repoLog}
}

func (lr *likeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.Like) (*types.Like, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if err := transaction.WithContext(ctx).Create(like).Error; err != nil {
    return nil, err
  }

  return like, nil
}

func (lr *likeRepo) Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  result := transaction.WithContext(ctx).
    Where("post_id = ? AND user_id = ?", postID, userID).
    Delete(&types.Like{})
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}

func (lr *likeRepo) Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Like{}).
    Where("post_id = ? AND user_id = ?", postID, userID).
    Count(&count).Error; err != nil {
    return false, err
  }

  return count > 0, nil
}

func (lr *likeRepo) CountByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Like{}).
    Where("post_id = ?", postID).
    Count(&count).Error; err != nil {
    return 0, err
  }

  return count, nil
}
