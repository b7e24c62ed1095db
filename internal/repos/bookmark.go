package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type BookmarkRepo interface {
  Create(ctx context.Context, tx *gorm.DB, bookmark *types.Bookmark) (*types.Bookmark, error)
  Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (int64, error)
  Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Bookmark, error)
}

type bookmarkRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBookmarkRepo(db *gorm.DB, baseLog *logger.Logger) BookmarkRepo {
  repoLog := baseLog.With("repo", "BookmarkRepo")
  return &bookmarkRepo{db: db, log: repoLog}
}

func (br *bookmarkRepo) Create(ctx context.Context, tx *gorm.DB, bookmark *types.Bookmark) (*types.Bookmark, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if err := transaction.WithContext(ctx).Create(bookmark).Error; err != nil {
    return nil, err
  }

  return bookmark, nil
}

func (br *bookmarkRepo) Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  result := transaction.WithContext(ctx).
    Where("post_id = ? AND user_id = ?", postID, userID).
    Delete(&types.Bookmark{})
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}

func (br *bookmarkRepo) Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Bookmark{}).
    Where("post_id = ? AND user_id = ?", postID, userID).
    Count(&count).Error; err != nil {
    return false, err
  }

  return count > 0, nil
}

func (br *bookmarkRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Bookmark, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Bookmark

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Limit(limit).
    Offset(offset).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}
