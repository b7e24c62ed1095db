package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type CommentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) (*types.Comment, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) ([]*types.Comment, error)
  ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID, limit, offset int) ([]*types.Comment, error)
  Delete(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (int64, error)
  CountByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error)
}

type commentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
  repoLog := baseLog.With("repo", "CommentRepo")
  return &commentRepo{db: db, log: repoLog}
}

func (cr *commentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) (*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
    return nil, err
  }

  return comment, nil
}

func (cr *commentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) ([]*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Comment

  if len(commentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", commentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (cr *commentRepo) ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID, limit, offset int) ([]*types.Comment, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Comment

  if err := transaction.WithContext(ctx).
    Where("post_id = ?", postID).
    Order("created_at ASC").
    Limit(limit).
    Offset(offset).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (cr *commentRepo) Delete(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  result := transaction.WithContext(ctx).
    Where("id = ?", commentID).
    Delete(&types.Comment{})
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}

func (cr *commentRepo) CountByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Comment{}).
    Where("post_id = ?", postID).
    Count(&count).Error; err != nil {
    return 0, err
  }

  return count, nil
}
