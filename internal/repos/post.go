package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

// visibleClause is the canonical feed predicate, mirroring
// services.ResolveVisibility. A recipient override replaces the author's
// privacy level; under an override, 'private' admits author or recipient.
const visibleClause = `
  (
    (post.recipient_visibility_override IS NULL AND (
      post.privacy_level = 'public'
      OR (post.privacy_level = 'private' AND post.author_id = @viewer)
      OR (post.privacy_level = 'recipient_only' AND (post.author_id = @viewer OR post.recipient_id = @viewer))
    ))
    OR
    (post.recipient_visibility_override IS NOT NULL AND (
      post.recipient_visibility_override = 'public'
      OR (post.recipient_visibility_override IN ('private', 'recipient_only') AND (post.author_id = @viewer OR post.recipient_id = @viewer))
    ))
  )`

type PostRepo interface {
  Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, postIDs []uuid.UUID) ([]*types.Post, error)
  ListVisible(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, limit, offset int) ([]*types.Post, error)
  ListByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit, offset int) ([]*types.Post, error)
  ListPublicTop(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Post, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, postID uuid.UUID, fields map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
}

type postRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
  repoLog := baseLog.With("repo", "PostRepo")
  return &postRepo{db: db, log: repoLog}
}

func (pr *postRepo) Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(posts) == 0 {
    return []*types.Post{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&posts).Error; err != nil {
    return nil, err
  }

  return posts, nil
}

func (pr *postRepo) GetByIDs(ctx context.Context, tx *gorm.DB, postIDs []uuid.UUID) ([]*types.Post, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Post

  if len(postIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", postIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *postRepo) ListVisible(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, limit, offset int) ([]*types.Post, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Post

  if err := transaction.WithContext(ctx).
    Where(visibleClause, map[string]interface{}{"viewer": viewerID}).
    Where(`post.author_id IS NULL OR post.author_id NOT IN (
      SELECT blocked_id FROM user_block WHERE blocker_id = @viewer
      UNION
      SELECT blocker_id FROM user_block WHERE blocked_id = @viewer
    )`, map[string]interface{}{"viewer": viewerID}).
    Order("created_at DESC").
    Limit(limit).
    Offset(offset).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *postRepo) ListByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit, offset int) ([]*types.Post, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Post

  if err := transaction.WithContext(ctx).
    Where("author_id = ?", authorID).
    Order("created_at DESC").
    Limit(limit).
    Offset(offset).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *postRepo) ListPublicTop(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Post, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Post

  if err := transaction.WithContext(ctx).
    Where(`(post.recipient_visibility_override IS NULL AND post.privacy_level = 'public')
      OR post.recipient_visibility_override = 'public'`).
    Order("engagement_score DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (pr *postRepo) UpdateFields(ctx context.Context, tx *gorm.DB, postID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Post{}).
    Where("id = ?", postID).
    Updates(fields).Error; err != nil {
    return err
  }

  return nil
}

func (pr *postRepo) Delete(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ?", postID).
    Delete(&types.Post{}).Error; err != nil {
    return err
  }

  return nil
}
