package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type PendingMatchRepo interface {
  Create(ctx context.Context, tx *gorm.DB, match *types.PendingRecipientMatch) (*types.PendingRecipientMatch, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, matchIDs []uuid.UUID) ([]*types.PendingRecipientMatch, error)
  ListUnmatchedByNameOrEmail(ctx context.Context, tx *gorm.DB, foldedName, email string) ([]*types.PendingRecipientMatch, error)
  Claim(ctx context.Context, tx *gorm.DB, matchID, userID uuid.UUID) (int64, error)
  ListByPostIDs(ctx context.Context, tx *gorm.DB, postIDs []uuid.UUID) ([]*types.PendingRecipientMatch, error)
}

type pendingMatchRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPendingMatchRepo(db *gorm.DB, baseLog *logger.Logger) PendingMatchRepo {
  repoLog := baseLog.With("repo", "PendingMatchRepo")
  return &pendingMatchRepo{db: db, log: repoLog}
}

func (pmr *pendingMatchRepo) Create(ctx context.Context, tx *gorm.DB, match *types.PendingRecipientMatch) (*types.PendingRecipientMatch, error) {
  transaction := tx
  if transaction == nil {
    transaction = pmr.db
  }

  if err := transaction.WithContext(ctx).Create(match).Error; err != nil {
    return nil, err
  }

  return match, nil
}

func (pmr *pendingMatchRepo) GetByIDs(ctx context.Context, tx *gorm.DB, matchIDs []uuid.UUID) ([]*types.PendingRecipientMatch, error) {
  transaction := tx
  if transaction == nil {
    transaction = pmr.db
  }

  var results []*types.PendingRecipientMatch

  if len(matchIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", matchIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

// ListUnmatchedByNameOrEmail matches case-insensitively; foldedName is
// expected to already be normalized by the caller.
func (pmr *pendingMatchRepo) ListUnmatchedByNameOrEmail(ctx context.Context, tx *gorm.DB, foldedName, email string) ([]*types.PendingRecipientMatch, error) {
  transaction := tx
  if transaction == nil {
    transaction = pmr.db
  }

  var results []*types.PendingRecipientMatch

  if err := transaction.WithContext(ctx).
    Where("matched = false").
    Where("LOWER(recipient_name) = ? OR LOWER(recipient_email) = LOWER(?)", foldedName, email).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

// Claim sets matched and matched_user_id with a conditional update. Once a
// row is claimed only the same user matches the predicate again, so a
// competing claim returns zero rows affected instead of overwriting.
func (pmr *pendingMatchRepo) Claim(ctx context.Context, tx *gorm.DB, matchID, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pmr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.PendingRecipientMatch{}).
    Where("id = ? AND (matched = false OR matched_user_id = ?)", matchID, userID).
    Updates(map[string]interface{}{
      "matched":         true,
      "matched_user_id": userID,
    })
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}

func (pmr *pendingMatchRepo) ListByPostIDs(ctx context.Context, tx *gorm.DB, postIDs []uuid.UUID) ([]*types.PendingRecipientMatch, error) {
  transaction := tx
  if transaction == nil {
    transaction = pmr.db
  }

  var results []*types.PendingRecipientMatch

  if len(postIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("post_id IN ?", postIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}
