package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type VerificationRequestRepo interface {
  Create(ctx context.Context, tx *gorm.DB, request *types.VerificationRequest) (*types.VerificationRequest, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.VerificationRequest, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VerificationRequest, error)
  ListPending(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.VerificationRequest, error)
  Review(ctx context.Context, tx *gorm.DB, requestID, reviewerID uuid.UUID, status types.VerificationStatus) (int64, error)
}

type verificationRequestRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewVerificationRequestRepo(db *gorm.DB, baseLog *logger.Logger) VerificationRequestRepo {
  repoLog := baseLog.With("repo", "VerificationRequestRepo")
  return &verificationRequestRepo{db: db, log: repoLog}
}

func (vrr *verificationRequestRepo) Create(ctx context.Context, tx *gorm.DB, request *types.VerificationRequest) (*types.VerificationRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = vrr.db
  }

  if err := transaction.WithContext(ctx).Create(request).Error; err != nil {
    return nil, err
  }

  return request, nil
}

func (vrr *verificationRequestRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.VerificationRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = vrr.db
  }

  var results []*types.VerificationRequest

  if len(requestIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", requestIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (vrr *verificationRequestRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.VerificationRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = vrr.db
  }

  var results []*types.VerificationRequest

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

func (vrr *verificationRequestRepo) ListPending(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.VerificationRequest, error) {
  transaction := tx
  if transaction == nil {
    transaction = vrr.db
  }

  var results []*types.VerificationRequest

  if err := transaction.WithContext(ctx).
    Where("status = ?", types.VerificationPending).
    Order("created_at ASC").
    Limit(limit).
    Offset(offset).
    Find(&results).Error; err != nil {
    return nil, err
  }

  return results, nil
}

// Review transitions a pending request to the given status. A request that
// was already reviewed no longer matches, so a second review is a no-op.
func (vrr *verificationRequestRepo) Review(ctx context.Context, tx *gorm.DB, requestID, reviewerID uuid.UUID, status types.VerificationStatus) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = vrr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.VerificationRequest{}).
    Where("id = ? AND status = ?", requestID, types.VerificationPending).
    Updates(map[string]interface{}{
      "status":      status,
      "reviewed_at": gorm.Expr("NOW()"),
      "reviewed_by": reviewerID,
    })
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}
