package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type NotificationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Notification, error)
  CountUnread(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  MarkRead(ctx context.Context, tx *gorm.DB, notificationID, userID uuid.UUID) (int64, error)
  MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type notificationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
  repoLog := baseLog.With("repo", "NotificationRepo")
  return &notificationRepo{db: db, log: repoLog}
}

func (nr *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  if len(notifications) == 0 {
    return []*types.Notification{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&notifications).Error; err != nil {
    return nil, err
  }

  return notifications, nil
}

func (nr *notificationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Notification, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  var results []*types.Notification

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

func (nr *notificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Notification{}).
    Where("user_id = ? AND is_read = false", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }

  return count, nil
}

// MarkRead only flips is_read from false to true, and only for the owning
// user. The rows-affected count tells the caller whether anything changed.
func (nr *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, notificationID, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Notification{}).
    Where("id = ? AND user_id = ? AND is_read = false", notificationID, userID).
    Update("is_read", true)
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}

func (nr *notificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = nr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Notification{}).
    Where("user_id = ? AND is_read = false", userID).
    Update("is_read", true)
  if result.Error != nil {
    return 0, result.Error
  }

  return result.RowsAffected, nil
}
