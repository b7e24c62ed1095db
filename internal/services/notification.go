package services

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/redisbus"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/sse"
  "github.com/yungbote/ripple-backend/internal/types"
)

type NotificationService interface {
  Emit(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, actorID *uuid.UUID, notifType types.NotificationType, post *types.Post, data map[string]any) (*types.Notification, error)
  Push(ctx context.Context, notification *types.Notification)
  PushPostEvent(ctx context.Context, postID uuid.UUID, event sse.SSEEvent, data map[string]any)
  List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*types.Notification, error)
  UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
  MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
  MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
  db               *gorm.DB
  log              *logger.Logger
  notificationRepo repos.NotificationRepo
  userBlockRepo    repos.UserBlockRepo
  bus              redisbus.SSEBus
}

func NewNotificationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  notificationRepo repos.NotificationRepo,
  userBlockRepo repos.UserBlockRepo,
  bus redisbus.SSEBus,
) NotificationService {
  serviceLog := baseLog.With("service", "NotificationService")
  return &notificationService{
    db:               db,
    log:              serviceLog,
    notificationRepo: notificationRepo,
    userBlockRepo:    userBlockRepo,
    bus:              bus,
  }
}

// Emit inserts a notification row after checking the recipient is actually
// involved in the triggering post. A notification tied to a post may only
// target that post's author or recipient; anything else is refused, which
// keeps callers from fabricating notifications for unrelated users. System
// events (nil post) such as verification reviews are exempt.
//
// Emit returns (nil, nil) when the event notifies the actor about their own
// action, or when a block exists between actor and recipient.
func (ns *notificationService) Emit(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, actorID *uuid.UUID, notifType types.NotificationType, post *types.Post, data map[string]any) (*types.Notification, error) {
  transaction := tx
  if transaction == nil {
    transaction = ns.db
  }

  if post != nil {
    isAuthor := post.AuthorID != nil && *post.AuthorID == recipientID
    isRecipient := post.RecipientID != nil && *post.RecipientID == recipientID
    if !isAuthor && !isRecipient {
      return nil, ErrForbidden
    }
  }

  if actorID != nil {
    if *actorID == recipientID {
      return nil, nil
    }
    blocked, err := ns.userBlockRepo.BlockedEitherWay(ctx, transaction, *actorID, recipientID)
    if err != nil {
      return nil, fmt.Errorf("Failed to check block state: %w", err)
    }
    if blocked {
      return nil, nil
    }
  }

  notification := &types.Notification{
    UserID:  recipientID,
    ActorID: actorID,
    Type:    notifType,
  }
  if post != nil {
    notification.PostID = &post.ID
  }
  if data != nil {
    raw, err := json.Marshal(data)
    if err != nil {
      return nil, fmt.Errorf("Failed to encode notification data: %w", err)
    }
    notification.Data = datatypes.JSON(raw)
  }

  created, err := ns.notificationRepo.Create(ctx, transaction, []*types.Notification{notification})
  if err != nil {
    return nil, fmt.Errorf("Failed to create notification: %w", err)
  }

  return created[0], nil
}

// PushPostEvent publishes a live event on the post's channel for clients that
// subscribed to it. Best effort, after commit.
func (ns *notificationService) PushPostEvent(ctx context.Context, postID uuid.UUID, event sse.SSEEvent, data map[string]any) {
  if ns.bus == nil {
    return
  }
  msg := sse.SSEMessage{
    Channel: sse.PostChannel(postID),
    Event:   event,
    Data:    data,
  }
  if err := ns.bus.Publish(ctx, msg); err != nil {
    ns.log.Warn("Failed to publish post event", "error", err, "postID", postID)
  }
}

// Push publishes the notification on the SSE bus. Call it after the
// transaction that created the row has committed; delivery is best effort.
func (ns *notificationService) Push(ctx context.Context, notification *types.Notification) {
  if notification == nil || ns.bus == nil {
    return
  }
  event := sse.SSEEventNotificationCreated
  switch notification.Type {
  case types.NotificationTypeMatchFound:
    event = sse.SSEEventMatchFound
  case types.NotificationTypeVerificationComplete:
    event = sse.SSEEventVerificationReviewed
  }
  msg := sse.SSEMessage{
    Channel: sse.UserChannel(notification.UserID),
    Event:   event,
    Data:    notification,
  }
  if err := ns.bus.Publish(ctx, msg); err != nil {
    ns.log.Warn("Failed to publish notification", "error", err, "notificationID", notification.ID)
  }
}

func (ns *notificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*types.Notification, error) {
  return ns.notificationRepo.ListByUser(ctx, nil, userID, limit, offset)
}

func (ns *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
  return ns.notificationRepo.CountUnread(ctx, nil, userID)
}

func (ns *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
  rows, err := ns.notificationRepo.MarkRead(ctx, nil, notificationID, userID)
  if err != nil {
    return fmt.Errorf("Failed to mark notification read: %w", err)
  }
  if rows == 0 {
    return ErrNotFound
  }
  return nil
}

func (ns *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
  return ns.notificationRepo.MarkAllRead(ctx, nil, userID)
}
