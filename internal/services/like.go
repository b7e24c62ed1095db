package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/sse"
  "github.com/yungbote/ripple-backend/internal/types"
)

type LikeService interface {
  Like(ctx context.Context, userID, postID uuid.UUID) error
  Unlike(ctx context.Context, userID, postID uuid.UUID) error
}

type likeService struct {
  db            *gorm.DB
  log           *logger.Logger
  postRepo      repos.PostRepo
  likeRepo      repos.LikeRepo
  userBlockRepo repos.UserBlockRepo
  notifications NotificationService
  engagement    EngagementService
}

func NewLikeService(
  db *gorm.DB,
  baseLog *logger.Logger,
  postRepo repos.PostRepo,
  likeRepo repos.LikeRepo,
  userBlockRepo repos.UserBlockRepo,
  notifications NotificationService,
  engagement EngagementService,
) LikeService {
  serviceLog := baseLog.With("service", "LikeService")
  return &likeService{
    db:            db,
    log:           serviceLog,
    postRepo:      postRepo,
    likeRepo:      likeRepo,
    userBlockRepo: userBlockRepo,
    notifications: notifications,
    engagement:    engagement,
  }
}

func (ls *likeService) loadInteractable(ctx context.Context, userID, postID uuid.UUID) (*types.Post, error) {
  posts, err := ls.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 {
    return nil, ErrNotFound
  }
  post := posts[0]

  if !ResolveVisibility(post, userID) {
    return nil, ErrNotFound
  }
  if post.AuthorID != nil && *post.AuthorID != userID {
    blocked, err := ls.userBlockRepo.BlockedEitherWay(ctx, nil, userID, *post.AuthorID)
    if err != nil {
      return nil, fmt.Errorf("Failed to check block state: %w", err)
    }
    if blocked {
      return nil, ErrForbidden
    }
  }

  return post, nil
}

// Like is idempotent: liking an already-liked post is a no-op. The engagement
// recompute runs in the same transaction as the insert.
func (ls *likeService) Like(ctx context.Context, userID, postID uuid.UUID) error {
  post, err := ls.loadInteractable(ctx, userID, postID)
  if err != nil {
    return err
  }

  var notification *types.Notification

  err = ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    exists, err := ls.likeRepo.Exists(ctx, tx, postID, userID)
    if err != nil {
      return fmt.Errorf("Failed to check existing like: %w", err)
    }
    if exists {
      return nil
    }

    if _, err := ls.likeRepo.Create(ctx, tx, &types.Like{PostID: postID, UserID: userID}); err != nil {
      return fmt.Errorf("Failed to create like: %w", err)
    }

    if err := ls.engagement.Recompute(ctx, tx, postID); err != nil {
      return err
    }

    if post.AuthorID != nil {
      n, err := ls.notifications.Emit(ctx, tx, *post.AuthorID, &userID, types.NotificationTypeLike, post, map[string]any{
        "post_id": post.ID,
      })
      if err != nil {
        return err
      }
      notification = n
    }

    return nil
  })
  if err != nil {
    return err
  }

  ls.notifications.Push(ctx, notification)
  ls.notifications.PushPostEvent(ctx, post.ID, sse.SSEEventPostLiked, map[string]any{
    "post_id": post.ID,
    "user_id": userID,
  })
  return nil
}

// Unlike removes the like and recomputes the score for the same post the
// deleted row pointed at. Unliking a post that was never liked is a no-op.
func (ls *likeService) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
  if _, err := ls.loadInteractable(ctx, userID, postID); err != nil {
    return err
  }

  return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    rows, err := ls.likeRepo.Delete(ctx, tx, postID, userID)
    if err != nil {
      return fmt.Errorf("Failed to delete like: %w", err)
    }
    if rows == 0 {
      return nil
    }
    return ls.engagement.Recompute(ctx, tx, postID)
  })
}
