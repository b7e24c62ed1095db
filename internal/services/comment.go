package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/sse"
  "github.com/yungbote/ripple-backend/internal/types"
)

type CommentService interface {
  CreateComment(ctx context.Context, userID, postID uuid.UUID, parentCommentID *uuid.UUID, body string) (*types.Comment, error)
  ListComments(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]*types.Comment, error)
  DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}

type commentService struct {
  db            *gorm.DB
  log           *logger.Logger
  postRepo      repos.PostRepo
  commentRepo   repos.CommentRepo
  userBlockRepo repos.UserBlockRepo
  notifications NotificationService
  engagement    EngagementService
}

func NewCommentService(
  db *gorm.DB,
  baseLog *logger.Logger,
  postRepo repos.PostRepo,
  commentRepo repos.CommentRepo,
  userBlockRepo repos.UserBlockRepo,
  notifications NotificationService,
  engagement EngagementService,
) CommentService {
  serviceLog := baseLog.With("service", "CommentService")
  return &commentService{
    db:            db,
    log:           serviceLog,
    postRepo:      postRepo,
    commentRepo:   commentRepo,
    userBlockRepo: userBlockRepo,
    notifications: notifications,
    engagement:    engagement,
  }
}

func (cs *commentService) loadInteractable(ctx context.Context, userID, postID uuid.UUID) (*types.Post, error) {
  posts, err := cs.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
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
    blocked, err := cs.userBlockRepo.BlockedEitherWay(ctx, nil, userID, *post.AuthorID)
    if err != nil {
      return nil, fmt.Errorf("Failed to check block state: %w", err)
    }
    if blocked {
      return nil, ErrForbidden
    }
  }

  return post, nil
}

func (cs *commentService) CreateComment(ctx context.Context, userID, postID uuid.UUID, parentCommentID *uuid.UUID, body string) (*types.Comment, error) {
  body = strings.TrimSpace(body)
  if body == "" {
    return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
  }

  post, err := cs.loadInteractable(ctx, userID, postID)
  if err != nil {
    return nil, err
  }

  if parentCommentID != nil {
    parents, err := cs.commentRepo.GetByIDs(ctx, nil, []uuid.UUID{*parentCommentID})
    if err != nil {
      return nil, fmt.Errorf("Failed to load parent comment: %w", err)
    }
    if len(parents) == 0 || parents[0].PostID != postID {
      return nil, fmt.Errorf("%w: parent comment does not belong to post", ErrInvalidInput)
    }
  }

  comment := &types.Comment{
    PostID:          postID,
    AuthorID:        userID,
    ParentCommentID: parentCommentID,
    Body:            body,
  }

  var notification *types.Notification

  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := cs.commentRepo.Create(ctx, tx, comment); err != nil {
      return fmt.Errorf("Failed to create comment: %w", err)
    }

    if err := cs.engagement.Recompute(ctx, tx, postID); err != nil {
      return err
    }

    if post.AuthorID != nil {
      n, err := cs.notifications.Emit(ctx, tx, *post.AuthorID, &userID, types.NotificationTypeComment, post, map[string]any{
        "post_id":    post.ID,
        "comment_id": comment.ID,
      })
      if err != nil {
        return err
      }
      notification = n
    }

    return nil
  })
  if err != nil {
    return nil, err
  }

  cs.notifications.Push(ctx, notification)
  cs.notifications.PushPostEvent(ctx, post.ID, sse.SSEEventPostCommented, map[string]any{
    "post_id":    post.ID,
    "comment_id": comment.ID,
    "user_id":    userID,
  })
  return comment, nil
}

func (cs *commentService) ListComments(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]*types.Comment, error) {
  posts, err := cs.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 || !ResolveVisibility(posts[0], viewerID) {
    return nil, ErrNotFound
  }

  return cs.commentRepo.ListByPost(ctx, nil, postID, limit, offset)
}

// DeleteComment is allowed for the comment's author and the post's author.
// The recompute targets the deleted comment's own post id.
func (cs *commentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
  comments, err := cs.commentRepo.GetByIDs(ctx, nil, []uuid.UUID{commentID})
  if err != nil {
    return fmt.Errorf("Failed to load comment: %w", err)
  }
  if len(comments) == 0 {
    return ErrNotFound
  }
  comment := comments[0]

  allowed := comment.AuthorID == userID
  if !allowed {
    posts, err := cs.postRepo.GetByIDs(ctx, nil, []uuid.UUID{comment.PostID})
    if err != nil {
      return fmt.Errorf("Failed to load post: %w", err)
    }
    if len(posts) > 0 && posts[0].AuthorID != nil && *posts[0].AuthorID == userID {
      allowed = true
    }
  }
  if !allowed {
    return ErrForbidden
  }

  return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    rows, err := cs.commentRepo.Delete(ctx, tx, commentID)
    if err != nil {
      return fmt.Errorf("Failed to delete comment: %w", err)
    }
    if rows == 0 {
      return nil
    }
    return cs.engagement.Recompute(ctx, tx, comment.PostID)
  })
}
