package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/normalization"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/types"
)

const matchPushConcurrency = 4

type MatchService interface {
  ReconcileOnSignup(ctx context.Context, tx *gorm.DB, user *types.User) ([]*types.Notification, error)
  PushAll(ctx context.Context, notifications []*types.Notification)
  ListPendingFor(ctx context.Context, user *types.User) ([]*types.PendingRecipientMatch, error)
  Claim(ctx context.Context, user *types.User, matchID uuid.UUID) (*types.PendingRecipientMatch, error)
}

type matchService struct {
  db               *gorm.DB
  log              *logger.Logger
  pendingMatchRepo repos.PendingMatchRepo
  postRepo         repos.PostRepo
  notifications    NotificationService
}

func NewMatchService(
  db *gorm.DB,
  baseLog *logger.Logger,
  pendingMatchRepo repos.PendingMatchRepo,
  postRepo repos.PostRepo,
  notifications NotificationService,
) MatchService {
  serviceLog := baseLog.With("service", "MatchService")
  return &matchService{
    db:               db,
    log:              serviceLog,
    pendingMatchRepo: pendingMatchRepo,
    postRepo:         postRepo,
    notifications:    notifications,
  }
}

// claimOne links the post to the user and records the claim. The conditional
// update means a row another signup claimed first is skipped, never stolen.
func (ms *matchService) claimOne(ctx context.Context, tx *gorm.DB, match *types.PendingRecipientMatch, user *types.User) (*types.Notification, error) {
  rows, err := ms.pendingMatchRepo.Claim(ctx, tx, match.ID, user.ID)
  if err != nil {
    return nil, fmt.Errorf("Failed to claim pending match: %w", err)
  }
  if rows == 0 {
    return nil, nil
  }

  if err := ms.postRepo.UpdateFields(ctx, tx, match.PostID, map[string]interface{}{
    "recipient_id": user.ID,
  }); err != nil {
    return nil, fmt.Errorf("Failed to link matched recipient: %w", err)
  }

  posts, err := ms.postRepo.GetByIDs(ctx, tx, []uuid.UUID{match.PostID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load matched post: %w", err)
  }
  if len(posts) == 0 {
    return nil, nil
  }
  post := posts[0]
  post.RecipientID = &user.ID

  notification, err := ms.notifications.Emit(ctx, tx, user.ID, nil, types.NotificationTypeMatchFound, post, map[string]any{
    "post_id":  post.ID,
    "match_id": match.ID,
  })
  if err != nil {
    return nil, err
  }

  return notification, nil
}

// ReconcileOnSignup runs inside the registration transaction: every
// unmatched pending row whose name or email matches the new user is claimed
// and turned into a match_found notification. Callers push the returned
// notifications after commit.
func (ms *matchService) ReconcileOnSignup(ctx context.Context, tx *gorm.DB, user *types.User) ([]*types.Notification, error) {
  foldedName := normalization.FoldName(user.FullName())

  matches, err := ms.pendingMatchRepo.ListUnmatchedByNameOrEmail(ctx, tx, foldedName, user.Email)
  if err != nil {
    return nil, fmt.Errorf("Failed to list pending matches: %w", err)
  }

  var notifications []*types.Notification
  for _, match := range matches {
    notification, err := ms.claimOne(ctx, tx, match, user)
    if err != nil {
      return nil, err
    }
    if notification != nil {
      notifications = append(notifications, notification)
    }
  }

  return notifications, nil
}

// PushAll fans notification pushes out with bounded concurrency.
func (ms *matchService) PushAll(ctx context.Context, notifications []*types.Notification) {
  if len(notifications) == 0 {
    return
  }

  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(matchPushConcurrency)
  for _, n := range notifications {
    notification := n
    g.Go(func() error {
      ms.notifications.Push(gctx, notification)
      return nil
    })
  }
  _ = g.Wait()
}

func (ms *matchService) ListPendingFor(ctx context.Context, user *types.User) ([]*types.PendingRecipientMatch, error) {
  foldedName := normalization.FoldName(user.FullName())
  return ms.pendingMatchRepo.ListUnmatchedByNameOrEmail(ctx, nil, foldedName, user.Email)
}

// Claim lets a user claim a pending match for themselves only. Claiming a
// row already matched to the same user is idempotent; a row matched to
// anyone else is ErrAlreadyClaimed.
func (ms *matchService) Claim(ctx context.Context, user *types.User, matchID uuid.UUID) (*types.PendingRecipientMatch, error) {
  matches, err := ms.pendingMatchRepo.GetByIDs(ctx, nil, []uuid.UUID{matchID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load pending match: %w", err)
  }
  if len(matches) == 0 {
    return nil, ErrNotFound
  }
  match := matches[0]

  foldedName := normalization.FoldName(user.FullName())
  nameMatches := normalization.FoldName(match.RecipientName) == foldedName
  emailMatches := match.RecipientEmail != nil && normalization.ParseInputString(*match.RecipientEmail) == user.Email
  if !nameMatches && !emailMatches {
    return nil, ErrForbidden
  }

  var notification *types.Notification

  err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    rows, err := ms.pendingMatchRepo.Claim(ctx, tx, match.ID, user.ID)
    if err != nil {
      return fmt.Errorf("Failed to claim pending match: %w", err)
    }
    if rows == 0 {
      return ErrAlreadyClaimed
    }

    if match.Matched && match.MatchedUserID != nil && *match.MatchedUserID == user.ID {
      // Re-claim of an own match; nothing else to do.
      return nil
    }

    if err := ms.postRepo.UpdateFields(ctx, tx, match.PostID, map[string]interface{}{
      "recipient_id": user.ID,
    }); err != nil {
      return fmt.Errorf("Failed to link matched recipient: %w", err)
    }

    posts, err := ms.postRepo.GetByIDs(ctx, tx, []uuid.UUID{match.PostID})
    if err != nil {
      return fmt.Errorf("Failed to load matched post: %w", err)
    }
    if len(posts) > 0 {
      posts[0].RecipientID = &user.ID
      n, err := ms.notifications.Emit(ctx, tx, user.ID, nil, types.NotificationTypeMatchFound, posts[0], map[string]any{
        "post_id":  posts[0].ID,
        "match_id": match.ID,
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

  ms.notifications.Push(ctx, notification)

  match.Matched = true
  match.MatchedUserID = &user.ID
  return match, nil
}
