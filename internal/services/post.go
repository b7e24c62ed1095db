package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/normalization"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/types"
)

type CreatePostInput struct {
  Body           string
  PrivacyLevel   types.PrivacyLevel
  Anonymity      types.Anonymity
  RecipientName  string
  RecipientEmail string
}

type UpdatePostInput struct {
  Body         *string
  PrivacyLevel *types.PrivacyLevel
  Anonymity    *types.Anonymity
}

type PostService interface {
  CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*types.Post, error)
  GetPost(ctx context.Context, viewerID uuid.UUID, postID uuid.UUID) (*types.Post, error)
  Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]*types.Post, error)
  TopStories(ctx context.Context) ([]*types.Post, error)
  UpdatePost(ctx context.Context, actorID, postID uuid.UUID, input UpdatePostInput) (*types.Post, error)
  SetRecipientOverride(ctx context.Context, actorID, postID uuid.UUID, level *types.PrivacyLevel) (*types.Post, error)
  DeletePost(ctx context.Context, actorID, postID uuid.UUID) error
}

type postService struct {
  db               *gorm.DB
  log              *logger.Logger
  postRepo         repos.PostRepo
  userRepo         repos.UserRepo
  pendingMatchRepo repos.PendingMatchRepo
  userBlockRepo    repos.UserBlockRepo
  notifications    NotificationService
  engagement       EngagementService
}

func NewPostService(
  db *gorm.DB,
  baseLog *logger.Logger,
  postRepo repos.PostRepo,
  userRepo repos.UserRepo,
  pendingMatchRepo repos.PendingMatchRepo,
  userBlockRepo repos.UserBlockRepo,
  notifications NotificationService,
  engagement EngagementService,
) PostService {
  serviceLog := baseLog.With("service", "PostService")
  return &postService{
    db:               db,
    log:              serviceLog,
    postRepo:         postRepo,
    userRepo:         userRepo,
    pendingMatchRepo: pendingMatchRepo,
    userBlockRepo:    userBlockRepo,
    notifications:    notifications,
    engagement:       engagement,
  }
}

// CreatePost writes the post and, when a recipient is named, either links a
// registered user (tagged notification) or records a pending match for the
// reconciler to claim at signup.
func (ps *postService) CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*types.Post, error) {
  if strings.TrimSpace(input.Body) == "" {
    return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
  }
  if input.PrivacyLevel == "" {
    input.PrivacyLevel = types.PrivacyPublic
  }
  if !input.PrivacyLevel.Valid() {
    return nil, fmt.Errorf("%w: unknown privacy level %q", ErrInvalidInput, input.PrivacyLevel)
  }
  if input.Anonymity == "" {
    input.Anonymity = types.AnonymityFullIdentity
  }
  if !input.Anonymity.Valid() {
    return nil, fmt.Errorf("%w: unknown anonymity %q", ErrInvalidInput, input.Anonymity)
  }

  authors, err := ps.userRepo.GetByIDs(ctx, nil, []uuid.UUID{authorID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load author: %w", err)
  }
  if len(authors) == 0 {
    return nil, ErrNotFound
  }
  author := authors[0]

  recipientName := normalization.ParseName(input.RecipientName)
  recipientEmail := normalization.ParseInputString(input.RecipientEmail)

  post := &types.Post{
    AuthorID:        &author.ID,
    AuthorFirstName: author.FirstName,
    Body:            strings.TrimSpace(input.Body),
    PrivacyLevel:    input.PrivacyLevel,
    Anonymity:       input.Anonymity,
    RecipientName:   recipientName,
  }

  var taggedNotification *types.Notification

  err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    var recipient *types.User
    if recipientEmail != "" {
      existing, err := ps.userRepo.GetByEmails(ctx, tx, []string{recipientEmail})
      if err != nil {
        return fmt.Errorf("Failed to look up recipient: %w", err)
      }
      if len(existing) > 0 {
        recipient = existing[0]
      }
    }

    if recipient != nil {
      post.RecipientID = &recipient.ID
      if post.RecipientName == "" {
        post.RecipientName = recipient.FullName()
      }
    }

    if _, err := ps.postRepo.Create(ctx, tx, []*types.Post{post}); err != nil {
      return fmt.Errorf("Failed to create post: %w", err)
    }

    if recipient != nil {
      notification, err := ps.notifications.Emit(ctx, tx, recipient.ID, &author.ID, types.NotificationTypeTagged, post, map[string]any{
        "post_id": post.ID,
      })
      if err != nil {
        return err
      }
      taggedNotification = notification
      return nil
    }

    if recipientName != "" || recipientEmail != "" {
      match := &types.PendingRecipientMatch{
        PostID:        post.ID,
        RecipientName: recipientName,
      }
      if recipientEmail != "" {
        match.RecipientEmail = &recipientEmail
      }
      if _, err := ps.pendingMatchRepo.Create(ctx, tx, match); err != nil {
        return fmt.Errorf("Failed to create pending recipient match: %w", err)
      }
    }

    return nil
  })
  if err != nil {
    return nil, err
  }

  ps.notifications.Push(ctx, taggedNotification)
  return post, nil
}

// GetPost hides invisible posts behind ErrNotFound so a denied read is
// indistinguishable from a missing row.
func (ps *postService) GetPost(ctx context.Context, viewerID uuid.UUID, postID uuid.UUID) (*types.Post, error) {
  posts, err := ps.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 {
    return nil, ErrNotFound
  }
  post := posts[0]

  if !ResolveVisibility(post, viewerID) {
    return nil, ErrNotFound
  }

  if viewerID != uuid.Nil && post.AuthorID != nil && *post.AuthorID != viewerID {
    blocked, err := ps.userBlockRepo.BlockedEitherWay(ctx, nil, viewerID, *post.AuthorID)
    if err != nil {
      return nil, fmt.Errorf("Failed to check block state: %w", err)
    }
    if blocked {
      return nil, ErrNotFound
    }
  }

  return post, nil
}

func (ps *postService) Feed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]*types.Post, error) {
  return ps.postRepo.ListVisible(ctx, nil, viewerID, limit, offset)
}

func (ps *postService) TopStories(ctx context.Context) ([]*types.Post, error) {
  return ps.engagement.TopStories(ctx)
}

func (ps *postService) UpdatePost(ctx context.Context, actorID, postID uuid.UUID, input UpdatePostInput) (*types.Post, error) {
  posts, err := ps.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 {
    return nil, ErrNotFound
  }
  post := posts[0]

  if post.AuthorID == nil || *post.AuthorID != actorID {
    return nil, ErrForbidden
  }

  fields := map[string]interface{}{}
  if input.Body != nil {
    body := strings.TrimSpace(*input.Body)
    if body == "" {
      return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
    }
    fields["body"] = body
    post.Body = body
  }
  if input.PrivacyLevel != nil {
    if !input.PrivacyLevel.Valid() {
      return nil, fmt.Errorf("%w: unknown privacy level %q", ErrInvalidInput, *input.PrivacyLevel)
    }
    fields["privacy_level"] = *input.PrivacyLevel
    post.PrivacyLevel = *input.PrivacyLevel
  }
  if input.Anonymity != nil {
    if !input.Anonymity.Valid() {
      return nil, fmt.Errorf("%w: unknown anonymity %q", ErrInvalidInput, *input.Anonymity)
    }
    fields["anonymity"] = *input.Anonymity
    post.Anonymity = *input.Anonymity
  }

  if err := ps.postRepo.UpdateFields(ctx, nil, postID, fields); err != nil {
    return nil, fmt.Errorf("Failed to update post: %w", err)
  }

  return post, nil
}

// SetRecipientOverride is the one post field the recipient owns; the author
// cannot touch it. A nil level clears the override.
func (ps *postService) SetRecipientOverride(ctx context.Context, actorID, postID uuid.UUID, level *types.PrivacyLevel) (*types.Post, error) {
  posts, err := ps.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 {
    return nil, ErrNotFound
  }
  post := posts[0]

  if post.RecipientID == nil || *post.RecipientID != actorID {
    return nil, ErrForbidden
  }

  if level != nil && !level.Valid() {
    return nil, fmt.Errorf("%w: unknown privacy level %q", ErrInvalidInput, *level)
  }

  if err := ps.postRepo.UpdateFields(ctx, nil, postID, map[string]interface{}{
    "recipient_visibility_override": level,
  }); err != nil {
    return nil, fmt.Errorf("Failed to set recipient override: %w", err)
  }

  post.RecipientVisibilityOverride = level
  return post, nil
}

func (ps *postService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) error {
  posts, err := ps.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 {
    return ErrNotFound
  }
  post := posts[0]

  if post.AuthorID == nil || *post.AuthorID != actorID {
    return ErrForbidden
  }

  if err := ps.postRepo.Delete(ctx, nil, postID); err != nil {
    return fmt.Errorf("Failed to delete post: %w", err)
  }

  ps.engagement.InvalidateTopStories(ctx)
  return nil
}
