package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/types"
)

type BookmarkService interface {
  Bookmark(ctx context.Context, userID, postID uuid.UUID) error
  Unbookmark(ctx context.Context, userID, postID uuid.UUID) error
  ListBookmarkedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*types.Post, error)
}

type bookmarkService struct {
  db           *gorm.DB
  log          *logger.Logger
  postRepo     repos.PostRepo
  bookmarkRepo repos.BookmarkRepo
}

func NewBookmarkService(
  db *gorm.DB,
  baseLog *logger.Logger,
  postRepo repos.PostRepo,
  bookmarkRepo repos.BookmarkRepo,
) BookmarkService {
  serviceLog := baseLog.With("service", "BookmarkService")
  return &bookmarkService{
    db:           db,
    log:          serviceLog,
    postRepo:     postRepo,
    bookmarkRepo: bookmarkRepo,
  }
}

// Bookmark is private to the saving user: no notification, no counter.
func (bs *bookmarkService) Bookmark(ctx context.Context, userID, postID uuid.UUID) error {
  posts, err := bs.postRepo.GetByIDs(ctx, nil, []uuid.UUID{postID})
  if err != nil {
    return fmt.Errorf("Failed to load post: %w", err)
  }
  if len(posts) == 0 || !ResolveVisibility(posts[0], userID) {
    return ErrNotFound
  }

  exists, err := bs.bookmarkRepo.Exists(ctx, nil, postID, userID)
  if err != nil {
    return fmt.Errorf("Failed to check existing bookmark: %w", err)
  }
  if exists {
    return nil
  }

  if _, err := bs.bookmarkRepo.Create(ctx, nil, &types.Bookmark{PostID: postID, UserID: userID}); err != nil {
    return fmt.Errorf("Failed to create bookmark: %w", err)
  }
  return nil
}

func (bs *bookmarkService) Unbookmark(ctx context.Context, userID, postID uuid.UUID) error {
  if _, err := bs.bookmarkRepo.Delete(ctx, nil, postID, userID); err != nil {
    return fmt.Errorf("Failed to delete bookmark: %w", err)
  }
  return nil
}

// ListBookmarkedPosts re-resolves visibility at read time: a post bookmarked
// while public drops out of the list if it later goes private.
func (bs *bookmarkService) ListBookmarkedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*types.Post, error) {
  bookmarks, err := bs.bookmarkRepo.ListByUser(ctx, nil, userID, limit, offset)
  if err != nil {
    return nil, fmt.Errorf("Failed to list bookmarks: %w", err)
  }

  var postIDs []uuid.UUID
  for _, b := range bookmarks {
    postIDs = append(postIDs, b.PostID)
  }

  posts, err := bs.postRepo.GetByIDs(ctx, nil, postIDs)
  if err != nil {
    return nil, fmt.Errorf("Failed to load bookmarked posts: %w", err)
  }

  byID := make(map[uuid.UUID]*types.Post, len(posts))
  for _, p := range posts {
    byID[p.ID] = p
  }

  visible := make([]*types.Post, 0, len(bookmarks))
  for _, b := range bookmarks {
    post, ok := byID[b.PostID]
    if !ok {
      continue
    }
    if ResolveVisibility(post, userID) {
      visible = append(visible, post)
    }
  }

  return visible, nil
}
