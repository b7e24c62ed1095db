package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  goredis "github.com/redis/go-redis/v9"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/types"
)

const (
  likeWeight     = 1.0
  commentWeight  = 2.0
  agePenaltyRate = 0.1

  topStoriesLimit    = 20
  topStoriesCacheKey = "top_stories"
  topStoriesCacheTTL = 60 * time.Second
)

type EngagementService interface {
  Recompute(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
  TopStories(ctx context.Context) ([]*types.Post, error)
  InvalidateTopStories(ctx context.Context)
}

type engagementService struct {
  db          *gorm.DB
  log         *logger.Logger
  postRepo    repos.PostRepo
  likeRepo    repos.LikeRepo
  commentRepo repos.CommentRepo
  cache       *goredis.Client
}

func NewEngagementService(
  db *gorm.DB,
  baseLog *logger.Logger,
  postRepo repos.PostRepo,
  likeRepo repos.LikeRepo,
  commentRepo repos.CommentRepo,
  cache *goredis.Client,
) EngagementService {
  serviceLog := baseLog.With("service", "EngagementService")
  return &engagementService{
    db:          db,
    log:         serviceLog,
    postRepo:    postRepo,
    likeRepo:    likeRepo,
    commentRepo: commentRepo,
    cache:       cache,
  }
}

// scoreFor computes the engagement score from raw counts and post age.
// Older posts decay linearly, so a very old post can go negative.
func scoreFor(likes, comments int64, age time.Duration) float64 {
  return float64(likes)*likeWeight + float64(comments)*commentWeight - age.Hours()*agePenaltyRate
}

// Recompute recounts likes and comments for a post and stores the derived
// counters and score. It must run inside the same transaction as the write
// that changed them, so the stored score never drifts from the rows it
// summarizes.
func (es *engagementService) Recompute(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = es.db
  }

  posts, err := es.postRepo.GetByIDs(ctx, transaction, []uuid.UUID{postID})
  if err != nil {
    return fmt.Errorf("Failed to load post for recompute: %w", err)
  }
  if len(posts) == 0 {
    return ErrNotFound
  }
  post := posts[0]

  likes, err := es.likeRepo.CountByPost(ctx, transaction, postID)
  if err != nil {
    return fmt.Errorf("Failed to count likes: %w", err)
  }
  comments, err := es.commentRepo.CountByPost(ctx, transaction, postID)
  if err != nil {
    return fmt.Errorf("Failed to count comments: %w", err)
  }

  score := scoreFor(likes, comments, time.Since(post.CreatedAt))

  if err := es.postRepo.UpdateFields(ctx, transaction, postID, map[string]interface{}{
    "like_count":       likes,
    "comment_count":    comments,
    "engagement_score": score,
  }); err != nil {
    return fmt.Errorf("Failed to store engagement score: %w", err)
  }

  es.InvalidateTopStories(ctx)
  return nil
}

func (es *engagementService) TopStories(ctx context.Context) ([]*types.Post, error) {
  if es.cache != nil {
    raw, err := es.cache.Get(ctx, topStoriesCacheKey).Bytes()
    if err == nil {
      var cached []*types.Post
      if err := json.Unmarshal(raw, &cached); err == nil {
        return cached, nil
      }
      es.log.Warn("Discarding unreadable top stories cache entry", "error", err)
    }
  }

  posts, err := es.postRepo.ListPublicTop(ctx, nil, topStoriesLimit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list top stories: %w", err)
  }

  if es.cache != nil {
    if raw, err := json.Marshal(posts); err == nil {
      if err := es.cache.Set(ctx, topStoriesCacheKey, raw, topStoriesCacheTTL).Err(); err != nil {
        es.log.Warn("Failed to cache top stories", "error", err)
      }
    }
  }

  return posts, nil
}

// InvalidateTopStories drops the cached ranking; the next read repopulates
// it. Cache failures are logged and ignored.
func (es *engagementService) InvalidateTopStories(ctx context.Context) {
  if es.cache == nil {
    return
  }
  if err := es.cache.Del(ctx, topStoriesCacheKey).Err(); err != nil {
    es.log.Warn("Failed to invalidate top stories cache", "error", err)
  }
}
