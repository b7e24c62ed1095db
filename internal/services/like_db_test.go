package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
  "gorm.io/gorm"
)

func newEngagementStack(t *testing.T, tx *gorm.DB) (LikeService, CommentService, EngagementService, repos.PostRepo) {
  t.Helper()
  log := testutil.Logger(t)

  postRepo := repos.NewPostRepo(tx, log)
  likeRepo := repos.NewLikeRepo(tx, log)
  commentRepo := repos.NewCommentRepo(tx, log)
  blockRepo := repos.NewUserBlockRepo(tx, log)
  notificationRepo := repos.NewNotificationRepo(tx, log)

  notifications := NewNotificationService(tx, log, notificationRepo, blockRepo, nil)
  engagement := NewEngagementService(tx, log, postRepo, likeRepo, commentRepo, nil)
  likes := NewLikeService(tx, log, postRepo, likeRepo, blockRepo, notifications, engagement)
  comments := NewCommentService(tx, log, postRepo, commentRepo, blockRepo, notifications, engagement)

  return likes, comments, engagement, postRepo
}

func loadPost(t *testing.T, ctx context.Context, postRepo repos.PostRepo, id uuid.UUID) *types.Post {
  t.Helper()
  posts, err := postRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
  if err != nil || len(posts) != 1 {
    t.Fatalf("GetByIDs: err=%v len=%d", err, len(posts))
  }
  return posts[0]
}

func TestLikeToggleRecomputesEngagement(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  ctx := context.Background()

  likes, _, _, postRepo := newEngagementStack(t, tx)

  author := testutil.SeedUser(t, ctx, tx, "author@like.test", "Ann", "Author")
  fan := testutil.SeedUser(t, ctx, tx, "fan@like.test", "Fay", "Fan")
  post := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)

  if err := likes.Like(ctx, fan.ID, post.ID); err != nil {
    t.Fatalf("Like: %v", err)
  }
  got := loadPost(t, ctx, postRepo, post.ID)
  if got.LikeCount != 1 {
    t.Fatalf("like_count = %d, want 1", got.LikeCount)
  }
  if got.EngagementScore <= 0.9 || got.EngagementScore > 1.0 {
    t.Fatalf("engagement_score = %v, want ~1.0 for one like on a fresh post", got.EngagementScore)
  }

  // Liking twice does not double count.
  if err := likes.Like(ctx, fan.ID, post.ID); err != nil {
    t.Fatalf("Like again: %v", err)
  }
  got = loadPost(t, ctx, postRepo, post.ID)
  if got.LikeCount != 1 {
    t.Fatalf("like_count after duplicate like = %d, want 1", got.LikeCount)
  }

  // Unlike recomputes the same post's score back down.
  if err := likes.Unlike(ctx, fan.ID, post.ID); err != nil {
    t.Fatalf("Unlike: %v", err)
  }
  got = loadPost(t, ctx, postRepo, post.ID)
  if got.LikeCount != 0 {
    t.Fatalf("like_count after unlike = %d, want 0", got.LikeCount)
  }
  if got.EngagementScore > 0 || got.EngagementScore < -0.1 {
    t.Fatalf("engagement_score after unlike = %v, want ~0", got.EngagementScore)
  }

  // Unliking again is a no-op.
  if err := likes.Unlike(ctx, fan.ID, post.ID); err != nil {
    t.Fatalf("Unlike again: %v", err)
  }
}

func TestCommentDeleteRecomputesOwnPost(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  ctx := context.Background()

  _, comments, _, postRepo := newEngagementStack(t, tx)

  author := testutil.SeedUser(t, ctx, tx, "author@comment.test", "Ann", "Author")
  commenter := testutil.SeedUser(t, ctx, tx, "commenter@comment.test", "Cam", "Commenter")

  postA := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  postB := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)

  onA, err := comments.CreateComment(ctx, commenter.ID, postA.ID, nil, "nice work")
  if err != nil {
    t.Fatalf("CreateComment: %v", err)
  }
  if _, err := comments.CreateComment(ctx, commenter.ID, postB.ID, nil, "also nice"); err != nil {
    t.Fatalf("CreateComment: %v", err)
  }

  gotA := loadPost(t, ctx, postRepo, postA.ID)
  gotB := loadPost(t, ctx, postRepo, postB.ID)
  if gotA.CommentCount != 1 || gotB.CommentCount != 1 {
    t.Fatalf("comment counts = %d/%d, want 1/1", gotA.CommentCount, gotB.CommentCount)
  }

  // Deleting the comment on post A must recompute post A, not post B.
  if err := comments.DeleteComment(ctx, commenter.ID, onA.ID); err != nil {
    t.Fatalf("DeleteComment: %v", err)
  }
  gotA = loadPost(t, ctx, postRepo, postA.ID)
  gotB = loadPost(t, ctx, postRepo, postB.ID)
  if gotA.CommentCount != 0 {
    t.Fatalf("post A comment_count after delete = %d, want 0", gotA.CommentCount)
  }
  if gotB.CommentCount != 1 {
    t.Fatalf("post B comment_count disturbed by delete on post A: %d", gotB.CommentCount)
  }
  if gotA.EngagementScore > 0 || gotA.EngagementScore < -0.1 {
    t.Fatalf("post A engagement_score after delete = %v, want ~0", gotA.EngagementScore)
  }
}

func TestCommentParentMustSharePost(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  ctx := context.Background()

  _, comments, _, _ := newEngagementStack(t, tx)

  author := testutil.SeedUser(t, ctx, tx, "author@thread.test", "Ann", "Author")
  postA := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  postB := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)

  parent, err := comments.CreateComment(ctx, author.ID, postA.ID, nil, "root")
  if err != nil {
    t.Fatalf("CreateComment: %v", err)
  }

  if _, err := comments.CreateComment(ctx, author.ID, postB.ID, &parent.ID, "cross-post reply"); !isInvalidInput(err) {
    t.Fatalf("reply under a parent from another post: got %v, want ErrInvalidInput", err)
  }

  if _, err := comments.CreateComment(ctx, author.ID, postA.ID, &parent.ID, "reply"); err != nil {
    t.Fatalf("reply under own post parent: %v", err)
  }
}

func isInvalidInput(err error) bool {
  return errors.Is(err, ErrInvalidInput)
}
