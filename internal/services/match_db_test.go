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

func newMatchStack(t *testing.T, tx *gorm.DB) (PostService, MatchService, NotificationService, repos.PendingMatchRepo, repos.PostRepo) {
  t.Helper()
  log := testutil.Logger(t)

  postRepo := repos.NewPostRepo(tx, log)
  userRepo := repos.NewUserRepo(tx, log)
  likeRepo := repos.NewLikeRepo(tx, log)
  commentRepo := repos.NewCommentRepo(tx, log)
  blockRepo := repos.NewUserBlockRepo(tx, log)
  notificationRepo := repos.NewNotificationRepo(tx, log)
  pendingMatchRepo := repos.NewPendingMatchRepo(tx, log)

  notifications := NewNotificationService(tx, log, notificationRepo, blockRepo, nil)
  engagement := NewEngagementService(tx, log, postRepo, likeRepo, commentRepo, nil)
  matches := NewMatchService(tx, log, pendingMatchRepo, postRepo, notifications)
  posts := NewPostService(tx, log, postRepo, userRepo, pendingMatchRepo, blockRepo, notifications, engagement)

  return posts, matches, notifications, pendingMatchRepo, postRepo
}

// A story tags an unregistered "Bob Smith"; when Bob signs up the pending
// match is claimed, the post links to him, and he has an unread match_found
// notification waiting.
func TestMatchReconcileOnSignup(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  ctx := context.Background()

  posts, matches, notifications, pendingMatchRepo, postRepo := newMatchStack(t, tx)

  alice := testutil.SeedUser(t, ctx, tx, "alice@e2e.test", "Alice", "Adams")

  post, err := posts.CreatePost(ctx, alice.ID, CreatePostInput{
    Body:          "Bob helped me move apartments in the rain",
    PrivacyLevel:  types.PrivacyPublic,
    RecipientName: "Bob   Smith",
  })
  if err != nil {
    t.Fatalf("CreatePost: %v", err)
  }
  if post.RecipientID != nil {
    t.Fatalf("unregistered recipient should not be linked yet")
  }

  pending, err := pendingMatchRepo.ListByPostIDs(ctx, tx, []uuid.UUID{post.ID})
  if err != nil || len(pending) != 1 {
    t.Fatalf("ListByPostIDs: err=%v len=%d", err, len(pending))
  }
  if pending[0].RecipientName != "Bob Smith" {
    t.Fatalf("recipient name not normalized: %q", pending[0].RecipientName)
  }

  bob := testutil.SeedUser(t, ctx, tx, "bob@e2e.test", "bob", "smith")

  claimed, err := matches.ReconcileOnSignup(ctx, tx, bob)
  if err != nil {
    t.Fatalf("ReconcileOnSignup: %v", err)
  }
  if len(claimed) != 1 {
    t.Fatalf("expected one match_found notification, got %d", len(claimed))
  }
  if claimed[0].Type != types.NotificationTypeMatchFound || claimed[0].UserID != bob.ID {
    t.Fatalf("unexpected notification: %+v", claimed[0])
  }

  linked, err := postRepo.GetByIDs(ctx, tx, []uuid.UUID{post.ID})
  if err != nil || len(linked) != 1 {
    t.Fatalf("GetByIDs: err=%v len=%d", err, len(linked))
  }
  if linked[0].RecipientID == nil || *linked[0].RecipientID != bob.ID {
    t.Fatalf("post should be linked to bob, got %v", linked[0].RecipientID)
  }

  if n, err := notifications.UnreadCount(ctx, bob.ID); err != nil || n < 1 {
    t.Fatalf("UnreadCount: err=%v n=%d", err, n)
  }

  // A later signup under the same name claims nothing.
  impostor := testutil.SeedUser(t, ctx, tx, "impostor@e2e.test", "Bob", "Smith")
  claimed, err = matches.ReconcileOnSignup(ctx, tx, impostor)
  if err != nil {
    t.Fatalf("ReconcileOnSignup: %v", err)
  }
  if len(claimed) != 0 {
    t.Fatalf("claimed match must not move to a later signup, got %d", len(claimed))
  }
}

func TestMatchClaim(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  ctx := context.Background()

  _, matches, _, _, _ := newMatchStack(t, tx)

  author := testutil.SeedUser(t, ctx, tx, "author@claim.test", "Ann", "Author")
  post := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  match := testutil.SeedPendingMatch(t, ctx, tx, post.ID, "Bob Smith", testutil.PtrString("bob@claim.test"))

  // Identity must match the pending row.
  carol := testutil.SeedUser(t, ctx, tx, "carol@claim.test", "Carol", "Jones")
  if _, err := matches.Claim(ctx, carol, match.ID); !errors.Is(err, ErrForbidden) {
    t.Fatalf("claim with wrong identity: got %v, want ErrForbidden", err)
  }

  bob := testutil.SeedUser(t, ctx, tx, "bob@claim.test", "Bob", "Smith")
  claimed, err := matches.Claim(ctx, bob, match.ID)
  if err != nil {
    t.Fatalf("Claim: %v", err)
  }
  if !claimed.Matched || claimed.MatchedUserID == nil || *claimed.MatchedUserID != bob.ID {
    t.Fatalf("claim did not bind: %+v", claimed)
  }

  // Claiming again is idempotent for the winner.
  if _, err := matches.Claim(ctx, bob, match.ID); err != nil {
    t.Fatalf("re-claim by winner: %v", err)
  }

  // Another matching user loses the conditional update.
  bob2 := testutil.SeedUser(t, ctx, tx, "bob2@claim.test", "Bob", "Smith")
  if _, err := matches.Claim(ctx, bob2, match.ID); !errors.Is(err, ErrAlreadyClaimed) {
    t.Fatalf("second claimant: got %v, want ErrAlreadyClaimed", err)
  }

  if _, err := matches.Claim(ctx, bob, uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("claim of a missing match: got %v, want ErrNotFound", err)
  }
}
