package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestPostServiceOwnership(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  ctx := context.Background()

  posts, _, _, _, postRepo := newMatchStack(t, tx)

  author := testutil.SeedUser(t, ctx, tx, "author@own.test", "Ann", "Author")
  recipient := testutil.SeedUser(t, ctx, tx, "recipient@own.test", "Rae", "Recipient")
  stranger := testutil.SeedUser(t, ctx, tx, "stranger@own.test", "Sam", "Stranger")

  post, err := posts.CreatePost(ctx, author.ID, CreatePostInput{
    Body:           "Rae returned my lost wallet",
    PrivacyLevel:   types.PrivacyPrivate,
    RecipientName:  "Rae Recipient",
    RecipientEmail: recipient.Email,
  })
  if err != nil {
    t.Fatalf("CreatePost: %v", err)
  }
  if post.RecipientID == nil || *post.RecipientID != recipient.ID {
    t.Fatalf("registered recipient should be linked at creation")
  }

  // A private post reads as missing to everyone but the author.
  if _, err := posts.GetPost(ctx, stranger.ID, post.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("stranger reading a private post: got %v, want ErrNotFound", err)
  }
  if _, err := posts.GetPost(ctx, recipient.ID, post.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("recipient reading an author-private post: got %v, want ErrNotFound", err)
  }
  if _, err := posts.GetPost(ctx, author.ID, post.ID); err != nil {
    t.Fatalf("author reading own private post: %v", err)
  }

  // Only the author edits the post body and privacy.
  body := "edited"
  if _, err := posts.UpdatePost(ctx, recipient.ID, post.ID, UpdatePostInput{Body: &body}); !errors.Is(err, ErrForbidden) {
    t.Fatalf("recipient editing post: got %v, want ErrForbidden", err)
  }

  // Only the recipient touches the override.
  level := types.PrivacyPublic
  if _, err := posts.SetRecipientOverride(ctx, author.ID, post.ID, &level); !errors.Is(err, ErrForbidden) {
    t.Fatalf("author setting override: got %v, want ErrForbidden", err)
  }
  if _, err := posts.SetRecipientOverride(ctx, recipient.ID, post.ID, &level); err != nil {
    t.Fatalf("recipient setting override: %v", err)
  }

  // The public override opens the private post to everyone.
  if _, err := posts.GetPost(ctx, stranger.ID, post.ID); err != nil {
    t.Fatalf("stranger reading an overridden-public post: %v", err)
  }

  // Clearing the override restores the author's privacy level.
  if _, err := posts.SetRecipientOverride(ctx, recipient.ID, post.ID, nil); err != nil {
    t.Fatalf("recipient clearing override: %v", err)
  }
  if _, err := posts.GetPost(ctx, stranger.ID, post.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("stranger after override cleared: got %v, want ErrNotFound", err)
  }

  stored, err := postRepo.GetByIDs(ctx, tx, []uuid.UUID{post.ID})
  if err != nil || len(stored) != 1 {
    t.Fatalf("GetByIDs: err=%v len=%d", err, len(stored))
  }
  if stored[0].RecipientVisibilityOverride != nil {
    t.Fatalf("override should be cleared, got %v", *stored[0].RecipientVisibilityOverride)
  }
}
