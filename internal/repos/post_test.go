package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestPostRepoVisibility(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewPostRepo(db, testutil.Logger(t))

  author := testutil.SeedUser(t, ctx, tx, "author@post.test", "Ann", "Author")
  recipient := testutil.SeedUser(t, ctx, tx, "recipient@post.test", "Rae", "Recipient")
  stranger := testutil.SeedUser(t, ctx, tx, "stranger@post.test", "Sam", "Stranger")

  public := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  private := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPrivate)

  recipientOnly := testutil.SeedPost(t, ctx, tx, author, types.PrivacyRecipientOnly)
  if err := repo.UpdateFields(ctx, tx, recipientOnly.ID, map[string]interface{}{
    "recipient_id": recipient.ID,
  }); err != nil {
    t.Fatalf("UpdateFields: %v", err)
  }

  // Recipient hides a public post behind an override.
  hidden := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  if err := repo.UpdateFields(ctx, tx, hidden.ID, map[string]interface{}{
    "recipient_id":                  recipient.ID,
    "recipient_visibility_override": types.PrivacyPrivate,
  }); err != nil {
    t.Fatalf("UpdateFields: %v", err)
  }

  visibleIDs := func(viewerID uuid.UUID) map[uuid.UUID]bool {
    rows, err := repo.ListVisible(ctx, tx, viewerID, 50, 0)
    if err != nil {
      t.Fatalf("ListVisible: %v", err)
    }
    out := map[uuid.UUID]bool{}
    for _, p := range rows {
      out[p.ID] = true
    }
    return out
  }

  got := visibleIDs(stranger.ID)
  if !got[public.ID] {
    t.Fatalf("stranger should see the public post")
  }
  if got[private.ID] || got[recipientOnly.ID] || got[hidden.ID] {
    t.Fatalf("stranger sees restricted posts: %v", got)
  }

  got = visibleIDs(recipient.ID)
  if !got[public.ID] || !got[recipientOnly.ID] || !got[hidden.ID] {
    t.Fatalf("recipient is missing posts addressed to them: %v", got)
  }
  if got[private.ID] {
    t.Fatalf("recipient should not see the author's private post")
  }

  got = visibleIDs(author.ID)
  if !got[public.ID] || !got[private.ID] || !got[recipientOnly.ID] || !got[hidden.ID] {
    t.Fatalf("author should see all of their own posts: %v", got)
  }
}

func TestPostRepoListVisibleExcludesBlocked(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewPostRepo(db, testutil.Logger(t))
  blockRepo := NewUserBlockRepo(db, testutil.Logger(t))

  author := testutil.SeedUser(t, ctx, tx, "author@block.test", "Ann", "Author")
  viewer := testutil.SeedUser(t, ctx, tx, "viewer@block.test", "Val", "Viewer")
  post := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)

  if _, err := blockRepo.Create(ctx, tx, &types.UserBlock{
    ID:        uuid.New(),
    BlockerID: viewer.ID,
    BlockedID: author.ID,
  }); err != nil {
    t.Fatalf("Create block: %v", err)
  }

  rows, err := repo.ListVisible(ctx, tx, viewer.ID, 50, 0)
  if err != nil {
    t.Fatalf("ListVisible: %v", err)
  }
  for _, p := range rows {
    if p.ID == post.ID {
      t.Fatalf("feed should not contain posts from a blocked author")
    }
  }

  // The other direction hides the feed entry too.
  viewer2 := testutil.SeedUser(t, ctx, tx, "viewer2@block.test", "Vic", "Viewer")
  if _, err := blockRepo.Create(ctx, tx, &types.UserBlock{
    ID:        uuid.New(),
    BlockerID: author.ID,
    BlockedID: viewer2.ID,
  }); err != nil {
    t.Fatalf("Create block: %v", err)
  }
  rows, err = repo.ListVisible(ctx, tx, viewer2.ID, 50, 0)
  if err != nil {
    t.Fatalf("ListVisible: %v", err)
  }
  for _, p := range rows {
    if p.ID == post.ID {
      t.Fatalf("feed should not contain posts from an author who blocked the viewer")
    }
  }
}

func TestPostRepoListPublicTop(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewPostRepo(db, testutil.Logger(t))

  author := testutil.SeedUser(t, ctx, tx, "author@top.test", "Ann", "Author")

  low := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  high := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  private := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPrivate)

  for id, score := range map[uuid.UUID]float64{low.ID: 1.5, high.ID: 9.5, private.ID: 99} {
    if err := repo.UpdateFields(ctx, tx, id, map[string]interface{}{"engagement_score": score}); err != nil {
      t.Fatalf("UpdateFields: %v", err)
    }
  }

  rows, err := repo.ListPublicTop(ctx, tx, 20)
  if err != nil {
    t.Fatalf("ListPublicTop: %v", err)
  }

  var gotHigh, gotLow int
  for i, p := range rows {
    switch p.ID {
    case high.ID:
      gotHigh = i + 1
    case low.ID:
      gotLow = i + 1
    case private.ID:
      t.Fatalf("private post leaked into the top ranking")
    }
  }
  if gotHigh == 0 || gotLow == 0 {
    t.Fatalf("expected both public posts in the ranking")
  }
  if gotHigh > gotLow {
    t.Fatalf("ranking not ordered by score: high at %d, low at %d", gotHigh, gotLow)
  }
}
