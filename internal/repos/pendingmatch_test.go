package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestPendingMatchRepoClaim(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewPendingMatchRepo(db, testutil.Logger(t))

  author := testutil.SeedUser(t, ctx, tx, "author@match.test", "Ann", "Author")
  post := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  match := testutil.SeedPendingMatch(t, ctx, tx, post.ID, "Bob Smith", nil)

  first := uuid.New()
  second := uuid.New()

  rows, err := repo.Claim(ctx, tx, match.ID, first)
  if err != nil {
    t.Fatalf("Claim: %v", err)
  }
  if rows != 1 {
    t.Fatalf("first claim should win, got %d rows", rows)
  }

  rows, err = repo.Claim(ctx, tx, match.ID, second)
  if err != nil {
    t.Fatalf("Claim: %v", err)
  }
  if rows != 0 {
    t.Fatalf("a claimed match must not be re-claimed by another user, got %d rows", rows)
  }

  // Re-claiming by the winner is a no-op that still reports success.
  rows, err = repo.Claim(ctx, tx, match.ID, first)
  if err != nil {
    t.Fatalf("Claim: %v", err)
  }
  if rows != 1 {
    t.Fatalf("winner should be able to repeat the claim, got %d rows", rows)
  }

  got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{match.ID})
  if err != nil || len(got) != 1 {
    t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
  }
  if !got[0].Matched || got[0].MatchedUserID == nil || *got[0].MatchedUserID != first {
    t.Fatalf("match should stay bound to the first claimant: %+v", got[0])
  }
}

func TestPendingMatchRepoListUnmatched(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewPendingMatchRepo(db, testutil.Logger(t))

  author := testutil.SeedUser(t, ctx, tx, "author@unmatched.test", "Ann", "Author")
  post := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)

  byName := testutil.SeedPendingMatch(t, ctx, tx, post.ID, "Bob Smith", nil)
  byEmail := testutil.SeedPendingMatch(t, ctx, tx, post.ID, "Robert S", testutil.PtrString("Bob@Example.com"))
  other := testutil.SeedPendingMatch(t, ctx, tx, post.ID, "Carol Jones", nil)

  rows, err := repo.ListUnmatchedByNameOrEmail(ctx, tx, "bob smith", "bob@example.com")
  if err != nil {
    t.Fatalf("ListUnmatchedByNameOrEmail: %v", err)
  }
  found := map[uuid.UUID]bool{}
  for _, m := range rows {
    found[m.ID] = true
  }
  if !found[byName.ID] || !found[byEmail.ID] {
    t.Fatalf("expected both name and email matches, got %v", found)
  }
  if found[other.ID] {
    t.Fatalf("unrelated pending match returned")
  }

  // Claimed rows drop out of the candidate list.
  if _, err := repo.Claim(ctx, tx, byName.ID, uuid.New()); err != nil {
    t.Fatalf("Claim: %v", err)
  }
  rows, err = repo.ListUnmatchedByNameOrEmail(ctx, tx, "bob smith", "bob@example.com")
  if err != nil {
    t.Fatalf("ListUnmatchedByNameOrEmail: %v", err)
  }
  for _, m := range rows {
    if m.ID == byName.ID {
      t.Fatalf("claimed match should no longer be listed")
    }
  }
}
