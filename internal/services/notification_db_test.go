package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestNotificationEmitAuthorization(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)
  log := testutil.Logger(t)

  ctx := context.Background()
  svc := NewNotificationService(tx, log, repos.NewNotificationRepo(tx, log), repos.NewUserBlockRepo(tx, log), nil)

  author := testutil.SeedUser(t, ctx, tx, "author@emit.test", "Ann", "Author")
  recipient := testutil.SeedUser(t, ctx, tx, "recipient@emit.test", "Rae", "Recipient")
  outsider := testutil.SeedUser(t, ctx, tx, "outsider@emit.test", "Oz", "Outsider")

  post := testutil.SeedPost(t, ctx, tx, author, types.PrivacyPublic)
  post.RecipientID = &recipient.ID

  // A post-bound notification may only target the post's author or recipient.
  if _, err := svc.Emit(ctx, tx, outsider.ID, &author.ID, types.NotificationTypeLike, post, nil); err != ErrForbidden {
    t.Fatalf("Emit to an unrelated user: got %v, want ErrForbidden", err)
  }

  n, err := svc.Emit(ctx, tx, author.ID, &outsider.ID, types.NotificationTypeLike, post, nil)
  if err != nil {
    t.Fatalf("Emit to author: %v", err)
  }
  if n == nil || n.UserID != author.ID {
    t.Fatalf("Emit to author produced %+v", n)
  }

  // Actors never notify themselves.
  n, err = svc.Emit(ctx, tx, author.ID, &author.ID, types.NotificationTypeLike, post, nil)
  if err != nil || n != nil {
    t.Fatalf("self-notification: n=%v err=%v", n, err)
  }

  // A block in either direction suppresses delivery silently.
  blockRepo := repos.NewUserBlockRepo(tx, log)
  if _, err := blockRepo.Create(ctx, tx, &types.UserBlock{
    ID:        uuid.New(),
    BlockerID: author.ID,
    BlockedID: outsider.ID,
  }); err != nil {
    t.Fatalf("Create block: %v", err)
  }
  n, err = svc.Emit(ctx, tx, author.ID, &outsider.ID, types.NotificationTypeComment, post, nil)
  if err != nil || n != nil {
    t.Fatalf("blocked-pair notification: n=%v err=%v", n, err)
  }

  // System events carry no post and skip the relationship check.
  n, err = svc.Emit(ctx, tx, outsider.ID, nil, types.NotificationTypeVerificationComplete, nil, nil)
  if err != nil || n == nil {
    t.Fatalf("system notification: n=%v err=%v", n, err)
  }
}
