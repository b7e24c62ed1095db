package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestNotificationRepoMarkRead(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewNotificationRepo(db, testutil.Logger(t))

  owner := testutil.SeedUser(t, ctx, tx, "owner@notif.test", "Olu", "Owner")
  other := testutil.SeedUser(t, ctx, tx, "other@notif.test", "Oma", "Other")

  created, err := repo.Create(ctx, tx, []*types.Notification{
    {ID: uuid.New(), UserID: owner.ID, Type: types.NotificationTypeLike},
    {ID: uuid.New(), UserID: owner.ID, Type: types.NotificationTypeComment},
  })
  if err != nil || len(created) != 2 {
    t.Fatalf("Create: err=%v len=%d", err, len(created))
  }

  if n, err := repo.CountUnread(ctx, tx, owner.ID); err != nil || n != 2 {
    t.Fatalf("CountUnread: err=%v n=%d", err, n)
  }

  // A different user cannot mark someone else's notification.
  rows, err := repo.MarkRead(ctx, tx, created[0].ID, other.ID)
  if err != nil {
    t.Fatalf("MarkRead: %v", err)
  }
  if rows != 0 {
    t.Fatalf("foreign MarkRead should touch nothing, got %d rows", rows)
  }

  rows, err = repo.MarkRead(ctx, tx, created[0].ID, owner.ID)
  if err != nil {
    t.Fatalf("MarkRead: %v", err)
  }
  if rows != 1 {
    t.Fatalf("MarkRead should flip exactly one row, got %d", rows)
  }

  // Second mark is a no-op; the transition happens once.
  rows, err = repo.MarkRead(ctx, tx, created[0].ID, owner.ID)
  if err != nil {
    t.Fatalf("MarkRead: %v", err)
  }
  if rows != 0 {
    t.Fatalf("repeated MarkRead should touch nothing, got %d rows", rows)
  }

  if n, err := repo.CountUnread(ctx, tx, owner.ID); err != nil || n != 1 {
    t.Fatalf("CountUnread after MarkRead: err=%v n=%d", err, n)
  }

  if _, err := repo.MarkAllRead(ctx, tx, owner.ID); err != nil {
    t.Fatalf("MarkAllRead: %v", err)
  }
  if n, err := repo.CountUnread(ctx, tx, owner.ID); err != nil || n != 0 {
    t.Fatalf("CountUnread after MarkAllRead: err=%v n=%d", err, n)
  }
}
