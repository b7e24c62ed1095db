package repos

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/repos/testutil"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestVerificationRequestRepoReview(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  ctx := context.Background()
  repo := NewVerificationRequestRepo(db, testutil.Logger(t))

  applicant := testutil.SeedUser(t, ctx, tx, "applicant@verify.test", "Ava", "Applicant")
  reviewer := testutil.SeedUser(t, ctx, tx, "reviewer@verify.test", "Rex", "Reviewer")

  req, err := repo.Create(ctx, tx, &types.VerificationRequest{
    ID:     uuid.New(),
    UserID: applicant.ID,
    Status: types.VerificationPending,
  })
  if err != nil {
    t.Fatalf("Create: %v", err)
  }

  rows, err := repo.Review(ctx, tx, req.ID, reviewer.ID, types.VerificationVerified)
  if err != nil {
    t.Fatalf("Review: %v", err)
  }
  if rows != 1 {
    t.Fatalf("Review should settle exactly one pending request, got %d", rows)
  }

  // A second review loses the conditional update.
  rows, err = repo.Review(ctx, tx, req.ID, reviewer.ID, types.VerificationRejected)
  if err != nil {
    t.Fatalf("Review: %v", err)
  }
  if rows != 0 {
    t.Fatalf("settled request must not be re-reviewed, got %d rows", rows)
  }

  got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{req.ID})
  if err != nil || len(got) != 1 {
    t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
  }
  if got[0].Status != types.VerificationVerified {
    t.Fatalf("first decision should stick, got %s", got[0].Status)
  }
  if got[0].ReviewedBy == nil || *got[0].ReviewedBy != reviewer.ID || got[0].ReviewedAt == nil {
    t.Fatalf("review metadata missing: %+v", got[0])
  }
}
