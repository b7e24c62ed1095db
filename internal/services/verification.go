package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/types"
)

type VerificationService interface {
  CreateRequest(ctx context.Context, userID uuid.UUID, note string) (*types.VerificationRequest, error)
  ListOwn(ctx context.Context, userID uuid.UUID) ([]*types.VerificationRequest, error)
  ListPending(ctx context.Context, reviewer *types.User, limit, offset int) ([]*types.VerificationRequest, error)
  Review(ctx context.Context, reviewer *types.User, requestID uuid.UUID, approve bool) error
}

type verificationService struct {
  db            *gorm.DB
  log           *logger.Logger
  requestRepo   repos.VerificationRequestRepo
  userRepo      repos.UserRepo
  notifications NotificationService
}

func NewVerificationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  requestRepo repos.VerificationRequestRepo,
  userRepo repos.UserRepo,
  notifications NotificationService,
) VerificationService {
  serviceLog := baseLog.With("service", "VerificationService")
  return &verificationService{
    db:            db,
    log:           serviceLog,
    requestRepo:   requestRepo,
    userRepo:      userRepo,
    notifications: notifications,
  }
}

func (vs *verificationService) CreateRequest(ctx context.Context, userID uuid.UUID, note string) (*types.VerificationRequest, error) {
  existing, err := vs.requestRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list verification requests: %w", err)
  }
  for _, r := range existing {
    if r.Status == types.VerificationPending {
      return r, nil
    }
  }

  request := &types.VerificationRequest{
    UserID: userID,
    Status: types.VerificationPending,
    Note:   strings.TrimSpace(note),
  }
  if _, err := vs.requestRepo.Create(ctx, nil, request); err != nil {
    return nil, fmt.Errorf("Failed to create verification request: %w", err)
  }
  return request, nil
}

func (vs *verificationService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*types.VerificationRequest, error) {
  return vs.requestRepo.ListByUser(ctx, nil, userID)
}

func (vs *verificationService) ListPending(ctx context.Context, reviewer *types.User, limit, offset int) ([]*types.VerificationRequest, error) {
  if reviewer == nil || !reviewer.IsReviewer {
    return nil, ErrForbidden
  }
  return vs.requestRepo.ListPending(ctx, nil, limit, offset)
}

// Review transitions a pending request exactly once, mirrors the outcome
// onto the user's verification_status and notifies the requester.
func (vs *verificationService) Review(ctx context.Context, reviewer *types.User, requestID uuid.UUID, approve bool) error {
  if reviewer == nil || !reviewer.IsReviewer {
    return ErrForbidden
  }

  requests, err := vs.requestRepo.GetByIDs(ctx, nil, []uuid.UUID{requestID})
  if err != nil {
    return fmt.Errorf("Failed to load verification request: %w", err)
  }
  if len(requests) == 0 {
    return ErrNotFound
  }
  request := requests[0]

  status := types.VerificationRejected
  if approve {
    status = types.VerificationVerified
  }

  var notification *types.Notification

  err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    rows, err := vs.requestRepo.Review(ctx, tx, requestID, reviewer.ID, status)
    if err != nil {
      return fmt.Errorf("Failed to review verification request: %w", err)
    }
    if rows == 0 {
      return ErrAlreadyClaimed
    }

    if err := vs.userRepo.SetVerificationStatus(ctx, tx, request.UserID, status); err != nil {
      return fmt.Errorf("Failed to update user verification status: %w", err)
    }

    n, err := vs.notifications.Emit(ctx, tx, request.UserID, nil, types.NotificationTypeVerificationComplete, nil, map[string]any{
      "request_id": request.ID,
      "status":     status,
    })
    if err != nil {
      return err
    }
    notification = n
    return nil
  })
  if err != nil {
    return err
  }

  vs.notifications.Push(ctx, notification)
  return nil
}
