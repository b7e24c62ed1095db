package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/normalization"
  "github.com/yungbote/ripple-backend/internal/redisbus"
  "github.com/yungbote/ripple-backend/internal/repos"
  "github.com/yungbote/ripple-backend/internal/requestdata"
  "github.com/yungbote/ripple-backend/internal/sse"
  "github.com/yungbote/ripple-backend/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
  GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
  UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error)
  UploadAvatarImage(ctx context.Context, raw []byte) (*types.User, error)
}

type userService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  avatarService AvatarService
  bus           redisbus.SSEBus
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService, bus redisbus.SSEBus) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    avatarService: avatarService,
    bus:           bus,
  }
}

func (us *userService) requireUserID(ctx context.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    us.log.Warn("Request data not set in context")
    return uuid.Nil, fmt.Errorf("request data not set in context")
  }
  if rd.UserID == uuid.Nil {
    us.log.Warn("User id not set in request data")
    return uuid.Nil, fmt.Errorf("user id not set in request data")
  }
  return rd.UserID, nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  userID, err := us.requireUserID(ctx)
  if err != nil {
    return nil, err
  }
  return us.GetUser(ctx, userID)
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("error fetching user: %w", err)
  }
  if len(found) == 0 || found[0] == nil {
    return nil, ErrNotFound
  }
  return found[0], nil
}

// UpdateName regenerates the initials avatar alongside the rename so the
// stored image never shows stale initials.
func (us *userService) UpdateName(ctx context.Context, firstName, lastName string) (*types.User, error) {
  userID, err := us.requireUserID(ctx)
  if err != nil {
    return nil, err
  }

  firstName = normalization.ParseName(firstName)
  lastName = normalization.ParseName(lastName)
  if firstName == "" || lastName == "" {
    return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
  }

  user, err := us.GetUser(ctx, userID)
  if err != nil {
    return nil, err
  }

  user.FirstName = firstName
  user.LastName = lastName

  err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := us.avatarService.CreateAndUploadUserAvatar(ctx, tx, user); err != nil {
      return fmt.Errorf("Failed to regenerate avatar: %w", err)
    }
    return us.userRepo.UpdateFields(ctx, tx, userID, map[string]interface{}{
      "first_name":        firstName,
      "last_name":         lastName,
      "avatar_bucket_key": user.AvatarBucketKey,
      "avatar_url":        user.AvatarURL,
    })
  })
  if err != nil {
    return nil, err
  }

  us.publishAvatarChanged(ctx, user)
  return user, nil
}

func (us *userService) UploadAvatarImage(ctx context.Context, raw []byte) (*types.User, error) {
  userID, err := us.requireUserID(ctx)
  if err != nil {
    return nil, err
  }
  if len(raw) == 0 {
    return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
  }

  user, err := us.GetUser(ctx, userID)
  if err != nil {
    return nil, err
  }

  err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := us.avatarService.CreateAndUploadUserAvatarFromImage(ctx, tx, user, raw); err != nil {
      return err
    }
    return us.userRepo.UpdateFields(ctx, tx, userID, map[string]interface{}{
      "avatar_bucket_key": user.AvatarBucketKey,
      "avatar_url":        user.AvatarURL,
    })
  })
  if err != nil {
    return nil, err
  }

  us.publishAvatarChanged(ctx, user)
  return user, nil
}

func (us *userService) publishAvatarChanged(ctx context.Context, user *types.User) {
  if us.bus == nil {
    return
  }
  msg := sse.SSEMessage{
    Channel: sse.UserChannel(user.ID),
    Event:   sse.SSEEventUserAvatarUpdated,
    Data: map[string]any{
      "user_id":    user.ID,
      "avatar_url": user.AvatarURL,
    },
  }
  if err := us.bus.Publish(ctx, msg); err != nil {
    us.log.Warn("Failed to publish avatar change", "error", err)
  }
}
