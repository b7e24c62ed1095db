package services

import (
  "bytes"
  "context"
  "fmt"
  "image"
  "image/color"
  "os"
  "strings"
  "time"

  _ "image/jpeg"
  _ "image/png"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "github.com/google/uuid"
  "golang.org/x/image/draw"
  "golang.org/x/image/font"
  "gorm.io/gorm"

  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
)

type AvatarService interface {
  CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
  CreateAndUploadUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
  GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
  db            *gorm.DB
  log           *logger.Logger
  bucketService BucketService
  bgColors      []color.NRGBA
  fontFace      font.Face
}

// avatarPalette backs generated initials avatars; a user's color is picked
// deterministically from their id so regeneration is stable.
var avatarPalette = []color.NRGBA{
  {R: 0x2F, G: 0x80, B: 0xED, A: 0xFF},
  {R: 0x27, G: 0xAE, B: 0x60, A: 0xFF},
  {R: 0xEB, G: 0x57, B: 0x57, A: 0xFF},
  {R: 0x9B, G: 0x51, B: 0xE0, A: 0xFF},
  {R: 0xF2, G: 0x99, B: 0x4A, A: 0xFF},
  {R: 0x21, G: 0x96, B: 0xF3, A: 0xFF},
  {R: 0x00, G: 0x97, B: 0xA7, A: 0xFF},
  {R: 0x79, G: 0x55, B: 0x48, A: 0xFF},
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, bucketService BucketService) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  var face font.Face
  fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
  if fontPath == "" {
    serviceLog.Warn("Env var AVATAR_FONT is empty; avatars will render without initials")
  } else {
    serviceLog.Info("Loading avatar font", "font", fontPath)
    loaded, err := loadFontFace(fontPath, 206)
    if err != nil {
      return nil, fmt.Errorf("could not load avatar font: %w", err)
    }
    face = loaded
  }

  return &avatarService{
    db:            db,
    log:           serviceLog,
    bucketService: bucketService,
    bgColors:      avatarPalette,
    fontFace:      face,
  }, nil
}

func (as *avatarService) CreateAndUploadUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
  buf, err := as.GenerateUserAvatar(user)
  if err != nil {
    return err
  }

  oldKey := strings.TrimSpace(user.AvatarBucketKey)

  // Versioned key so CDN/browser caches never serve a stale avatar.
  newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

  if err := as.bucketService.UploadFile(ctx, newKey, bytes.NewReader(buf.Bytes())); err != nil {
    return fmt.Errorf("failed to upload user avatar: %w", err)
  }

  user.AvatarBucketKey = newKey
  user.AvatarURL = as.bucketService.GetPublicURL(newKey)

  if oldKey != "" && oldKey != newKey {
    if err := as.bucketService.DeleteFile(ctx, oldKey); err != nil {
      as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
    }
  }

  return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
  const size = 512

  dc := gg.NewContext(size, size)

  dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
  dc.Clip()

  base := as.pickColor(user.ID)
  dc.SetColor(base)
  dc.DrawRectangle(0, 0, float64(size), float64(size))
  dc.Fill()

  if as.fontFace != nil {
    initials := computeInitials(user.FirstName, user.LastName)

    dc.SetFontFace(as.fontFace)
    tw, th := dc.MeasureString(initials)
    cx, cy := float64(size)/2, float64(size)/2

    dc.SetColor(color.White)
    dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)
  }

  var buf bytes.Buffer
  if err := dc.EncodePNG(&buf); err != nil {
    return buf, fmt.Errorf("failed to encode PNG: %w", err)
  }
  return buf, nil
}

func (as *avatarService) CreateAndUploadUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
  if user == nil || user.ID == uuid.Nil {
    return fmt.Errorf("user required")
  }

  processed, err := processUploadedAvatar(raw, 512)
  if err != nil {
    return err
  }

  oldKey := strings.TrimSpace(user.AvatarBucketKey)

  newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

  if err := as.bucketService.UploadFile(ctx, newKey, bytes.NewReader(processed.Bytes())); err != nil {
    return fmt.Errorf("failed to upload user avatar: %w", err)
  }

  user.AvatarBucketKey = newKey
  user.AvatarURL = as.bucketService.GetPublicURL(newKey)

  if oldKey != "" && oldKey != newKey {
    if err := as.bucketService.DeleteFile(ctx, oldKey); err != nil {
      as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
    }
  }

  return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
  var out bytes.Buffer

  img, _, err := image.Decode(bytes.NewReader(raw))
  if err != nil {
    return out, fmt.Errorf("decode image: %w", err)
  }

  // Center-crop to square
  b := img.Bounds()
  w := b.Dx()
  h := b.Dy()
  side := w
  if h < w {
    side = h
  }
  x0 := b.Min.X + (w-side)/2
  y0 := b.Min.Y + (h-side)/2

  cropRect := image.Rect(0, 0, side, side)
  cropped := image.NewRGBA(cropRect)
  draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

  // Resize to NxN
  dst := image.NewRGBA(image.Rect(0, 0, size, size))
  draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

  // Circle clip with gg
  dc := gg.NewContext(size, size)
  dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
  dc.Clip()
  dc.DrawImage(dst, 0, 0)

  if err := dc.EncodePNG(&out); err != nil {
    return out, fmt.Errorf("encode png: %w", err)
  }

  return out, nil
}

func (as *avatarService) pickColor(id uuid.UUID) color.NRGBA {
  var sum int
  for _, b := range id {
    sum += int(b)
  }
  return as.bgColors[sum%len(as.bgColors)]
}

func computeInitials(first, last string) string {
  fInit := "?"
  if len(first) > 0 {
    fInit = strings.ToUpper(first[:1])
  }
  lInit := "?"
  if len(last) > 0 {
    lInit = strings.ToUpper(last[:1])
  }
  return fInit + lInit
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
  fontBytes, err := os.ReadFile(fontPath)
  if err != nil {
    return nil, fmt.Errorf("failed to read font file: %w", err)
  }
  parsedFont, err := truetype.Parse(fontBytes)
  if err != nil {
    return nil, fmt.Errorf("failed to parse TTF: %w", err)
  }
  face := truetype.NewFace(parsedFont, &truetype.Options{
    Size:    size,
    DPI:     72,
    Hinting: font.HintingNone,
  })
  return face, nil
}
