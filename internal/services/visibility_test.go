package services

import (
  "testing"

  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/types"
)

func TestResolveVisibility(t *testing.T) {
  author := uuid.New()
  recipient := uuid.New()
  stranger := uuid.New()

  override := func(l types.PrivacyLevel) *types.PrivacyLevel { return &l }

  post := func(privacy types.PrivacyLevel, ov *types.PrivacyLevel) *types.Post {
    return &types.Post{
      ID:                          uuid.New(),
      AuthorID:                    &author,
      RecipientID:                 &recipient,
      PrivacyLevel:                privacy,
      RecipientVisibilityOverride: ov,
    }
  }

  cases := []struct {
    name   string
    post   *types.Post
    viewer uuid.UUID
    want   bool
  }{
    {"public visible to stranger", post(types.PrivacyPublic, nil), stranger, true},
    {"public visible to anonymous", post(types.PrivacyPublic, nil), uuid.Nil, true},

    {"private visible to author", post(types.PrivacyPrivate, nil), author, true},
    {"private hidden from recipient", post(types.PrivacyPrivate, nil), recipient, false},
    {"private hidden from stranger", post(types.PrivacyPrivate, nil), stranger, false},

    {"recipient_only visible to author", post(types.PrivacyRecipientOnly, nil), author, true},
    {"recipient_only visible to recipient", post(types.PrivacyRecipientOnly, nil), recipient, true},
    {"recipient_only hidden from stranger", post(types.PrivacyRecipientOnly, nil), stranger, false},

    {"override public opens a private post", post(types.PrivacyPrivate, override(types.PrivacyPublic)), stranger, true},
    {"override private keeps author", post(types.PrivacyPublic, override(types.PrivacyPrivate)), author, true},
    {"override private keeps recipient", post(types.PrivacyPublic, override(types.PrivacyPrivate)), recipient, true},
    {"override private hides from stranger", post(types.PrivacyPublic, override(types.PrivacyPrivate)), stranger, false},
    {"override recipient_only hides from stranger", post(types.PrivacyPublic, override(types.PrivacyRecipientOnly)), stranger, false},
    {"override recipient_only keeps recipient", post(types.PrivacyPublic, override(types.PrivacyRecipientOnly)), recipient, true},

    {"nil post invisible", nil, author, false},
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := ResolveVisibility(tc.post, tc.viewer); got != tc.want {
        t.Fatalf("ResolveVisibility = %v, want %v", got, tc.want)
      }
    })
  }
}

func TestResolveVisibilityDeletedAuthor(t *testing.T) {
  recipient := uuid.New()
  p := &types.Post{
    ID:           uuid.New(),
    AuthorID:     nil,
    RecipientID:  &recipient,
    PrivacyLevel: types.PrivacyRecipientOnly,
  }
  if !ResolveVisibility(p, recipient) {
    t.Fatalf("recipient should still see a recipient_only post after author deletion")
  }
  if ResolveVisibility(p, uuid.New()) {
    t.Fatalf("stranger should not see a recipient_only post")
  }
}
