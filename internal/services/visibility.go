package services

import (
  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/types"
)

// ResolveVisibility decides whether viewerID may see post. It is the single
// source of truth for single-post reads; feed queries encode the same rules
// in SQL (see repos.PostRepo).
//
// The recipient's override, when set, replaces the author's privacy level.
// Under an author-set 'private' only the author sees the post; under an
// override of 'private' both author and recipient do. The asymmetry is
// intentional and pinned by tests: the recipient can never lock the author
// out of their own story, nor themselves out of a story about them.
func ResolveVisibility(post *types.Post, viewerID uuid.UUID) bool {
  if post == nil {
    return false
  }

  isAuthor := post.AuthorID != nil && *post.AuthorID == viewerID
  isRecipient := post.RecipientID != nil && *post.RecipientID == viewerID

  effective := post.PrivacyLevel
  overridden := post.RecipientVisibilityOverride != nil
  if overridden {
    effective = *post.RecipientVisibilityOverride
  }

  switch effective {
  case types.PrivacyPublic:
    return true
  case types.PrivacyPrivate:
    if overridden {
      return isAuthor || isRecipient
    }
    return isAuthor
  case types.PrivacyRecipientOnly:
    return isAuthor || isRecipient
  default:
    return false
  }
}
