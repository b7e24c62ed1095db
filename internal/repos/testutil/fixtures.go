package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/ripple-backend/internal/types"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, firstName, lastName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, author *types.User, privacy types.PrivacyLevel) *types.Post {
	tb.Helper()
	p := &types.Post{
		ID:              uuid.New(),
		AuthorID:        &author.ID,
		AuthorFirstName: author.FirstName,
		Body:            "body",
		PrivacyLevel:    privacy,
		Anonymity:       types.AnonymityFullIdentity,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	return p
}

func SeedComment(tb testing.TB, ctx context.Context, tx *gorm.DB, postID, authorID uuid.UUID) *types.Comment {
	tb.Helper()
	c := &types.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Body:     "comment",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed comment: %v", err)
	}
	return c
}

func SeedPendingMatch(tb testing.TB, ctx context.Context, tx *gorm.DB, postID uuid.UUID, name string, email *string) *types.PendingRecipientMatch {
	tb.Helper()
	m := &types.PendingRecipientMatch{
		ID:             uuid.New(),
		PostID:         postID,
		RecipientName:  name,
		RecipientEmail: email,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed pending match: %v", err)
	}
	return m
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrString(v string) *string { return &v }

func PtrPrivacy(v types.PrivacyLevel) *types.PrivacyLevel { return &v }
