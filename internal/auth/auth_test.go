package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-petro")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-petro" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
	if !CheckPasswordHash("s3cret-petro", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
	if CheckPasswordHash("s3cret-petro", "not-a-hash") {
		t.Error("garbage hash accepted")
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Error("empty context should carry no user ID")
	}

	want := uuid.New()
	ctx := context.WithValue(context.Background(), UserIDKey, want)
	got, ok := GetUserIDFromContext(ctx)
	if !ok || got != want {
		t.Errorf("GetUserIDFromContext = (%s, %v), want (%s, true)", got, ok, want)
	}
}
