package userctx

import (
	"context"
	"testing"

	"github.com/fdg312/fitness-tracker/internal/owner"
)

func TestOwnerRoundTrip(t *testing.T) {
	ctx := WithOwner(context.Background(), owner.MustParse("alice"))

	got, ok := Owner(ctx)
	if !ok || got != "alice" {
		t.Fatalf("expected alice, got %q ok=%v", got, ok)
	}
}

func TestOwnerMissing(t *testing.T) {
	if _, ok := Owner(context.Background()); ok {
		t.Fatal("expected no owner in empty context")
	}
	if _, ok := Owner(WithOwner(context.Background(), "")); ok {
		t.Fatal("expected zero owner to be treated as missing")
	}
}

func TestUserIDIsSeparateFromOwner(t *testing.T) {
	ctx := WithUserID(context.Background(), "Alice")
	if _, ok := Owner(ctx); ok {
		t.Fatal("raw user id must not be visible as owner")
	}
	if id, _ := GetUserID(ctx); id != "Alice" {
		t.Fatalf("expected raw user id, got %q", id)
	}
}
