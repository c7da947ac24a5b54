package anonymous

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndLookup(t *testing.T) {
	svc := New("secret", time.Hour)
	ctx := context.Background()

	token, guestID, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := uuid.Parse(guestID); err != nil {
		t.Fatalf("guest id is not a uuid: %q", guestID)
	}

	got, err := svc.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != guestID {
		t.Fatalf("expected %s, got %s", guestID, got)
	}
}

func TestLookupRejectsBadTokens(t *testing.T) {
	svc := New("secret", time.Hour)
	ctx := context.Background()

	token, _, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := New("other", time.Hour).Lookup(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
	if _, err := svc.Lookup(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	svc.tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Lookup(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestDefaultTTL(t *testing.T) {
	if got := New("secret", 0).AccessTTLSeconds(); got != 30*24*3600 {
		t.Fatalf("expected 30 days, got %d", got)
	}
}
