package auth

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"storefront/internal/db/dbtest"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
)

func TestRegisterAndSignIn_Integration(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	repo := userrepo.NewPostgres(pool, log.New(os.Stdout, "[test] ", log.LstdFlags))
	svc := New(repo, tokenrepo.NewPostgres(pool), "integration-secret", time.Hour, nil)

	u, err := svc.Register(ctx, RegisterInput{Email: "integration@example.com", Password: "secret1", DisplayName: "Int"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, token, err := svc.SignIn(ctx, "INTEGRATION@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	current, err := svc.CurrentUser(ctx, token)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current.ID != u.ID || current.DisplayName != "Int" {
		t.Fatalf("unexpected current user %+v", current)
	}

	if err := svc.SignOut(ctx, token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := svc.CurrentUser(ctx, token); err == nil {
		t.Fatalf("expected revoked token to fail")
	}
}
