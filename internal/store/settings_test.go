package store

import (
	"context"
	"testing"

	"github.com/erazemk/omara/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestGetJWTSecret_SurvivesRestart(t *testing.T) {
	path := db.NewTestFile(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, db.OpenTestFile(t, path))
	if err != nil {
		t.Fatal(err)
	}
	second, err := GetJWTSecret(ctx, db.OpenTestFile(t, path))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("secret changed across restart: %q vs %q", first, second)
	}
}
