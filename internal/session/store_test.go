package session

import (
	"context"
	"testing"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/storage"
)

func testUser(admin bool) model.UserProfile {
	return model.UserProfile{
		Email:     "anna.rossi@example.ch",
		FirstName: "Anna",
		LastName:  "Rossi",
		IsAdmin:   admin,
	}
}

func TestSetAndClearAuth(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := New(kv, "session:abc")

	if store.IsAuthenticated() || store.IsAdmin() {
		t.Fatalf("fresh store must be unauthenticated")
	}

	if err := store.SetAuth(ctx, "tok-123", testUser(true)); err != nil {
		t.Fatalf("SetAuth failed: %v", err)
	}
	if !store.IsAuthenticated() || !store.IsAdmin() {
		t.Fatalf("expected authenticated admin session")
	}
	if store.FullName() != "Anna Rossi" {
		t.Fatalf("unexpected full name %q", store.FullName())
	}

	if err := store.ClearAuth(ctx); err != nil {
		t.Fatalf("ClearAuth failed: %v", err)
	}
	if store.IsAuthenticated() || store.IsAdmin() || store.User() != nil {
		t.Fatalf("expected empty session after ClearAuth")
	}
	if _, err := kv.Get(ctx, "session:abc:token"); err != storage.ErrNotFound {
		t.Fatalf("expected token removed from storage, got %v", err)
	}
}

func TestIsAdminImpliesAuthenticated(t *testing.T) {
	ctx := context.Background()
	store := New(storage.NewMemory(), "session:x")

	if err := store.SetAuth(ctx, "tok", testUser(true)); err != nil {
		t.Fatalf("SetAuth failed: %v", err)
	}
	if store.IsAdmin() && !store.IsAuthenticated() {
		t.Fatalf("IsAdmin must imply IsAuthenticated")
	}
	if err := store.ClearAuth(ctx); err != nil {
		t.Fatalf("ClearAuth failed: %v", err)
	}
	if store.IsAdmin() {
		t.Fatalf("cleared session cannot be admin")
	}
}

func TestPersistedRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	first := New(kv, "session:r")
	if err := first.SetAuth(ctx, "tok-9", testUser(false)); err != nil {
		t.Fatalf("SetAuth failed: %v", err)
	}

	second := New(kv, "session:r")
	second.Load(ctx)
	if second.Token() != "tok-9" {
		t.Fatalf("expected token to survive reload, got %q", second.Token())
	}
	user := second.User()
	if user == nil || user.Email != "anna.rossi@example.ch" || user.IsAdmin {
		t.Fatalf("unexpected reloaded user: %+v", user)
	}
}

func TestMalformedPersistedUser(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	if err := kv.Set(ctx, "session:m:token", "tok-5"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := kv.Set(ctx, "session:m:user", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store := New(kv, "session:m")
	store.Load(ctx)
	if store.User() != nil {
		t.Fatalf("malformed user must load as absent")
	}
	if !store.IsAuthenticated() {
		t.Fatalf("token presence must still count as authenticated")
	}
	if store.IsAdmin() {
		t.Fatalf("absent user defaults to non-admin")
	}
}

func TestAnonymousStore(t *testing.T) {
	store := Anonymous()
	store.Load(context.Background())
	if store.IsAuthenticated() {
		t.Fatalf("anonymous store must be unauthenticated")
	}
	if err := store.SetAuth(context.Background(), "tok", testUser(false)); err == nil {
		t.Fatalf("expected SetAuth on anonymous store to fail")
	}
}
