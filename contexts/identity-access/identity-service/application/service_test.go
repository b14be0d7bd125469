package application

import (
	"context"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"
	"time"

	"openings/contexts/identity-access/identity-service/adapters/crypto"
	"openings/contexts/identity-access/identity-service/adapters/memory"
	domainerrors "openings/contexts/identity-access/identity-service/domain/errors"
	"openings/contexts/identity-access/identity-service/ports"
)

func newService() (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Repo:   store,
		Hasher: crypto.Hasher{},
		Clock:  fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)},
	}
	return service, store
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		fullName string
		want     error
	}{
		{"empty username", "", "Alice", domainerrors.ErrUsernameEmpty},
		{"username too long", strings.Repeat("x", 31), "Alice", domainerrors.ErrUsernameTooLong},
		{"name too long", "alice", strings.Repeat("x", 256), domainerrors.ErrNameTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Register(ctx, tc.username, tc.fullName, "secret"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "Alice", "secret"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := service.Register(ctx, "alice", "Someone Else", "other"); !errors.Is(err, domainerrors.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "Alice", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	ok, err := service.VerifyPassword(ctx, user.ID, "secret")
	if err != nil || !ok {
		t.Fatalf("expected verification success, got ok=%v err=%v", ok, err)
	}
	ok, err = service.VerifyPassword(ctx, user.ID, "wrong")
	if err != nil {
		t.Fatalf("verify with wrong password errored: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestUpdatePasswordRequiresOldPassword(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "Alice", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := service.UpdatePassword(ctx, user.ID, "wrong", "next"); !errors.Is(err, domainerrors.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if err := service.UpdatePassword(ctx, user.ID, "secret", "next"); err != nil {
		t.Fatalf("update password failed: %v", err)
	}
	ok, err := service.VerifyPassword(ctx, user.ID, "next")
	if err != nil || !ok {
		t.Fatalf("new password did not verify: ok=%v err=%v", ok, err)
	}
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "Alice", "secret"); err != nil {
		t.Fatalf("register alice failed: %v", err)
	}
	bob, err := service.Register(ctx, "bob", "Bob", "secret")
	if err != nil {
		t.Fatalf("register bob failed: %v", err)
	}

	if err := service.UpdateProfile(ctx, bob.ID, "alice", "Bob", "secret"); !errors.Is(err, domainerrors.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestDeleteUserRequiresPassword(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "Alice", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := service.DeleteUser(ctx, user.ID, "wrong"); !errors.Is(err, domainerrors.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if err := service.DeleteUser(ctx, user.ID, "secret"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetUser(ctx, user.ID); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}

// A legacy sha256 row stays verifiable, and a password change rewrites it
// with the current default algorithm.
func TestHashAlgorithmRotation(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "Alice", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	sum := sha256.Sum256([]byte("legacy"))
	if err := store.UpdateCredential(ctx, user.ID, ports.Credential{
		PasswordHash:  sum[:],
		HashAlgorithm: crypto.AlgorithmSHA256,
	}); err != nil {
		t.Fatalf("seed legacy credential failed: %v", err)
	}

	ok, err := service.VerifyPassword(ctx, user.ID, "legacy")
	if err != nil || !ok {
		t.Fatalf("legacy hash did not verify: ok=%v err=%v", ok, err)
	}
	if err := service.UpdatePassword(ctx, user.ID, "legacy", "rotated"); err != nil {
		t.Fatalf("password change failed: %v", err)
	}
	credential, err := store.GetCredential(ctx, user.ID)
	if err != nil {
		t.Fatalf("get credential failed: %v", err)
	}
	if credential.HashAlgorithm != crypto.AlgorithmBcrypt {
		t.Fatalf("expected bcrypt after rotation, got %q", credential.HashAlgorithm)
	}
	ok, err = service.VerifyPassword(ctx, user.ID, "rotated")
	if err != nil || !ok {
		t.Fatalf("rotated credential did not verify: ok=%v err=%v", ok, err)
	}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }
