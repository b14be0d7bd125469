package ports

import (
	"context"
	"time"

	"openings/contexts/identity-access/identity-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Credential is the stored hash plus the algorithm tag it was computed with.
// Verification must dispatch on the stored tag, not on the current default.
type Credential struct {
	PasswordHash  []byte
	HashAlgorithm string
}

// CredentialHasher computes and verifies algorithm-tagged password hashes.
type CredentialHasher interface {
	Hash(secret string) ([]byte, string, error)
	Verify(secret string, hash []byte, algorithm string) (bool, error)
}

// InsertUserInput carries a validated registration row.
type InsertUserInput struct {
	Username         string
	Name             string
	PasswordHash     []byte
	HashAlgorithm    string
	RegistrationDate time.Time
}

// Repository is the persistence boundary for users and their credentials.
// InsertUser must surface a username uniqueness violation as
// domainerrors.ErrUsernameTaken.
type Repository interface {
	InsertUser(ctx context.Context, input InsertUserInput) (entities.User, error)
	GetUser(ctx context.Context, id int64) (entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetCredential(ctx context.Context, id int64) (Credential, error)
	UpdateUser(ctx context.Context, id int64, username string, name string) error
	UpdateCredential(ctx context.Context, id int64, credential Credential) error
	DeleteUser(ctx context.Context, id int64) error
}
