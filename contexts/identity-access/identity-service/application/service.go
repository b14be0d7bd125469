package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"openings/contexts/identity-access/identity-service/domain/entities"
	domainerrors "openings/contexts/identity-access/identity-service/domain/errors"
	"openings/contexts/identity-access/identity-service/ports"
)

// Service implements registration and self-service account operations.
// Every mutating operation except Register requires the caller to present
// the current credential.
type Service struct {
	Repo   ports.Repository
	Hasher ports.CredentialHasher
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) Register(ctx context.Context, username string, name string, password string) (entities.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return entities.User{}, err
	}
	if err := validateName(name); err != nil {
		return entities.User{}, err
	}

	hash, algorithm, err := s.Hasher.Hash(password)
	if err != nil {
		return entities.User{}, err
	}

	user, err := s.Repo.InsertUser(ctx, ports.InsertUserInput{
		Username:         username,
		Name:             name,
		PasswordHash:     hash,
		HashAlgorithm:    algorithm,
		RegistrationDate: s.now(),
	})
	if err != nil {
		return entities.User{}, err
	}

	s.logger().Info("user registered",
		"event", "identity_user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return user, nil
}

func (s Service) GetUser(ctx context.Context, id int64) (entities.User, error) {
	return s.Repo.GetUser(ctx, id)
}

func (s Service) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return entities.User{}, err
	}
	return s.Repo.GetUserByUsername(ctx, username)
}

func (s Service) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.Repo.ListUsers(ctx)
}

// VerifyPassword recomputes the hash with the algorithm stored on the row,
// which keeps old credentials verifiable after the default algorithm moves on.
func (s Service) VerifyPassword(ctx context.Context, id int64, password string) (bool, error) {
	credential, err := s.Repo.GetCredential(ctx, id)
	if err != nil {
		return false, err
	}
	return s.Hasher.Verify(password, credential.PasswordHash, credential.HashAlgorithm)
}

func (s Service) UpdateProfile(ctx context.Context, id int64, username string, name string, currentPassword string) error {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.requirePassword(ctx, id, currentPassword); err != nil {
		return err
	}
	return s.Repo.UpdateUser(ctx, id, username, name)
}

// UpdatePassword always re-hashes with the current default algorithm, so a
// password change is also the rotation point for the hash algorithm.
func (s Service) UpdatePassword(ctx context.Context, id int64, oldPassword string, newPassword string) error {
	if err := s.requirePassword(ctx, id, oldPassword); err != nil {
		return err
	}
	hash, algorithm, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateCredential(ctx, id, ports.Credential{
		PasswordHash:  hash,
		HashAlgorithm: algorithm,
	}); err != nil {
		return err
	}
	s.logger().Info("password updated",
		"event", "identity_password_updated",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", id,
	)
	return nil
}

func (s Service) DeleteUser(ctx context.Context, id int64, password string) error {
	if err := s.requirePassword(ctx, id, password); err != nil {
		return err
	}
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger().Info("user deleted",
		"event", "identity_user_deleted",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", id,
	)
	return nil
}

func (s Service) requirePassword(ctx context.Context, id int64, password string) error {
	ok, err := s.VerifyPassword(ctx, id, password)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrIncorrectPassword
	}
	return nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func validateUsername(username string) error {
	if username == "" {
		return domainerrors.ErrUsernameEmpty
	}
	if len([]rune(username)) > entities.UsernameMaxLen {
		return domainerrors.ErrUsernameTooLong
	}
	return nil
}

func validateName(name string) error {
	if len([]rune(name)) > entities.NameMaxLen {
		return domainerrors.ErrNameTooLong
	}
	return nil
}
