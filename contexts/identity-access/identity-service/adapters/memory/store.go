package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"openings/contexts/identity-access/identity-service/domain/entities"
	domainerrors "openings/contexts/identity-access/identity-service/domain/errors"
	"openings/contexts/identity-access/identity-service/ports"
)

type userRow struct {
	user       entities.User
	credential ports.Credential
}

// Store is the in-memory repository used by tests and local development.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]userRow
	sequence int64
}

func NewStore() *Store {
	return &Store{users: make(map[int64]userRow)}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) InsertUser(ctx context.Context, input ports.InsertUserInput) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.users {
		if row.user.Username == input.Username {
			return entities.User{}, domainerrors.ErrUsernameTaken
		}
	}

	s.sequence++
	user := entities.User{
		ID:               s.sequence,
		Username:         input.Username,
		Name:             input.Name,
		RegistrationDate: input.RegistrationDate.UTC(),
	}
	s.users[user.ID] = userRow{
		user: user,
		credential: ports.Credential{
			PasswordHash:  append([]byte(nil), input.PasswordHash...),
			HashAlgorithm: input.HashAlgorithm,
		},
	}
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.users[id]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return row.user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.users {
		if row.user.Username == username {
			return row.user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.users))
	for _, row := range s.users {
		items = append(items, row.user)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetCredential(ctx context.Context, id int64) (ports.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.users[id]
	if !ok {
		return ports.Credential{}, domainerrors.ErrUserNotFound
	}
	return ports.Credential{
		PasswordHash:  append([]byte(nil), row.credential.PasswordHash...),
		HashAlgorithm: row.credential.HashAlgorithm,
	}, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, username string, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[id]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.user.Username == username {
			return domainerrors.ErrUsernameTaken
		}
	}
	row.user.Username = username
	row.user.Name = name
	s.users[id] = row
	return nil
}

func (s *Store) UpdateCredential(ctx context.Context, id int64, credential ports.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[id]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	row.credential = ports.Credential{
		PasswordHash:  append([]byte(nil), credential.PasswordHash...),
		HashAlgorithm: credential.HashAlgorithm,
	}
	s.users[id] = row
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}
