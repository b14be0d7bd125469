package memory

import (
	"context"
	"sort"
	"sync"

	"openings/contexts/identity-access/authorization-service/domain/entities"
)

type permissionKey struct {
	userID     int64
	permission entities.UserPermission
}

// Store is the in-memory repository used by tests and local development.
type Store struct {
	mu          sync.RWMutex
	adminGrants map[int64]struct{}
	permissions map[permissionKey]struct{}
}

func NewStore() *Store {
	return &Store{
		adminGrants: make(map[int64]struct{}),
		permissions: make(map[permissionKey]struct{}),
	}
}

func (s *Store) HasAdminGrant(ctx context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.adminGrants[userID]
	return ok, nil
}

func (s *Store) CountAdminGrants(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.adminGrants)), nil
}

func (s *Store) InsertAdminGrant(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminGrants[userID] = struct{}{}
	return nil
}

func (s *Store) DeleteAdminGrant(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.adminGrants, userID)
	return nil
}

func (s *Store) HasUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.permissions[permissionKey{userID: userID, permission: permission}]
	return ok, nil
}

func (s *Store) InsertUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions[permissionKey{userID: userID, permission: permission}] = struct{}{}
	return nil
}

func (s *Store) DeleteUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.permissions, permissionKey{userID: userID, permission: permission})
	return nil
}

func (s *Store) ListUserPermissions(ctx context.Context, userID int64) ([]entities.UserPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.UserPermission, 0)
	for key := range s.permissions {
		if key.userID == userID {
			items = append(items, key.permission)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items, nil
}

// PermissionCount reports the number of relation rows for one user and kind.
// Test helper for grant idempotence assertions.
func (s *Store) PermissionCount(userID int64, permission entities.UserPermission) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.permissions[permissionKey{userID: userID, permission: permission}]; ok {
		return 1
	}
	return 0
}
