package postgresadapter

import (
	"context"
	"log/slog"

	"openings/contexts/identity-access/authorization-service/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) HasAdminGrant(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&adminGrantModel{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) CountAdminGrants(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&adminGrantModel{}).Count(&count).Error
	return count, err
}

func (r *Repository) InsertAdminGrant(ctx context.Context, userID int64) error {
	row := adminGrantModel{UserID: userID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) DeleteAdminGrant(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&adminGrantModel{}).
		Error
}

func (r *Repository) HasUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userPermissionModel{}).
		Where("user_id = ? AND permission = ?", userID, string(permission)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) InsertUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) error {
	row := userPermissionModel{UserID: userID, Permission: string(permission)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) DeleteUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND permission = ?", userID, string(permission)).
		Delete(&userPermissionModel{}).
		Error
}

func (r *Repository) ListUserPermissions(ctx context.Context, userID int64) ([]entities.UserPermission, error) {
	var rows []userPermissionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("permission ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.UserPermission, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.UserPermission(row.Permission))
	}
	return items, nil
}

type adminGrantModel struct {
	UserID int64 `gorm:"column:user_id;primaryKey"`
}

func (adminGrantModel) TableName() string {
	return "openings_admin_grants"
}

type userPermissionModel struct {
	UserID     int64  `gorm:"column:user_id;primaryKey"`
	Permission string `gorm:"column:permission;primaryKey"`
}

func (userPermissionModel) TableName() string {
	return "openings_user_permissions"
}
