package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"openings/contexts/identity-access/identity-service/domain/entities"
	domainerrors "openings/contexts/identity-access/identity-service/domain/errors"
	"openings/contexts/identity-access/identity-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

// SystemClock satisfies ports.Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

func (r *Repository) InsertUser(ctx context.Context, input ports.InsertUserInput) (entities.User, error) {
	row := userModel{
		Username:         input.Username,
		Name:             input.Name,
		PasswordHash:     append([]byte(nil), input.PasswordHash...),
		HashAlgorithm:    input.HashAlgorithm,
		RegistrationDate: input.RegistrationDate.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrUsernameTaken
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUser(ctx context.Context, id int64) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetCredential(ctx context.Context, id int64) (ports.Credential, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Select("password_hash", "hash_algorithm").
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Credential{}, domainerrors.ErrUserNotFound
		}
		return ports.Credential{}, err
	}
	return ports.Credential{
		PasswordHash:  append([]byte(nil), row.PasswordHash...),
		HashAlgorithm: row.HashAlgorithm,
	}, nil
}

func (r *Repository) UpdateUser(ctx context.Context, id int64, username string, name string) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username": username,
			"name":     name,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrUsernameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) UpdateCredential(ctx context.Context, id int64, credential ports.Credential) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":  append([]byte(nil), credential.PasswordHash...),
			"hash_algorithm": credential.HashAlgorithm,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

type userModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username         string    `gorm:"column:username"`
	Name             string    `gorm:"column:name"`
	PasswordHash     []byte    `gorm:"column:password_hash"`
	HashAlgorithm    string    `gorm:"column:hash_algorithm"`
	RegistrationDate time.Time `gorm:"column:registration_date"`
}

func (userModel) TableName() string {
	return "openings_users"
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:               m.ID,
		Username:         m.Username,
		Name:             m.Name,
		RegistrationDate: m.RegistrationDate.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
