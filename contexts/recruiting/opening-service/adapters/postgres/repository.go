package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"openings/contexts/recruiting/opening-service/domain/entities"
	domainerrors "openings/contexts/recruiting/opening-service/domain/errors"
	"openings/contexts/recruiting/opening-service/ports"

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

func (r *Repository) InsertOpening(ctx context.Context, in ports.InsertOpeningInput) (entities.JobOpening, error) {
	row := openingModel{
		Title:            in.Title,
		Description:      in.Description,
		CompanyID:        in.CompanyID,
		CreateDate:       in.CreateDate.UTC(),
		CreatorID:        in.CreatorID,
		Status:           string(entities.OpeningStatusPosted),
		StatusChangeDate: in.CreateDate.UTC(),
		StatusChangerID:  in.CreatorID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.JobOpening{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetOpening(ctx context.Context, id int64) (entities.JobOpening, error) {
	var row openingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.JobOpening{}, domainerrors.ErrOpeningNotFound
		}
		return entities.JobOpening{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateOpening(ctx context.Context, id int64, in ports.UpdateOpeningInput) error {
	result := r.db.WithContext(ctx).
		Model(&openingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       in.Title,
			"description": in.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOpeningNotFound
	}
	return nil
}

func (r *Repository) CloseOpening(ctx context.Context, id int64, changerID int64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&openingModel{}).
		Where("id = ? AND status = ?", id, string(entities.OpeningStatusPosted)).
		Updates(map[string]any{
			"status":             string(entities.OpeningStatusClosed),
			"status_change_date": now.UTC(),
			"status_changer_id":  changerID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListOpenings(ctx context.Context, filter ports.ListFilter) ([]entities.JobOpening, error) {
	query := r.db.WithContext(ctx).Model(&openingModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}

	var rows []openingModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.JobOpening, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type openingModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description"`
	CompanyID        int64     `gorm:"column:company_id"`
	CreateDate       time.Time `gorm:"column:create_date"`
	CreatorID        int64     `gorm:"column:creator_id"`
	Status           string    `gorm:"column:status"`
	StatusChangeDate time.Time `gorm:"column:status_change_date"`
	StatusChangerID  int64     `gorm:"column:status_changer_id"`
}

func (openingModel) TableName() string {
	return "openings_job_openings"
}

func (m openingModel) toEntity() entities.JobOpening {
	return entities.JobOpening{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		CompanyID:        m.CompanyID,
		CreateDate:       m.CreateDate.UTC(),
		CreatorID:        m.CreatorID,
		Status:           entities.OpeningStatus(m.Status),
		StatusChangeDate: m.StatusChangeDate.UTC(),
		StatusChangerID:  m.StatusChangerID,
	}
}
