package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"openings/contexts/recruiting/application-service/domain/entities"
	domainerrors "openings/contexts/recruiting/application-service/domain/errors"
	"openings/contexts/recruiting/application-service/ports"

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

func (r *Repository) InsertResume(ctx context.Context, in ports.InsertResumeInput) (entities.Resume, error) {
	row := resumeModel{
		OwnerID:    in.OwnerID,
		Filename:   in.Filename,
		Blob:       in.Blob,
		CreateDate: in.CreateDate.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Resume{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetResume(ctx context.Context, id int64) (entities.Resume, error) {
	var row resumeModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Resume{}, domainerrors.ErrResumeNotFound
		}
		return entities.Resume{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListResumesByOwner(ctx context.Context, ownerID int64) ([]entities.Resume, error) {
	var rows []resumeModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Resume, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) InsertApplication(ctx context.Context, in ports.InsertApplicationInput) (entities.Application, error) {
	row := applicationModel{
		ResumeID:         in.ResumeID,
		OpeningID:        in.OpeningID,
		ApplicantID:      in.ApplicantID,
		CreateDate:       in.CreateDate.UTC(),
		Status:           string(entities.ApplicationStatusPosted),
		StatusChangeDate: in.CreateDate.UTC(),
		StatusChangerID:  in.ApplicantID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Application{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetApplication(ctx context.Context, id int64) (entities.Application, error) {
	var row applicationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Application{}, domainerrors.ErrApplicationNotFound
		}
		return entities.Application{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) TransitionApplication(ctx context.Context, id int64, from []entities.ApplicationStatus, to entities.ApplicationStatus, changerID int64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&applicationModel{}).
		Where("id = ? AND status IN ?", id, statusStrings(from)).
		Updates(map[string]any{
			"status":             string(to),
			"status_change_date": now.UTC(),
			"status_changer_id":  changerID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListApplicationsByApplicant(ctx context.Context, applicantID int64, status *entities.ApplicationStatus) ([]entities.Application, error) {
	query := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	var rows []applicationModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return applicationsToEntities(rows), nil
}

func (r *Repository) ListApplicationsForOpenings(ctx context.Context, openingIDs []int64, status *entities.ApplicationStatus) ([]entities.Application, error) {
	if len(openingIDs) == 0 {
		return []entities.Application{}, nil
	}
	query := r.db.WithContext(ctx).Where("opening_id IN ?", openingIDs)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	var rows []applicationModel
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return applicationsToEntities(rows), nil
}

type resumeModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID    int64     `gorm:"column:owner_id"`
	Filename   string    `gorm:"column:filename"`
	Blob       []byte    `gorm:"column:blob"`
	CreateDate time.Time `gorm:"column:create_date"`
}

func (resumeModel) TableName() string {
	return "openings_resumes"
}

func (m resumeModel) toEntity() entities.Resume {
	return entities.Resume{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Filename:   m.Filename,
		Blob:       m.Blob,
		CreateDate: m.CreateDate.UTC(),
	}
}

type applicationModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ResumeID         int64     `gorm:"column:resume_id"`
	OpeningID        int64     `gorm:"column:opening_id"`
	ApplicantID      int64     `gorm:"column:applicant_id"`
	CreateDate       time.Time `gorm:"column:create_date"`
	Status           string    `gorm:"column:status"`
	StatusChangeDate time.Time `gorm:"column:status_change_date"`
	StatusChangerID  int64     `gorm:"column:status_changer_id"`
}

func (applicationModel) TableName() string {
	return "openings_applications"
}

func (m applicationModel) toEntity() entities.Application {
	return entities.Application{
		ID:               m.ID,
		ResumeID:         m.ResumeID,
		OpeningID:        m.OpeningID,
		ApplicantID:      m.ApplicantID,
		CreateDate:       m.CreateDate.UTC(),
		Status:           entities.ApplicationStatus(m.Status),
		StatusChangeDate: m.StatusChangeDate.UTC(),
		StatusChangerID:  m.StatusChangerID,
	}
}

func applicationsToEntities(rows []applicationModel) []entities.Application {
	items := make([]entities.Application, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func statusStrings(statuses []entities.ApplicationStatus) []string {
	items := make([]string, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, string(status))
	}
	return items
}
