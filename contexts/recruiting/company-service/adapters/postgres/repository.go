package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"openings/contexts/recruiting/company-service/domain/entities"
	domainerrors "openings/contexts/recruiting/company-service/domain/errors"
	"openings/contexts/recruiting/company-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errAcceptLostRace aborts the accept transaction when the conditional
// status update matched no row, rolling the company insert back with it.
var errAcceptLostRace = errors.New("accept request lost transition race")

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

func (r *Repository) InsertRequest(ctx context.Context, companyName string, requesterID int64, now time.Time) (entities.CompanyCreationRequest, error) {
	row := requestModel{
		CompanyName:      companyName,
		RequesterID:      requesterID,
		RequestDate:      now.UTC(),
		Status:           string(entities.RequestStatusPosted),
		StatusChangeDate: now.UTC(),
		StatusChangerID:  requesterID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.CompanyCreationRequest{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetRequest(ctx context.Context, id int64) (entities.CompanyCreationRequest, error) {
	var row requestModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CompanyCreationRequest{}, domainerrors.ErrRequestNotFound
		}
		return entities.CompanyCreationRequest{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) HasPostedRequest(ctx context.Context, requesterID int64, companyName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("requester_id = ? AND company_name = ? AND status = ?",
			requesterID, companyName, string(entities.RequestStatusPosted)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) ListRequests(ctx context.Context) ([]entities.CompanyCreationRequest, error) {
	var rows []requestModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return requestsToEntities(rows), nil
}

func (r *Repository) ListRequestsByUser(ctx context.Context, requesterID int64) ([]entities.CompanyCreationRequest, error) {
	var rows []requestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return requestsToEntities(rows), nil
}

func (r *Repository) TransitionRequest(ctx context.Context, id int64, from []entities.RequestStatus, to entities.RequestStatus, changerID int64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&requestModel{}).
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

func (r *Repository) AcceptRequest(ctx context.Context, requestID int64, companyName string, requesterID int64, adminID int64, now time.Time) (ports.AcceptOutcome, error) {
	var outcome ports.AcceptOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := companyModel{Name: companyName, AdminUserID: requesterID}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		result := tx.Model(&requestModel{}).
			Where("id = ? AND status IN ?", requestID, []string{
				string(entities.RequestStatusPosted),
				string(entities.RequestStatusDenied),
			}).
			Updates(map[string]any{
				"status":             string(entities.RequestStatusAccepted),
				"status_change_date": now.UTC(),
				"status_changer_id":  adminID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errAcceptLostRace
		}

		outcome = ports.AcceptOutcome{Company: company.toEntity(), Transitioned: true}
		return nil
	})
	if errors.Is(err, errAcceptLostRace) {
		return ports.AcceptOutcome{}, nil
	}
	if err != nil {
		return ports.AcceptOutcome{}, err
	}
	return outcome, nil
}

func (r *Repository) GetCompany(ctx context.Context, id int64) (entities.Company, error) {
	var row companyModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Company{}, domainerrors.ErrCompanyNotFound
		}
		return entities.Company{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCompanyByName(ctx context.Context, name string) (entities.Company, error) {
	var row companyModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Company{}, domainerrors.ErrCompanyNotFound
		}
		return entities.Company{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	var rows []companyModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return companiesToEntities(rows), nil
}

func (r *Repository) ListCompaniesAdministeredBy(ctx context.Context, userID int64) ([]entities.Company, error) {
	var rows []companyModel
	if err := r.db.WithContext(ctx).
		Where("admin_user_id = ?", userID).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return companiesToEntities(rows), nil
}

func (r *Repository) HasCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&companyPermissionModel{}).
		Where("user_id = ? AND company_id = ? AND permission = ?",
			userID, companyID, string(permission)).
		Count(&count).
		Error
	return count > 0, err
}

func (r *Repository) InsertCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) error {
	row := companyPermissionModel{
		UserID:     userID,
		CompanyID:  companyID,
		Permission: string(permission),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}, {Name: "permission"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) DeleteCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ? AND permission = ?",
			userID, companyID, string(permission)).
		Delete(&companyPermissionModel{}).
		Error
}

func (r *Repository) ListCompanyPermissions(ctx context.Context, userID int64, companyID int64) ([]entities.CompanyPermission, error) {
	var rows []companyPermissionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Order("permission ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.CompanyPermission, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.CompanyPermission(row.Permission))
	}
	return items, nil
}

func (r *Repository) ListCompaniesWithPermission(ctx context.Context, userID int64, permission entities.CompanyPermission) ([]entities.Company, error) {
	var rows []companyModel
	if err := r.db.WithContext(ctx).
		Model(&companyModel{}).
		Joins("JOIN openings_company_permissions p ON p.company_id = openings_companies.id").
		Where("p.user_id = ? AND p.permission = ?", userID, string(permission)).
		Order("openings_companies.id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return companiesToEntities(rows), nil
}

type companyModel struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name"`
	AdminUserID int64  `gorm:"column:admin_user_id"`
}

func (companyModel) TableName() string {
	return "openings_companies"
}

func (m companyModel) toEntity() entities.Company {
	return entities.Company{ID: m.ID, Name: m.Name, AdminUserID: m.AdminUserID}
}

type requestModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CompanyName      string    `gorm:"column:company_name"`
	RequesterID      int64     `gorm:"column:requester_id"`
	RequestDate      time.Time `gorm:"column:request_date"`
	Status           string    `gorm:"column:status"`
	StatusChangeDate time.Time `gorm:"column:status_change_date"`
	StatusChangerID  int64     `gorm:"column:status_changer_id"`
}

func (requestModel) TableName() string {
	return "openings_company_requests"
}

func (m requestModel) toEntity() entities.CompanyCreationRequest {
	return entities.CompanyCreationRequest{
		ID:               m.ID,
		CompanyName:      m.CompanyName,
		RequesterID:      m.RequesterID,
		RequestDate:      m.RequestDate.UTC(),
		Status:           entities.RequestStatus(m.Status),
		StatusChangeDate: m.StatusChangeDate.UTC(),
		StatusChangerID:  m.StatusChangerID,
	}
}

type companyPermissionModel struct {
	UserID     int64  `gorm:"column:user_id;primaryKey"`
	CompanyID  int64  `gorm:"column:company_id;primaryKey"`
	Permission string `gorm:"column:permission;primaryKey"`
}

func (companyPermissionModel) TableName() string {
	return "openings_company_permissions"
}

func requestsToEntities(rows []requestModel) []entities.CompanyCreationRequest {
	items := make([]entities.CompanyCreationRequest, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func companiesToEntities(rows []companyModel) []entities.Company {
	items := make([]entities.Company, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func statusStrings(statuses []entities.RequestStatus) []string {
	items := make([]string, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, string(status))
	}
	return items
}
