package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/complaint"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/rentms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormComplaintRepository implements ComplaintRepository using GORM
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository creates a new GormComplaintRepository
func NewGormComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// FindByID finds a complaint by its ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns complaints newest-created-first, optionally filtered by status
func (r *GormComplaintRepository) FindAll(ctx context.Context, status *complaint.Status) ([]complaint.Complaint, error) {
	var complaintModels []models.ComplaintModel
	query := r.db.WithContext(ctx).Model(&models.ComplaintModel{})
	if status != nil {
		query = query.Where("status = ?", status.String())
	}
	if err := query.Order("created_at DESC").Find(&complaintModels).Error; err != nil {
		return nil, err
	}
	complaints := make([]complaint.Complaint, len(complaintModels))
	for i, model := range complaintModels {
		complaints[i] = *model.ToDomain()
	}
	return complaints, nil
}

// FindByTenant returns a tenant's complaints, newest-created-first
func (r *GormComplaintRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]complaint.Complaint, error) {
	var complaintModels []models.ComplaintModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&complaintModels).Error; err != nil {
		return nil, err
	}
	complaints := make([]complaint.Complaint, len(complaintModels))
	for i, model := range complaintModels {
		complaints[i] = *model.ToDomain()
	}
	return complaints, nil
}

// Count counts all complaints
func (r *GormComplaintRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ComplaintModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnresolved counts complaints whose status is not Resolved
func (r *GormComplaintRepository) CountUnresolved(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ComplaintModel{}).
		Where("status <> ?", complaint.StatusResolved.String()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a complaint
func (r *GormComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	model := models.ComplaintModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteByTenant removes all complaints belonging to a tenant
func (r *GormComplaintRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.ComplaintModel{}, "tenant_id = ?", tenantID).Error
}

var _ complaint.ComplaintRepository = (*GormComplaintRepository)(nil)
