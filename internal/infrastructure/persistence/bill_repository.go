package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/rentms/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantAndPeriod finds a tenant's bill for a specific period
func (r *GormBillRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period string) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND period = ?", tenantID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns bills matching the filter, newest-created-first
func (r *GormBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	query = r.applyFilter(query, filter)

	if err := query.Order("created_at DESC").Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// FindByTenant returns a tenant's bills ordered by period descending
func (r *GormBillRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("period DESC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// SumTotalByStatus folds total_amount over all bills with the given status
func (r *GormBillRepository) SumTotalByStatus(ctx context.Context, status billing.BillStatus) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("status = ?", status.String()).
		Select("SUM(total_amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Save creates or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a bill by ID. Deleting a missing bill is not an error.
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.BillModel{}, "id = ?", id).Error
}

// DeleteByTenant removes all bills belonging to a tenant
func (r *GormBillRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.BillModel{}, "tenant_id = ?", tenantID).Error
}

func (r *GormBillRepository) applyFilter(query *gorm.DB, filter billing.BillFilter) *gorm.DB {
	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	return query
}

var _ billing.BillRepository = (*GormBillRepository)(nil)
