package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for rent bills.
// One bill per tenant per period, enforced by a composite unique index.
type BillModel struct {
	BaseModel
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bills_tenant_period;index"`
	Period            string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_bills_tenant_period;index"`
	Year              int             `gorm:"not null;index"`
	BaseRent          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PreviousUnit      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentUnit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitsConsumed     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RatePerUnit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ElectricityAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	PaidDate          *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts BillModel to domain Bill
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseEntity:        m.BaseModel.ToDomain(),
		TenantID:          m.TenantID,
		Period:            m.Period,
		Year:              m.Year,
		BaseRent:          m.BaseRent,
		PreviousUnit:      m.PreviousUnit,
		CurrentUnit:       m.CurrentUnit,
		UnitsConsumed:     m.UnitsConsumed,
		RatePerUnit:       m.RatePerUnit,
		ElectricityAmount: m.ElectricityAmount,
		TotalAmount:       m.TotalAmount,
		Status:            billing.BillStatus(m.Status),
		PaidDate:          m.PaidDate,
		Notes:             m.Notes,
	}
}

// BillModelFromDomain converts domain Bill to BillModel
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{
		TenantID:          b.TenantID,
		Period:            b.Period,
		Year:              b.Year,
		BaseRent:          b.BaseRent,
		PreviousUnit:      b.PreviousUnit,
		CurrentUnit:       b.CurrentUnit,
		UnitsConsumed:     b.UnitsConsumed,
		RatePerUnit:       b.RatePerUnit,
		ElectricityAmount: b.ElectricityAmount,
		TotalAmount:       b.TotalAmount,
		Status:            b.Status.String(),
		PaidDate:          b.PaidDate,
		Notes:             b.Notes,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
