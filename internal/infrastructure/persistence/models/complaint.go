package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/complaint"
)

// ComplaintModel is the persistence model for tenant complaints
type ComplaintModel struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Category    string    `gorm:"type:varchar(50);not null"`
	Subject     string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(500);not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	Priority    string    `gorm:"type:varchar(20);not null"`
	AdminNote   string    `gorm:"type:varchar(300)"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (ComplaintModel) TableName() string {
	return "complaints"
}

// ToDomain converts ComplaintModel to domain Complaint
func (m *ComplaintModel) ToDomain() *complaint.Complaint {
	return &complaint.Complaint{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		Category:    complaint.Category(m.Category),
		Subject:     m.Subject,
		Description: m.Description,
		Status:      complaint.Status(m.Status),
		Priority:    complaint.Priority(m.Priority),
		AdminNote:   m.AdminNote,
		ResolvedAt:  m.ResolvedAt,
	}
}

// ComplaintModelFromDomain converts domain Complaint to ComplaintModel
func ComplaintModelFromDomain(c *complaint.Complaint) *ComplaintModel {
	m := &ComplaintModel{
		TenantID:    c.TenantID,
		Category:    c.Category.String(),
		Subject:     c.Subject,
		Description: c.Description,
		Status:      c.Status.String(),
		Priority:    string(c.Priority),
		AdminNote:   c.AdminNote,
		ResolvedAt:  c.ResolvedAt,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
