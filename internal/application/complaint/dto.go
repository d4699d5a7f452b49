package complaint

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/complaint"
	"github.com/rentms/backend/internal/domain/identity"
)

// CreateComplaintRequest represents a tenant submitting a complaint
type CreateComplaintRequest struct {
	Category    string `json:"category" binding:"required,oneof=Water Electricity Repair Plumbing Security Cleaning Other"`
	Subject     string `json:"subject" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=1,max=500"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

// UpdateComplaintRequest represents an admin updating a complaint's
// handling state
type UpdateComplaintRequest struct {
	Status    *string `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Resolved"`
	AdminNote *string `json:"admin_note" binding:"omitempty,max=300"`
}

// ListComplaintsQuery narrows the admin complaint listing
type ListComplaintsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Pending 'In Progress' Resolved"`
}

// ComplaintResponse represents a complaint in API responses
type ComplaintResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	TenantName  string     `json:"tenant_name,omitempty"`
	TenantEmail string     `json:"tenant_email,omitempty"`
	TenantPhone string     `json:"tenant_phone,omitempty"`
	TenantUnit  string     `json:"tenant_unit,omitempty"`
	Category    string     `json:"category"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AdminNote   string     `json:"admin_note,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToComplaintResponse converts a domain complaint to its API representation
func ToComplaintResponse(c *complaint.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.GetID(),
		TenantID:    c.TenantID,
		Category:    c.Category.String(),
		Subject:     c.Subject,
		Description: c.Description,
		Status:      c.Status.String(),
		Priority:    string(c.Priority),
		AdminNote:   c.AdminNote,
		ResolvedAt:  c.ResolvedAt,
		CreatedAt:   c.GetCreatedAt(),
		UpdatedAt:   c.GetUpdatedAt(),
	}
}

func attachTenant(resp *ComplaintResponse, tenant *identity.User) {
	if tenant == nil {
		return
	}
	resp.TenantName = tenant.Name
	resp.TenantEmail = tenant.Email
	resp.TenantPhone = tenant.Phone
	resp.TenantUnit = tenant.Unit
}
