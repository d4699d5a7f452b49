package complaint

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/shared"
)

// Category classifies a complaint into a fixed set of issue types
type Category string

const (
	CategoryWater       Category = "Water"
	CategoryElectricity Category = "Electricity"
	CategoryRepair      Category = "Repair"
	CategoryPlumbing    Category = "Plumbing"
	CategorySecurity    Category = "Security"
	CategoryCleaning    Category = "Cleaning"
	CategoryOther       Category = "Other"
)

// IsValid checks if the category is one of the fixed set
func (c Category) IsValid() bool {
	switch c {
	case CategoryWater, CategoryElectricity, CategoryRepair, CategoryPlumbing,
		CategorySecurity, CategoryCleaning, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Status represents the handling state of a complaint
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusResolved
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Priority represents the urgency assigned to a complaint
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValid checks if the priority is a valid Priority
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Field length limits, counted in characters, not bytes
const (
	MaxSubjectLen     = 100
	MaxDescriptionLen = 500
	MaxAdminNoteLen   = 300
)

// Complaint represents a tenant-submitted issue report. Created by the
// tenant, mutated (status and admin note) only by an admin. Status
// transitions are not ordered; the admin may set any status at any time.
type Complaint struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	Category    Category
	Subject     string
	Description string
	Status      Status
	Priority    Priority
	AdminNote   string
	ResolvedAt  *time.Time
}

// NewComplaint creates a new pending complaint submitted by a tenant.
// Priority defaults to Medium when empty.
func NewComplaint(tenantID uuid.UUID, category Category, subject, description string, priority Priority) (*Complaint, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if category == "" || subject == "" || description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category, subject and description are required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is not valid")
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLen {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be Low, Medium or High")
	}

	return &Complaint{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		Category:    category,
		Subject:     subject,
		Description: description,
		Status:      StatusPending,
		Priority:    priority,
	}, nil
}

// SetStatus moves the complaint to a new status. Transitioning to Resolved
// stamps ResolvedAt; re-opening a resolved complaint retains the prior
// resolution time.
func (c *Complaint) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be Pending, In Progress or Resolved")
	}
	c.Status = status
	if status == StatusResolved {
		now := time.Now()
		c.ResolvedAt = &now
	}
	c.Touch()
	return nil
}

// SetAdminNote overwrites the admin's note
func (c *Complaint) SetAdminNote(note string) error {
	if utf8.RuneCountInString(note) > MaxAdminNoteLen {
		return shared.NewDomainError("INVALID_ADMIN_NOTE", "Admin note cannot exceed 300 characters")
	}
	c.AdminNote = note
	c.Touch()
	return nil
}

// IsResolved returns true if the complaint is in the Resolved status
func (c *Complaint) IsResolved() bool {
	return c.Status == StatusResolved
}
