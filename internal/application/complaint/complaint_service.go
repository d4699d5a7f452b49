package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/complaint"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/domain/shared"
)

// ComplaintService handles complaint submission and handling operations
type ComplaintService struct {
	complaintRepo complaint.ComplaintRepository
	userRepo      identity.UserRepository
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(complaintRepo complaint.ComplaintRepository, userRepo identity.UserRepository) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

// Create submits a new complaint on behalf of the given tenant
func (s *ComplaintService) Create(ctx context.Context, tenantID uuid.UUID, req CreateComplaintRequest) (*ComplaintResponse, error) {
	tenant, err := s.userRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsTenant() {
		return nil, shared.NewDomainError("INVALID_TENANT", "Only tenant accounts can submit complaints")
	}

	c, err := complaint.NewComplaint(
		tenantID,
		complaint.Category(req.Category),
		req.Subject,
		req.Description,
		complaint.Priority(req.Priority),
	)
	if err != nil {
		return nil, err
	}

	if err := s.complaintRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToComplaintResponse(c)
	attachTenant(&resp, tenant)
	return &resp, nil
}

// Get returns a single complaint by ID
func (s *ComplaintService) Get(ctx context.Context, id uuid.UUID) (*ComplaintResponse, error) {
	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToComplaintResponse(c)
	if tenant, err := s.userRepo.FindByID(ctx, c.TenantID); err == nil {
		attachTenant(&resp, tenant)
	}
	return &resp, nil
}

// Update applies an admin's status change and note to a complaint
func (s *ComplaintService) Update(ctx context.Context, id uuid.UUID, req UpdateComplaintRequest) (*ComplaintResponse, error) {
	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := c.SetStatus(complaint.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.AdminNote != nil {
		if err := c.SetAdminNote(*req.AdminNote); err != nil {
			return nil, err
		}
	}

	if err := s.complaintRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToComplaintResponse(c)
	return &resp, nil
}

// List returns complaints newest first, optionally filtered by status,
// with tenant info attached
func (s *ComplaintService) List(ctx context.Context, query ListComplaintsQuery) ([]ComplaintResponse, error) {
	var status *complaint.Status
	if query.Status != "" {
		st := complaint.Status(query.Status)
		status = &st
	}

	complaints, err := s.complaintRepo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenantsByID(ctx, complaints)
	if err != nil {
		return nil, err
	}

	responses := make([]ComplaintResponse, len(complaints))
	for i := range complaints {
		responses[i] = ToComplaintResponse(&complaints[i])
		if tenant, ok := tenants[complaints[i].TenantID]; ok {
			attachTenant(&responses[i], &tenant)
		}
	}
	return responses, nil
}

// ListForTenant returns a tenant's own complaints, newest first
func (s *ComplaintService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]ComplaintResponse, error) {
	complaints, err := s.complaintRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]ComplaintResponse, len(complaints))
	for i := range complaints {
		responses[i] = ToComplaintResponse(&complaints[i])
	}
	return responses, nil
}

func (s *ComplaintService) tenantsByID(ctx context.Context, complaints []complaint.Complaint) (map[uuid.UUID]identity.User, error) {
	seen := make(map[uuid.UUID]struct{}, len(complaints))
	ids := make([]uuid.UUID, 0, len(complaints))
	for i := range complaints {
		if _, ok := seen[complaints[i].TenantID]; ok {
			continue
		}
		seen[complaints[i].TenantID] = struct{}{}
		ids = append(ids, complaints[i].TenantID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]identity.User, len(users))
	for i := range users {
		byID[users[i].GetID()] = users[i]
	}
	return byID, nil
}
