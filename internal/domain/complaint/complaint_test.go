package complaint

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestComplaint(t *testing.T) *Complaint {
	c, err := NewComplaint(uuid.New(), CategoryPlumbing, "Leaking tap", "The kitchen tap drips constantly", PriorityHigh)
	require.NoError(t, err)
	return c
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// Enum Tests
// ============================================

func TestCategory_IsValid(t *testing.T) {
	tests := []struct {
		category Category
		isValid  bool
	}{
		{CategoryWater, true},
		{CategoryElectricity, true},
		{CategoryRepair, true},
		{CategoryPlumbing, true},
		{CategorySecurity, true},
		{CategoryCleaning, true},
		{CategoryOther, true},
		{Category("Noise"), false},
		{Category(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.category.IsValid())
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusInProgress, true},
		{StatusResolved, true},
		{Status("Closed"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPriority_IsValid(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("Urgent").IsValid())
}

// ============================================
// NewComplaint Tests
// ============================================

func TestNewComplaint(t *testing.T) {
	tenantID := uuid.New()
	c, err := NewComplaint(tenantID, CategoryWater, "No hot water", "Boiler stopped working last night", PriorityHigh)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.GetID())
	assert.Equal(t, tenantID, c.TenantID)
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, PriorityHigh, c.Priority)
	assert.Empty(t, c.AdminNote)
	assert.Nil(t, c.ResolvedAt)
}

func TestNewComplaint_PriorityDefaultsToMedium(t *testing.T) {
	c, err := NewComplaint(uuid.New(), CategoryOther, "General issue", "Something is off", "")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, c.Priority)
}

func TestNewComplaint_Validation(t *testing.T) {
	tenantID := uuid.New()
	longSubject := strings.Repeat("s", MaxSubjectLen+1)
	longDescription := strings.Repeat("d", MaxDescriptionLen+1)

	tests := []struct {
		name        string
		tenantID    uuid.UUID
		category    Category
		subject     string
		description string
		priority    Priority
		wantCode    string
	}{
		{"empty tenant", uuid.Nil, CategoryWater, "s", "d", PriorityLow, "INVALID_TENANT"},
		{"empty subject", tenantID, CategoryWater, "", "d", PriorityLow, "INVALID_INPUT"},
		{"empty description", tenantID, CategoryWater, "s", "", PriorityLow, "INVALID_INPUT"},
		{"empty category", tenantID, "", "s", "d", PriorityLow, "INVALID_INPUT"},
		{"unknown category", tenantID, Category("Noise"), "s", "d", PriorityLow, "INVALID_CATEGORY"},
		{"subject too long", tenantID, CategoryWater, longSubject, "d", PriorityLow, "INVALID_SUBJECT"},
		{"description too long", tenantID, CategoryWater, "s", longDescription, PriorityLow, "INVALID_DESCRIPTION"},
		{"unknown priority", tenantID, CategoryWater, "s", "d", Priority("Urgent"), "INVALID_PRIORITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewComplaint(tt.tenantID, tt.category, tt.subject, tt.description, tt.priority)
			assertDomainCode(t, err, tt.wantCode)
		})
	}
}

func TestNewComplaint_LimitsCountCharactersNotBytes(t *testing.T) {
	tenantID := uuid.New()

	// Each rune is multiple bytes; exactly at the caps these must pass.
	subject := strings.Repeat("ñ", MaxSubjectLen)
	description := strings.Repeat("水", MaxDescriptionLen)

	c, err := NewComplaint(tenantID, CategoryWater, subject, description, PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, subject, c.Subject)

	_, err = NewComplaint(tenantID, CategoryWater, subject+"ñ", description, PriorityLow)
	assertDomainCode(t, err, "INVALID_SUBJECT")

	require.NoError(t, c.SetAdminNote(strings.Repeat("ü", MaxAdminNoteLen)))
	err = c.SetAdminNote(strings.Repeat("ü", MaxAdminNoteLen+1))
	assertDomainCode(t, err, "INVALID_ADMIN_NOTE")
}

// ============================================
// Complaint Mutation Tests
// ============================================

func TestComplaint_SetStatus(t *testing.T) {
	c := createTestComplaint(t)

	err := c.SetStatus(StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, c.Status)
	assert.Nil(t, c.ResolvedAt)

	err = c.SetStatus(StatusResolved)
	require.NoError(t, err)
	assert.True(t, c.IsResolved())
	require.NotNil(t, c.ResolvedAt)
}

func TestComplaint_SetStatus_ReopenKeepsResolvedAt(t *testing.T) {
	c := createTestComplaint(t)

	require.NoError(t, c.SetStatus(StatusResolved))
	resolvedAt := c.ResolvedAt
	require.NotNil(t, resolvedAt)

	require.NoError(t, c.SetStatus(StatusPending))
	assert.False(t, c.IsResolved())
	assert.Equal(t, resolvedAt, c.ResolvedAt)
}

func TestComplaint_SetStatus_Invalid(t *testing.T) {
	c := createTestComplaint(t)
	err := c.SetStatus(Status("Closed"))
	assertDomainCode(t, err, "INVALID_STATUS")
	assert.Equal(t, StatusPending, c.Status)
}

func TestComplaint_SetAdminNote(t *testing.T) {
	c := createTestComplaint(t)

	require.NoError(t, c.SetAdminNote("Plumber scheduled for Monday"))
	assert.Equal(t, "Plumber scheduled for Monday", c.AdminNote)

	err := c.SetAdminNote(strings.Repeat("n", MaxAdminNoteLen+1))
	assertDomainCode(t, err, "INVALID_ADMIN_NOTE")
}
