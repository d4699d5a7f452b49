package notification

import (
	"testing"

	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testBill(t *testing.T, tenant *identity.User) *billing.Bill {
	t.Helper()
	bill, err := billing.NewBill(tenant.GetID(), "2024-03",
		decimal.NewFromInt(1000), decimal.NewFromInt(100), decimal.NewFromInt(150), decimal.NewFromInt(10))
	require.NoError(t, err)
	return bill
}

func TestSMTPNotifier_SkipsTenantWithoutEmail(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPConfig{Host: "localhost", Port: 2525}, zap.NewNop())

	tenant, err := identity.NewTenant("John Doe", "john@example.com", "1234567890", "hash", "A-101", decimal.NewFromInt(1000))
	require.NoError(t, err)
	tenant.Email = ""

	// Must return without attempting delivery
	n.BillCreated(tenant, testBill(t, tenant))
}

func TestSMTPNotifier_SendErrorIsReturnedNotPanicked(t *testing.T) {
	// Port 1 is never an SMTP listener; the dial fails fast.
	n := NewSMTPNotifier(config.SMTPConfig{Host: "127.0.0.1", Port: 1, From: "noreply@rentms.local"}, zap.NewNop())

	err := n.send("john@example.com", "subject", "body")

	assert.Error(t, err)
}

func TestNopNotifier_DiscardsEverything(t *testing.T) {
	n := NewNopNotifier()

	tenant, err := identity.NewTenant("John Doe", "john@example.com", "1234567890", "hash", "A-101", decimal.NewFromInt(1000))
	require.NoError(t, err)

	n.BillCreated(tenant, testBill(t, tenant))
	n.BillCreated(nil, nil)
}
