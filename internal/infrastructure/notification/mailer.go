package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Notifier delivers out-of-band notifications to tenants. Delivery is
// fire-and-forget: failures are logged, never returned, and never affect
// the operation that triggered the notification.
type Notifier interface {
	BillCreated(tenant *identity.User, bill *billing.Bill)
}

// SMTPNotifier sends notifications by email over SMTP
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPNotifier creates an SMTP-backed notifier
func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger.Named("notifier")}
}

// BillCreated emails the tenant about a newly generated bill. The send runs
// in a separate goroutine so the caller never blocks on SMTP.
func (n *SMTPNotifier) BillCreated(tenant *identity.User, bill *billing.Bill) {
	if tenant.Email == "" {
		return
	}

	subject := fmt.Sprintf("Rent bill for %s", bill.Period)
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nYour rent bill for %s has been generated.\r\n\r\n"+
			"Base rent: %s\r\nElectricity (%s units): %s\r\nTotal due: %s\r\n\r\n"+
			"Please log in to view the full bill.\r\n",
		tenant.Name, bill.Period,
		bill.BaseRent.String(), bill.UnitsConsumed.String(),
		bill.ElectricityAmount.String(), bill.TotalAmount.String(),
	)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("bill notification panicked",
					zap.Any("panic", r),
					zap.String("tenant_id", tenant.GetID().String()),
				)
			}
		}()
		if err := n.send(tenant.Email, subject, body); err != nil {
			n.logger.Warn("bill notification failed",
				zap.String("tenant_id", tenant.GetID().String()),
				zap.String("period", bill.Period),
				zap.Error(err),
			)
			return
		}
		n.logger.Info("bill notification sent",
			zap.String("tenant_id", tenant.GetID().String()),
			zap.String("period", bill.Period),
		)
	}()
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + n.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, n.cfg.From, []string{to}, []byte(msg))
}

var _ Notifier = (*SMTPNotifier)(nil)

// NopNotifier discards all notifications. Used when SMTP is not configured
// and in tests.
type NopNotifier struct{}

// NewNopNotifier creates a notifier that does nothing
func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

// BillCreated implements Notifier
func (n *NopNotifier) BillCreated(*identity.User, *billing.Bill) {}

var _ Notifier = (*NopNotifier)(nil)
