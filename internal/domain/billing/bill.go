package billing

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus represents the payment status of a rent bill
type BillStatus string

const (
	BillStatusUnpaid BillStatus = "Unpaid"
	BillStatusPaid   BillStatus = "Paid"
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusUnpaid || s == BillStatusPaid
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// DefaultRatePerUnit is the electricity rate applied when none is configured.
var DefaultRatePerUnit = decimal.NewFromInt(10)

// ParsePeriod validates a "YYYY-MM" billing period key and returns its year.
func ParsePeriod(period string) (int, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil || len(period) != 7 {
		return 0, shared.NewDomainError("INVALID_PERIOD", "Period must be in YYYY-MM format")
	}
	return t.Year(), nil
}

// CurrentPeriod returns the period key for the given time.
func CurrentPeriod(now time.Time) string {
	return now.Format("2006-01")
}

// DeriveAmounts computes the derived charge fields from the raw inputs.
// A meter rollback (current < previous) yields zero consumption, never a
// negative one.
func DeriveAmounts(baseRent, previousUnit, currentUnit, ratePerUnit decimal.Decimal) (unitsConsumed, electricityAmount, totalAmount decimal.Decimal) {
	unitsConsumed = currentUnit.Sub(previousUnit)
	if unitsConsumed.IsNegative() {
		unitsConsumed = decimal.Zero
	}
	electricityAmount = unitsConsumed.Mul(ratePerUnit)
	totalAmount = baseRent.Add(electricityAmount)
	return unitsConsumed, electricityAmount, totalAmount
}

// Bill represents one tenant's rent charge for one billing period.
// The derived fields (UnitsConsumed, ElectricityAmount, TotalAmount) are
// recomputed from the base fields before every persist and are never
// accepted as input.
type Bill struct {
	shared.BaseEntity
	TenantID          uuid.UUID
	Period            string // "YYYY-MM"
	Year              int
	BaseRent          decimal.Decimal
	PreviousUnit      decimal.Decimal
	CurrentUnit       decimal.Decimal
	UnitsConsumed     decimal.Decimal
	RatePerUnit       decimal.Decimal
	ElectricityAmount decimal.Decimal
	TotalAmount       decimal.Decimal
	Status            BillStatus
	PaidDate          *time.Time
	Notes             string
}

// NewBill creates a new unpaid bill for a tenant and period
func NewBill(tenantID uuid.UUID, period string, baseRent, previousUnit, currentUnit, ratePerUnit decimal.Decimal) (*Bill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	year, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if baseRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BASE_RENT", "Base rent cannot be negative")
	}
	if ratePerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate per unit cannot be negative")
	}

	b := &Bill{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		Period:       period,
		Year:         year,
		BaseRent:     baseRent,
		PreviousUnit: previousUnit,
		CurrentUnit:  currentUnit,
		RatePerUnit:  ratePerUnit,
		Status:       BillStatusUnpaid,
	}
	b.Recalculate()
	return b, nil
}

// Recalculate recomputes the derived charge fields from the base fields.
// Called unconditionally before every persist.
func (b *Bill) Recalculate() {
	b.UnitsConsumed, b.ElectricityAmount, b.TotalAmount = DeriveAmounts(b.BaseRent, b.PreviousUnit, b.CurrentUnit, b.RatePerUnit)
}

// SetReadings overwrites the provided meter readings. Nil leaves the
// corresponding field untouched. Derived fields are recomputed either way.
func (b *Bill) SetReadings(previousUnit, currentUnit *decimal.Decimal) {
	if previousUnit != nil {
		b.PreviousUnit = *previousUnit
	}
	if currentUnit != nil {
		b.CurrentUnit = *currentUnit
	}
	b.Recalculate()
	b.Touch()
}

// SetStatus transitions the bill between Paid and Unpaid. Transitioning to
// Paid stamps PaidDate with the current time; transitioning to Unpaid clears
// it. Setting the same status again is a no-op beyond the timestamp.
func (b *Bill) SetStatus(status BillStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be Paid or Unpaid")
	}
	b.Status = status
	if status == BillStatusPaid {
		now := time.Now()
		b.PaidDate = &now
	} else {
		b.PaidDate = nil
	}
	b.Touch()
	return nil
}

// SetNotes overwrites the free-text notes verbatim
func (b *Bill) SetNotes(notes string) {
	b.Notes = notes
	b.Touch()
}

// IsPaid returns true if the bill has been settled
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// PeriodYear extracts the year component of a period key without full
// validation. Used by read paths that trust persisted data.
func PeriodYear(period string) int {
	if len(period) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(period[:4])
	return year
}
