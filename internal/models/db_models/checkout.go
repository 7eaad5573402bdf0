package db_models

import "gorm.io/datatypes"

type CheckoutStatus string

const (
	CheckoutPending CheckoutStatus = "pending"
	CheckoutPaid    CheckoutStatus = "paid"
	CheckoutFailed  CheckoutStatus = "failed"
)

// Checkout records a hand-off to the payment provider.
type Checkout struct {
	BaseModel
	SessionID   string `gorm:"index"`
	Email       string
	PlanCode    string         `gorm:"index"`
	AmountMinor int64          // 3700 = R$37.00
	Currency    string         `gorm:"size:3"`
	Status      CheckoutStatus `gorm:"index"`

	Provider      string `gorm:"index"`
	ProviderTxnID string `gorm:"uniqueIndex"` // idempotency across webhooks
	PaymentURL    string
	PaidAt        *int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
