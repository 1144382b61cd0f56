package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTableName  = "booking_payments"
	PaymentEntityName = "booking_payment"

	FieldPaymentBookingID   = "booking_id"
	FieldPaymentCollectedAt = "collected_at"
)

type Payment struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentMode *PaymentMode    `db:"payment_mode"`
	Notes       *string         `db:"notes"`
	CollectedAt time.Time       `db:"collected_at"`
	model.Metadata
}
