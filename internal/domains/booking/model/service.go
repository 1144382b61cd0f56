package model

import (
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ServiceTableName  = "booking_services"
	ServiceEntityName = "booking_service"

	FieldServiceBookingID = "booking_id"
	FieldServiceDate      = "service_date"
)

// Service is an extra charged to a booking, such as laundry or a taxi.
type Service struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	ServiceName string          `db:"service_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	ServiceDate time.Time       `db:"service_date"`
	Notes       *string         `db:"notes"`
	model.Metadata
}
