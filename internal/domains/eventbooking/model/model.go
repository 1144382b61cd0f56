package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "event_bookings"
	EntityName = "event_booking"

	ServiceTableName  = "event_services"
	ServiceEntityName = "event_service"

	CustomerPaymentTableName  = "event_customer_payments"
	CustomerPaymentEntityName = "event_customer_payment"

	VendorPaymentTableName  = "event_vendor_payments"
	VendorPaymentEntityName = "event_vendor_payment"

	FieldID             = "id"
	FieldBookingName    = "booking_name"
	FieldBookingDate    = "booking_date"
	FieldContactName    = "contact_name"
	FieldContactPhone   = "contact_phone"
	FieldStatus         = "status"
	FieldEventBookingID = "event_booking_id"
	FieldEventServiceID = "event_service_id"
	FieldPaymentDate    = "payment_date"
	FieldCustomerPrice  = "customer_price"
	FieldVendorCost     = "vendor_cost"
)

// CollapseAfterDays is how long after its date an event is still shown expanded.
const CollapseAfterDays = 3

type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// AcceptsChanges reports whether services and payments may still be added.
func (s Status) AcceptsChanges() bool {
	return s != StatusCancelled
}

func (s Status) Deletable() bool {
	return s == StatusCancelled
}

type ServiceType string

const (
	ServiceMarriageGarden ServiceType = "Marriage Garden"
	ServiceRooms          ServiceType = "Rooms"
	ServiceTenting        ServiceType = "Tenting"
	ServiceElectricity    ServiceType = "Electricity"
	ServiceGenerator      ServiceType = "Generator"
	ServiceLabour         ServiceType = "Labour"
	ServiceEventServices  ServiceType = "Event Services"
	ServiceCustom         ServiceType = "Custom"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceMarriageGarden, ServiceRooms, ServiceTenting, ServiceElectricity,
		ServiceGenerator, ServiceLabour, ServiceEventServices, ServiceCustom:
		return true
	}

	return false
}

type EventBooking struct {
	ID           string    `db:"id"`
	BookingName  string    `db:"booking_name"`
	BookingDate  time.Time `db:"booking_date"`
	ContactName  string    `db:"contact_name"`
	ContactPhone string    `db:"contact_phone"`
	ContactEmail *string   `db:"contact_email"`
	Status       Status    `db:"status"`
	Notes        *string   `db:"notes"`
	model.Metadata
}

// Collapsed reports whether the event lies more than CollapseAfterDays in the past.
func (e EventBooking) Collapsed(today time.Time) bool {
	return today.Sub(e.BookingDate) > CollapseAfterDays*24*time.Hour
}

// Service is one priced part of an event, such as tenting or catering, with the
// vendor that provides it.
type Service struct {
	ID                string          `db:"id"`
	EventBookingID    string          `db:"event_booking_id"`
	ServiceType       ServiceType     `db:"service_type"`
	CustomServiceName *string         `db:"custom_service_name"`
	CustomerPrice     decimal.Decimal `db:"customer_price"`
	VendorCost        decimal.Decimal `db:"vendor_cost"`
	VendorName        *string         `db:"vendor_name"`
	Notes             *string         `db:"notes"`
	model.Metadata
}

type CustomerPayment struct {
	ID             string                    `db:"id"`
	EventBookingID string                    `db:"event_booking_id"`
	PaymentDate    time.Time                 `db:"payment_date"`
	Amount         decimal.Decimal           `db:"amount"`
	PaymentMode    *bookingModel.PaymentMode `db:"payment_mode"`
	Notes          *string                   `db:"notes"`
	model.Metadata
}

type VendorPayment struct {
	ID             string                    `db:"id"`
	EventServiceID string                    `db:"event_service_id"`
	PaymentDate    time.Time                 `db:"payment_date"`
	Amount         decimal.Decimal           `db:"amount"`
	PaymentMode    *bookingModel.PaymentMode `db:"payment_mode"`
	Notes          *string                   `db:"notes"`
	model.Metadata
}
