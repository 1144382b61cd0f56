package model

import (
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldBookingType       = "booking_type"
	FieldGuestID           = "guest_id"
	FieldGuestName         = "guest_name"
	FieldGuestPhone        = "guest_phone"
	FieldRoomID            = "room_id"
	FieldCheckInDate       = "check_in_date"
	FieldCheckOutDate      = "check_out_date"
	FieldActualCheckIn     = "actual_check_in"
	FieldActualCheckOut    = "actual_check_out"
	FieldBookingSource     = "booking_source"
	FieldRoomRatePerNight  = "room_rate_per_night"
	FieldTotalNights       = "total_nights"
	FieldRoomCharges       = "room_charges"
	FieldAdditionalCharges = "additional_charges"
	FieldTotalAmount       = "total_amount"
	FieldAdvancePayment    = "advance_payment"
	FieldAmountPaid        = "amount_paid"
	FieldRefundedAmount    = "refunded_amount"
	FieldBalanceDue        = "balance_due"
	FieldPaymentStatus     = "payment_status"
	FieldPaymentMode       = "payment_mode"
	FieldStatus            = "status"
	FieldRoomNumber        = "room_number"
)

type Status string

const (
	StatusConfirmed  Status = "Confirmed"
	StatusCheckedIn  Status = "Checked In"
	StatusCheckedOut Status = "Checked Out"
	StatusCancelled  Status = "Cancelled"
	StatusNoShow     Status = "No Show"
)

var transitions = map[Status][]Status{
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut},
}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	}

	return false
}

// Blocking reports whether a booking in this status holds its room for its dates.
func (s Status) Blocking() bool {
	return s == StatusConfirmed || s == StatusCheckedIn || s == StatusCheckedOut
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Active reports whether the stay is still ahead or in progress.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// AcceptsServices reports whether extras may still be added to or removed from the booking.
func (s Status) AcceptsServices() bool {
	return s.Active()
}

func (s Status) Deletable() bool {
	return s == StatusCancelled || s == StatusCheckedOut || s == StatusNoShow
}

// Counted reports whether the booking contributes to revenue and guest history.
func (s Status) Counted() bool {
	return s != StatusCancelled && s != StatusNoShow
}

func BlockingStatuses() []Status {
	return []Status{StatusConfirmed, StatusCheckedIn, StatusCheckedOut}
}

func BlockingStatusValues() []string {
	statuses := BlockingStatuses()
	values := make([]string, len(statuses))

	for i, status := range statuses {
		values[i] = string(status)
	}

	return values
}

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "Unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentStatusPaid          PaymentStatus = "Paid"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusUnpaid, PaymentStatusPartiallyPaid, PaymentStatusPaid:
		return true
	}

	return false
}

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeCard         PaymentMode = "Card"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeCheque       PaymentMode = "Cheque"
)

func (p PaymentMode) Valid() bool {
	switch p {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard, PaymentModeBankTransfer, PaymentModeCheque:
		return true
	}

	return false
}

type Source string

const (
	SourceWalkIn         Source = "Walk-in"
	SourcePhone          Source = "Phone"
	SourceMakeMyTrip     Source = "OTA-MakeMyTrip"
	SourceBookingCom     Source = "OTA-Booking.com"
	SourceGoibibo        Source = "OTA-Goibibo"
	SourceAgoda          Source = "OTA-Agoda"
	SourceCorporate      Source = "Corporate"
	SourceRepeatCustomer Source = "Repeat Customer"
	SourceAgent          Source = "Agent"
	SourceOther          Source = "Other"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWalkIn, SourcePhone, SourceMakeMyTrip, SourceBookingCom, SourceGoibibo,
		SourceAgoda, SourceCorporate, SourceRepeatCustomer, SourceAgent, SourceOther:
		return true
	}

	return false
}

type Type string

const (
	TypeHotel Type = "Hotel"
	TypeEvent Type = "Event"
)

func (t Type) Valid() bool {
	return t == TypeHotel || t == TypeEvent
}

// Booking is a reservation of one room for the nights [CheckInDate, CheckOutDate).
// The monetary columns after RoomRatePerNight are derived and rewritten on every change.
type Booking struct {
	ID                string          `db:"id"`
	BookingType       Type            `db:"booking_type"`
	GuestID           *string         `db:"guest_id"`
	GuestName         string          `db:"guest_name"`
	GuestPhone        string          `db:"guest_phone"`
	GuestEmail        *string         `db:"guest_email"`
	GuestIDProof      *string         `db:"guest_id_proof"`
	RoomID            string          `db:"room_id"`
	CheckInDate       time.Time       `db:"check_in_date"`
	CheckOutDate      time.Time       `db:"check_out_date"`
	ActualCheckIn     *time.Time      `db:"actual_check_in"`
	ActualCheckOut    *time.Time      `db:"actual_check_out"`
	Adults            int             `db:"adults"`
	Children          int             `db:"children"`
	BookingSource     Source          `db:"booking_source"`
	BookingReference  *string         `db:"booking_reference"`
	RoomRatePerNight  decimal.Decimal `db:"room_rate_per_night"`
	TotalNights       int             `db:"total_nights"`
	RoomCharges       decimal.Decimal `db:"room_charges"`
	AdditionalCharges decimal.Decimal `db:"additional_charges"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	AdvancePayment    decimal.Decimal `db:"advance_payment"`
	AmountPaid        decimal.Decimal `db:"amount_paid"`
	RefundedAmount    decimal.Decimal `db:"refunded_amount"`
	BalanceDue        decimal.Decimal `db:"balance_due"`
	PaymentStatus     PaymentStatus   `db:"payment_status"`
	PaymentMode       *PaymentMode    `db:"payment_mode"`
	Status            Status          `db:"status"`
	SpecialRequests   *string         `db:"special_requests"`
	Notes             *string         `db:"notes"`
	RoomNumber        string          `db:"room_number"  table:"rooms"`
	RoomType          string          `db:"room_type"    table:"rooms"`
	FloorNumber       int             `db:"floor_number" table:"rooms"`
	model.Metadata
}

// ReleasedCheckOut is the check-out date a departure on day frees the room from. An early
// departure shortens the stay to day, keeping at least one night. Late departures keep the
// booked date.
func (b Booking) ReleasedCheckOut(day time.Time) time.Time {
	earliest := b.CheckInDate.AddDate(0, 0, 1)
	if day.Before(earliest) {
		day = earliest
	}

	if day.Before(b.CheckOutDate) {
		return day
	}

	return b.CheckOutDate
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN " + roomModel.TableName + " ON " + roomModel.TableName + ".id = " + TableName + ".room_id"
}
