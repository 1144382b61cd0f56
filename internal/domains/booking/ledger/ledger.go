// Package ledger holds the pure booking arithmetic: stay length and overlap on half-open
// date ranges, the charge and balance fold, and the per-night revenue attribution used by
// the revenue endpoints and the dashboard.
package ledger

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared/money"
	"hotel/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least one night.
// A stay ending on day D never overlaps a stay starting on day D.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights is the number of nights between check-in and check-out, never negative.
func Nights(checkIn, checkOut time.Time) int {
	return max(timezone.DaysBetween(checkIn, checkOut), 0)
}

func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return money.Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

type Input struct {
	Rate     decimal.Decimal
	CheckIn  time.Time
	CheckOut time.Time
	Services []decimal.Decimal
	Advance  decimal.Decimal
	Payments []decimal.Decimal
	Refunded decimal.Decimal
}

type Result struct {
	Nights            int
	RoomCharges       decimal.Decimal
	AdditionalCharges decimal.Decimal
	Total             decimal.Decimal
	Paid              decimal.Decimal
	Balance           decimal.Decimal
	PaymentStatus     model.PaymentStatus
}

// Compute derives every monetary column of a booking from its primitives:
// paid = advance + payments - refunded and balance = total - paid.
func Compute(in Input) Result {
	nights := Nights(in.CheckIn, in.CheckOut)
	roomCharges := money.Round(in.Rate.Mul(decimal.NewFromInt(int64(nights))))
	additional := money.Sum(in.Services...)
	total := money.Round(roomCharges.Add(additional))
	paid := money.Round(in.Advance.Add(money.Sum(in.Payments...)).Sub(in.Refunded))

	return Result{
		Nights:            nights,
		RoomCharges:       roomCharges,
		AdditionalCharges: additional,
		Total:             total,
		Paid:              paid,
		Balance:           money.Round(total.Sub(paid)),
		PaymentStatus:     StatusOf(total, paid),
	}
}

// Overpaid reports whether more has been collected than is owed.
func (r Result) Overpaid() bool {
	return r.Paid.GreaterThan(r.Total)
}

// Fields renders the derived columns for a partial update.
func (r Result) Fields() map[string]any {
	return map[string]any{
		model.FieldTotalNights:       r.Nights,
		model.FieldRoomCharges:       r.RoomCharges,
		model.FieldAdditionalCharges: r.AdditionalCharges,
		model.FieldTotalAmount:       r.Total,
		model.FieldAmountPaid:        r.Paid,
		model.FieldBalanceDue:        r.Balance,
		model.FieldPaymentStatus:     r.PaymentStatus,
	}
}

func (r Result) ApplyTo(booking *model.Booking) {
	booking.TotalNights = r.Nights
	booking.RoomCharges = r.RoomCharges
	booking.AdditionalCharges = r.AdditionalCharges
	booking.TotalAmount = r.Total
	booking.AmountPaid = r.Paid
	booking.BalanceDue = r.Balance
	booking.PaymentStatus = r.PaymentStatus
}

// StatusOf classifies a balance: Paid once nothing is owed, Partially Paid when something
// was collected, Unpaid otherwise. A zero total is settled from the start.
func StatusOf(total, paid decimal.Decimal) model.PaymentStatus {
	switch {
	case !total.Sub(paid).IsPositive():
		return model.PaymentStatusPaid
	case paid.IsPositive():
		return model.PaymentStatusPartiallyPaid
	default:
		return model.PaymentStatusUnpaid
	}
}
