package ledger

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared/money"
	"hotel/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

// Stay is the part of a booking revenue attribution needs.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Total    decimal.Decimal
	Paid     decimal.Decimal
}

// StayOf takes the dates and money of booking.
func StayOf(booking model.Booking) Stay {
	return Stay{
		CheckIn:  booking.CheckInDate,
		CheckOut: booking.CheckOutDate,
		Total:    booking.TotalAmount,
		Paid:     booking.AmountPaid,
	}
}

// WindowShare is the part of a stay that falls inside a reporting window.
type WindowShare struct {
	Revenue    decimal.Decimal
	Collected  decimal.Decimal
	Pending    decimal.Decimal
	RoomNights int
}

type Day struct {
	Date          time.Time
	Revenue       decimal.Decimal
	BookingsCount int
	RoomNights    int
}

// NightlyShares splits amount evenly over nights. Each share is rounded to cents and the
// last night absorbs the remainder, so the shares always sum to amount.
func NightlyShares(amount decimal.Decimal, nights int) []decimal.Decimal {
	if nights <= 0 {
		return nil
	}

	shares := make([]decimal.Decimal, nights)
	share := money.Round(amount.Div(decimal.NewFromInt(int64(nights))))
	allocated := decimal.Zero

	for i := range nights - 1 {
		shares[i] = share
		allocated = allocated.Add(share)
	}

	shares[nights-1] = money.Round(amount.Sub(allocated))

	return shares
}

// RevenueInWindow attributes the nights of stay that fall on dates within [from, to].
func RevenueInWindow(stay Stay, from, to time.Time) WindowShare {
	nights := Nights(stay.CheckIn, stay.CheckOut)
	revenueShares := NightlyShares(stay.Total, nights)
	paidShares := NightlyShares(stay.Paid, nights)

	result := WindowShare{Revenue: decimal.Zero, Collected: decimal.Zero, Pending: decimal.Zero}

	for i := range nights {
		night := stay.CheckIn.AddDate(0, 0, i)
		if night.Before(from) || night.After(to) {
			continue
		}

		result.Revenue = result.Revenue.Add(revenueShares[i])
		result.Collected = result.Collected.Add(paidShares[i])
		result.RoomNights++
	}

	result.Revenue = money.Round(result.Revenue)
	result.Collected = money.Round(result.Collected)
	result.Pending = money.NonNegative(money.Round(result.Revenue.Sub(result.Collected)))

	return result
}

// DailyRevenue returns one entry per date in [from, to]. Revenue and room nights come from
// the nightly shares; a booking is counted on its check-in date.
func DailyRevenue(stays []Stay, from, to time.Time) []Day {
	if to.Before(from) {
		return []Day{}
	}

	days := make([]Day, 0, Nights(from, to)+1)
	index := make(map[time.Time]int)

	from, to = timezone.DateOf(from), timezone.DateOf(to)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		index[date] = len(days)
		days = append(days, Day{Date: date, Revenue: decimal.Zero})
	}

	for _, stay := range stays {
		checkIn := timezone.DateOf(stay.CheckIn)

		if i, ok := index[checkIn]; ok {
			days[i].BookingsCount++
		}

		nights := Nights(stay.CheckIn, stay.CheckOut)
		shares := NightlyShares(stay.Total, nights)

		for n := range nights {
			i, ok := index[checkIn.AddDate(0, 0, n)]
			if !ok {
				continue
			}

			days[i].Revenue = days[i].Revenue.Add(shares[n])
			days[i].RoomNights++
		}
	}

	return days
}
