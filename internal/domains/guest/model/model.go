package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/model"
	"hotel/shared/money"
	"hotel/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldCity     = "city"
)

type Guest struct {
	ID            string  `db:"id"`
	FullName      string  `db:"full_name"`
	Phone         string  `db:"phone"`
	Email         *string `db:"email"`
	IDProofType   *string `db:"id_proof_type"`
	IDProofNumber *string `db:"id_proof_number"`
	Address       *string `db:"address"`
	City          *string `db:"city"`
	State         *string `db:"state"`
	Country       *string `db:"country"`
	Pincode       *string `db:"pincode"`
	Preferences   *string `db:"preferences"`
	SpecialNotes  *string `db:"special_notes"`
	model.Metadata
}

// Stats are the stay statistics of a guest. They are never stored; Rollup derives them
// from the bookings each time a guest is read.
type Stats struct {
	TotalBookings int
	TotalSpent    decimal.Decimal
	FirstVisit    *time.Time
	LastVisit     *time.Time
}

// Rollup folds the bookings of one guest. Cancelled and no-show bookings are ignored.
func Rollup(bookings []bookingModel.Booking) Stats {
	stats := Stats{TotalSpent: decimal.Zero}
	spent := make([]decimal.Decimal, 0, len(bookings))

	for _, booking := range bookings {
		if !booking.Status.Counted() {
			continue
		}

		stats.TotalBookings++
		spent = append(spent, booking.TotalAmount)

		visit := timezone.DateOf(booking.CheckInDate)

		if stats.FirstVisit == nil || visit.Before(*stats.FirstVisit) {
			stats.FirstVisit = &visit
		}

		if stats.LastVisit == nil || visit.After(*stats.LastVisit) {
			stats.LastVisit = &visit
		}
	}

	stats.TotalSpent = money.Sum(spent...)

	return stats
}

// RollupByGuest groups bookings by guest id and rolls each group up.
// Bookings without a guest are skipped.
func RollupByGuest(bookings []bookingModel.Booking) map[string]Stats {
	grouped := make(map[string][]bookingModel.Booking)

	for _, booking := range bookings {
		if booking.GuestID == nil {
			continue
		}

		grouped[*booking.GuestID] = append(grouped[*booking.GuestID], booking)
	}

	stats := make(map[string]Stats, len(grouped))
	for guestID, group := range grouped {
		stats[guestID] = Rollup(group)
	}

	return stats
}
