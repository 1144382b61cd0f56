package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/guest/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TopGuestsByBookings = "bookings"
	TopGuestsBySpent    = "spent"
)

type CreateGuestRequest struct {
	FullName      string  `json:"full_name"       validate:"required,min=1,max=200"`
	Phone         string  `json:"phone"           validate:"required,min=10,max=20"`
	Email         *string `json:"email"           validate:"omitempty,email,max=200"`
	IDProofType   *string `json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber *string `json:"id_proof_number" validate:"omitempty,max=50"`
	Address       *string `json:"address"`
	City          *string `json:"city"            validate:"omitempty,max=100"`
	State         *string `json:"state"           validate:"omitempty,max=100"`
	Country       *string `json:"country"         validate:"omitempty,max=100"`
	Pincode       *string `json:"pincode"         validate:"omitempty,max=20"`
	Preferences   *string `json:"preferences"`
	SpecialNotes  *string `json:"special_notes"`
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	now := timezone.Now()

	return model.Guest{
		ID:            uuid.NewString(),
		FullName:      strings.TrimSpace(c.FullName),
		Phone:         strings.TrimSpace(c.Phone),
		Email:         c.Email,
		IDProofType:   c.IDProofType,
		IDProofNumber: c.IDProofNumber,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		Pincode:       c.Pincode,
		Preferences:   c.Preferences,
		SpecialNotes:  c.SpecialNotes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateGuestRequest struct {
	FullName      *string `db:"full_name"       json:"full_name"       validate:"omitempty,min=1,max=200"`
	Phone         *string `db:"phone"           json:"phone"           validate:"omitempty,min=10,max=20"`
	Email         *string `db:"email"           json:"email"           validate:"omitempty,email,max=200"`
	IDProofType   *string `db:"id_proof_type"   json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber *string `db:"id_proof_number" json:"id_proof_number" validate:"omitempty,max=50"`
	Address       *string `db:"address"         json:"address"`
	City          *string `db:"city"            json:"city"            validate:"omitempty,max=100"`
	State         *string `db:"state"           json:"state"           validate:"omitempty,max=100"`
	Country       *string `db:"country"         json:"country"         validate:"omitempty,max=100"`
	Pincode       *string `db:"pincode"         json:"pincode"         validate:"omitempty,max=20"`
	Preferences   *string `db:"preferences"     json:"preferences"`
	SpecialNotes  *string `db:"special_notes"   json:"special_notes"`
}

// ListGuestsRequest carries the aggregate filters. Text filters travel as a FilterGroup.
type ListGuestsRequest struct {
	MinBookings int              `json:"min_bookings"`
	MinSpent    *decimal.Decimal `json:"min_spent"`
}

func (l ListGuestsRequest) Matches(stats model.Stats) bool {
	if stats.TotalBookings < l.MinBookings {
		return false
	}

	return l.MinSpent == nil || !stats.TotalSpent.LessThan(*l.MinSpent)
}

type TopGuestsRequest struct {
	By    string `json:"by"    validate:"omitempty,oneof=bookings spent"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

type GuestResponse struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email"`
	IDProofType   *string         `json:"id_proof_type"`
	IDProofNumber *string         `json:"id_proof_number"`
	Address       *string         `json:"address"`
	City          *string         `json:"city"`
	State         *string         `json:"state"`
	Country       *string         `json:"country"`
	Pincode       *string         `json:"pincode"`
	Preferences   *string         `json:"preferences"`
	SpecialNotes  *string         `json:"special_notes"`
	TotalBookings int             `json:"total_bookings"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	FirstVisit    *string         `json:"first_visit"`
	LastVisit     *string         `json:"last_visit"`
	gDto.Metadata
}

func (g *GuestResponse) FromModel(guest model.Guest, stats model.Stats) {
	g.ID = guest.ID
	g.FullName = guest.FullName
	g.Phone = guest.Phone
	g.Email = guest.Email
	g.IDProofType = guest.IDProofType
	g.IDProofNumber = guest.IDProofNumber
	g.Address = guest.Address
	g.City = guest.City
	g.State = guest.State
	g.Country = guest.Country
	g.Pincode = guest.Pincode
	g.Preferences = guest.Preferences
	g.SpecialNotes = guest.SpecialNotes
	g.TotalBookings = stats.TotalBookings
	g.TotalSpent = stats.TotalSpent
	g.FirstVisit = formatVisit(stats.FirstVisit)
	g.LastVisit = formatVisit(stats.LastVisit)
	g.Metadata.FromModel(guest.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetGuestsResponse) FromModels(guests []model.Guest, stats map[string]model.Stats, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Guests = make([]GuestResponse, len(guests))
	for i, guest := range guests {
		g.Guests[i].FromModel(guest, stats[guest.ID])
	}
}

// GuestBooking is the short form of a booking shown in a guest's history.
type GuestBooking struct {
	ID            string          `json:"id"`
	RoomNumber    string          `json:"room_number"`
	CheckInDate   string          `json:"check_in_date"`
	CheckOutDate  string          `json:"check_out_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
}

func (g *GuestBooking) FromModel(booking bookingModel.Booking) {
	g.ID = booking.ID
	g.RoomNumber = booking.RoomNumber
	g.CheckInDate = timezone.FormatDate(booking.CheckInDate)
	g.CheckOutDate = timezone.FormatDate(booking.CheckOutDate)
	g.TotalAmount = booking.TotalAmount
	g.Status = string(booking.Status)
	g.PaymentStatus = string(booking.PaymentStatus)
}

type GuestBookingsResponse struct {
	Guest    GuestResponse  `json:"guest"`
	Bookings []GuestBooking `json:"bookings"`
}

func formatVisit(visit *time.Time) *string {
	if visit == nil {
		return nil
	}

	formatted := timezone.FormatDate(*visit)

	return &formatted
}
