package dto

import (
	"hotel/internal/domains/booking/ledger"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/money"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultAdults = 1
)

type CreateBookingRequest struct {
	BookingType      model.Type         `json:"booking_type"        validate:"omitempty,enum"`
	GuestName        string             `json:"guest_name"          validate:"required,min=1,max=200"`
	GuestPhone       string             `json:"guest_phone"         validate:"required,min=10,max=20"`
	GuestEmail       *string            `json:"guest_email"         validate:"omitempty,email,max=200"`
	GuestIDProof     *string            `json:"guest_id_proof"      validate:"omitempty,max=100"`
	RoomID           string             `json:"room_id"             validate:"required"`
	CheckInDate      string             `json:"check_in_date"       validate:"required,date"`
	CheckOutDate     string             `json:"check_out_date"      validate:"required,date"`
	Adults           int                `json:"adults"              validate:"omitempty,min=1,max=20"`
	Children         int                `json:"children"            validate:"gte=0,max=20"`
	BookingSource    model.Source       `json:"booking_source"      validate:"omitempty,enum"`
	BookingReference *string            `json:"booking_reference"   validate:"omitempty,max=100"`
	RoomRatePerNight *decimal.Decimal   `json:"room_rate_per_night" validate:"omitempty,gte=0"`
	AdvancePayment   decimal.Decimal    `json:"advance_payment"     validate:"gte=0"`
	PaymentMode      *model.PaymentMode `json:"payment_mode"        validate:"omitempty,enum"`
	SpecialRequests  *string            `json:"special_requests"`
	Notes            *string            `json:"notes"`
}

func (c *CreateBookingRequest) GuestCount() int {
	adults := c.Adults
	if adults == 0 {
		adults = defaultAdults
	}

	return adults + c.Children
}

// ToModel builds a Confirmed booking holding only the primitives; the charge columns are
// filled in by the ledger.
func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, rate decimal.Decimal) model.Booking {
	bookingType := c.BookingType
	if bookingType == "" {
		bookingType = model.TypeHotel
	}

	source := c.BookingSource
	if source == "" {
		source = model.SourceWalkIn
	}

	adults := c.Adults
	if adults == 0 {
		adults = defaultAdults
	}

	now := timezone.Now()

	return model.Booking{
		ID:               uuid.NewString(),
		BookingType:      bookingType,
		GuestName:        strings.TrimSpace(c.GuestName),
		GuestPhone:       strings.TrimSpace(c.GuestPhone),
		GuestEmail:       c.GuestEmail,
		GuestIDProof:     c.GuestIDProof,
		RoomID:           c.RoomID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Adults:           adults,
		Children:         c.Children,
		BookingSource:    source,
		BookingReference: c.BookingReference,
		RoomRatePerNight: money.Round(rate),
		AdvancePayment:   money.Round(c.AdvancePayment),
		RefundedAmount:   decimal.Zero,
		PaymentMode:      c.PaymentMode,
		Status:           model.StatusConfirmed,
		SpecialRequests:  c.SpecialRequests,
		Notes:            c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest is a partial update. Fields tagged db:"-" change the stay or the
// charges and are applied by the service after the overlap check and the ledger recompute.
type UpdateBookingRequest struct {
	GuestName        *string            `db:"guest_name"        json:"guest_name"          validate:"omitempty,min=1,max=200"`
	GuestPhone       *string            `db:"guest_phone"       json:"guest_phone"         validate:"omitempty,min=10,max=20"`
	GuestEmail       *string            `db:"guest_email"       json:"guest_email"         validate:"omitempty,email,max=200"`
	GuestIDProof     *string            `db:"guest_id_proof"    json:"guest_id_proof"      validate:"omitempty,max=100"`
	Adults           *int               `db:"adults"            json:"adults"              validate:"omitempty,min=1,max=20"`
	Children         *int               `db:"children"          json:"children"            validate:"omitempty,gte=0,max=20"`
	BookingSource    *model.Source      `db:"booking_source"    json:"booking_source"      validate:"omitempty,enum"`
	BookingReference *string            `db:"booking_reference" json:"booking_reference"   validate:"omitempty,max=100"`
	PaymentMode      *model.PaymentMode `db:"payment_mode"      json:"payment_mode"        validate:"omitempty,enum"`
	SpecialRequests  *string            `db:"special_requests"  json:"special_requests"`
	Notes            *string            `db:"notes"             json:"notes"`
	RoomID           *string            `db:"-"                 json:"room_id"`
	CheckInDate      *string            `db:"-"                 json:"check_in_date"       validate:"omitempty,date"`
	CheckOutDate     *string            `db:"-"                 json:"check_out_date"      validate:"omitempty,date"`
	RoomRatePerNight *decimal.Decimal   `db:"-"                 json:"room_rate_per_night" validate:"omitempty,gte=0"`
	AdvancePayment   *decimal.Decimal   `db:"-"                 json:"advance_payment"     validate:"omitempty,gte=0"`
}

// MovesStay reports whether the update changes the room or the dates.
func (u *UpdateBookingRequest) MovesStay() bool {
	return u.RoomID != nil || u.CheckInDate != nil || u.CheckOutDate != nil
}

func (u *UpdateBookingRequest) ChangesCharges() bool {
	return u.MovesStay() || u.RoomRatePerNight != nil || u.AdvancePayment != nil
}

type AddServiceRequest struct {
	ServiceName string          `json:"service_name" validate:"required,min=1,max=200"`
	Quantity    int             `json:"quantity"     validate:"omitempty,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"gte=0"`
	ServiceDate *string         `json:"service_date" validate:"omitempty,date"`
	Notes       *string         `json:"notes"`
}

func (a *AddServiceRequest) ToModel(user, bookingID string, serviceDate time.Time) model.Service {
	quantity := a.Quantity
	if quantity == 0 {
		quantity = 1
	}

	now := timezone.Now()

	return model.Service{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		ServiceName: strings.TrimSpace(a.ServiceName),
		Quantity:    quantity,
		UnitPrice:   money.Round(a.UnitPrice),
		TotalPrice:  ledger.LineTotal(quantity, money.Round(a.UnitPrice)),
		ServiceDate: serviceDate,
		Notes:       a.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CollectPaymentRequest struct {
	Amount      decimal.Decimal    `json:"amount"       validate:"gt=0"`
	PaymentMode *model.PaymentMode `json:"payment_mode" validate:"omitempty,enum"`
	Notes       *string            `json:"notes"`
}

func (c *CollectPaymentRequest) ToModel(user, bookingID string) model.Payment {
	now := timezone.Now()

	return model.Payment{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		Amount:      money.Round(c.Amount),
		PaymentMode: c.PaymentMode,
		Notes:       c.Notes,
		CollectedAt: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CancelBookingRequest struct {
	RefundAdvance bool    `json:"refund_advance"`
	Reason        *string `json:"reason" validate:"omitempty,max=500"`
}

type DateRangeRequest struct {
	DateFrom string `json:"date_from" validate:"omitempty,date"`
	DateTo   string `json:"date_to"   validate:"omitempty,date"`
}

type RoomInfo struct {
	ID          string `json:"id"`
	RoomNumber  string `json:"room_number"`
	RoomType    string `json:"room_type"`
	FloorNumber int    `json:"floor_number"`
}

type ServiceResponse struct {
	ID          string          `json:"id"`
	ServiceName string          `json:"service_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ServiceDate string          `json:"service_date"`
	Notes       *string         `json:"notes"`
}

func (s *ServiceResponse) FromModel(service model.Service) {
	s.ID = service.ID
	s.ServiceName = service.ServiceName
	s.Quantity = service.Quantity
	s.UnitPrice = service.UnitPrice
	s.TotalPrice = service.TotalPrice
	s.ServiceDate = timezone.FormatDate(service.ServiceDate)
	s.Notes = service.Notes
}

type PaymentResponse struct {
	ID          string             `json:"id"`
	Amount      decimal.Decimal    `json:"amount"`
	PaymentMode *model.PaymentMode `json:"payment_mode"`
	Notes       *string            `json:"notes"`
	CollectedAt string             `json:"collected_at"`
	CollectedBy string             `json:"collected_by"`
}

func (p *PaymentResponse) FromModel(payment model.Payment) {
	p.ID = payment.ID
	p.Amount = payment.Amount
	p.PaymentMode = payment.PaymentMode
	p.Notes = payment.Notes
	p.CollectedAt = timezone.Format(payment.CollectedAt, time.RFC3339)
	p.CollectedBy = payment.CreatedBy
}

type BookingResponse struct {
	ID                string              `json:"id"`
	BookingType       model.Type          `json:"booking_type"`
	GuestID           *string             `json:"guest_id"`
	GuestName         string              `json:"guest_name"`
	GuestPhone        string              `json:"guest_phone"`
	GuestEmail        *string             `json:"guest_email"`
	GuestIDProof      *string             `json:"guest_id_proof"`
	RoomID            string              `json:"room_id"`
	CheckInDate       string              `json:"check_in_date"`
	CheckOutDate      string              `json:"check_out_date"`
	ActualCheckIn     *string             `json:"actual_check_in"`
	ActualCheckOut    *string             `json:"actual_check_out"`
	Adults            int                 `json:"adults"`
	Children          int                 `json:"children"`
	BookingSource     model.Source        `json:"booking_source"`
	BookingReference  *string             `json:"booking_reference"`
	RoomRatePerNight  decimal.Decimal     `json:"room_rate_per_night"`
	TotalNights       int                 `json:"total_nights"`
	RoomCharges       decimal.Decimal     `json:"room_charges"`
	AdditionalCharges decimal.Decimal     `json:"additional_charges"`
	TotalAmount       decimal.Decimal     `json:"total_amount"`
	AdvancePayment    decimal.Decimal     `json:"advance_payment"`
	AmountPaid        decimal.Decimal     `json:"amount_paid"`
	RefundedAmount    decimal.Decimal     `json:"refunded_amount"`
	BalanceDue        decimal.Decimal     `json:"balance_due"`
	PaymentStatus     model.PaymentStatus `json:"payment_status"`
	PaymentMode       *model.PaymentMode  `json:"payment_mode"`
	Status            model.Status        `json:"status"`
	SpecialRequests   *string             `json:"special_requests"`
	Notes             *string             `json:"notes"`
	Room              RoomInfo            `json:"room"`
	Services          []ServiceResponse   `json:"services,omitempty"`
	Payments          []PaymentResponse   `json:"payments,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(booking model.Booking) {
	b.ID = booking.ID
	b.BookingType = booking.BookingType
	b.GuestID = booking.GuestID
	b.GuestName = booking.GuestName
	b.GuestPhone = booking.GuestPhone
	b.GuestEmail = booking.GuestEmail
	b.GuestIDProof = booking.GuestIDProof
	b.RoomID = booking.RoomID
	b.CheckInDate = timezone.FormatDate(booking.CheckInDate)
	b.CheckOutDate = timezone.FormatDate(booking.CheckOutDate)
	b.ActualCheckIn = formatTime(booking.ActualCheckIn)
	b.ActualCheckOut = formatTime(booking.ActualCheckOut)
	b.Adults = booking.Adults
	b.Children = booking.Children
	b.BookingSource = booking.BookingSource
	b.BookingReference = booking.BookingReference
	b.RoomRatePerNight = booking.RoomRatePerNight
	b.TotalNights = booking.TotalNights
	b.RoomCharges = booking.RoomCharges
	b.AdditionalCharges = booking.AdditionalCharges
	b.TotalAmount = booking.TotalAmount
	b.AdvancePayment = booking.AdvancePayment
	b.AmountPaid = booking.AmountPaid
	b.RefundedAmount = booking.RefundedAmount
	b.BalanceDue = booking.BalanceDue
	b.PaymentStatus = booking.PaymentStatus
	b.PaymentMode = booking.PaymentMode
	b.Status = booking.Status
	b.SpecialRequests = booking.SpecialRequests
	b.Notes = booking.Notes
	b.Room = RoomInfo{
		ID:          booking.RoomID,
		RoomNumber:  booking.RoomNumber,
		RoomType:    booking.RoomType,
		FloorNumber: booking.FloorNumber,
	}
	b.Metadata.FromModel(booking.Metadata)
}

func (b *BookingResponse) WithChildren(services []model.Service, payments []model.Payment) {
	b.Services = make([]ServiceResponse, len(services))
	for i, service := range services {
		b.Services[i].FromModel(service)
	}

	b.Payments = make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		b.Payments[i].FromModel(payment)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

// LedgerResponse is returned by the operations that move money on a booking.
type LedgerResponse struct {
	BookingID         string              `json:"booking_id"`
	RoomCharges       decimal.Decimal     `json:"room_charges"`
	AdditionalCharges decimal.Decimal     `json:"additional_charges"`
	TotalAmount       decimal.Decimal     `json:"total_amount"`
	AmountPaid        decimal.Decimal     `json:"amount_paid"`
	BalanceDue        decimal.Decimal     `json:"balance_due"`
	PaymentStatus     model.PaymentStatus `json:"payment_status"`
	Service           *ServiceResponse    `json:"service,omitempty"`
	Payment           *PaymentResponse    `json:"payment,omitempty"`
}

func (l *LedgerResponse) FromResult(bookingID string, result ledger.Result) {
	l.BookingID = bookingID
	l.RoomCharges = result.RoomCharges
	l.AdditionalCharges = result.AdditionalCharges
	l.TotalAmount = result.Total
	l.AmountPaid = result.Paid
	l.BalanceDue = result.Balance
	l.PaymentStatus = result.PaymentStatus
}

type ArrivalResponse struct {
	BookingID      string          `json:"booking_id"`
	GuestName      string          `json:"guest_name"`
	GuestPhone     string          `json:"guest_phone"`
	RoomNumber     string          `json:"room_number"`
	Adults         int             `json:"adults"`
	Children       int             `json:"children"`
	CheckInDate    string          `json:"check_in_date"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

func (a *ArrivalResponse) FromModel(booking model.Booking) {
	a.BookingID = booking.ID
	a.GuestName = booking.GuestName
	a.GuestPhone = booking.GuestPhone
	a.RoomNumber = booking.RoomNumber
	a.Adults = booking.Adults
	a.Children = booking.Children
	a.CheckInDate = timezone.FormatDate(booking.CheckInDate)
	a.AdvancePayment = booking.AdvancePayment
	a.TotalAmount = booking.TotalAmount
}

type DepartureResponse struct {
	BookingID    string          `json:"booking_id"`
	GuestName    string          `json:"guest_name"`
	GuestPhone   string          `json:"guest_phone"`
	RoomNumber   string          `json:"room_number"`
	BalanceDue   decimal.Decimal `json:"balance_due"`
	CheckOutDate string          `json:"check_out_date"`
}

func (d *DepartureResponse) FromModel(booking model.Booking) {
	d.BookingID = booking.ID
	d.GuestName = booking.GuestName
	d.GuestPhone = booking.GuestPhone
	d.RoomNumber = booking.RoomNumber
	d.BalanceDue = booking.BalanceDue
	d.CheckOutDate = timezone.FormatDate(booking.CheckOutDate)
}

type DailyRevenue struct {
	Date          string          `json:"date"`
	Revenue       decimal.Decimal `json:"revenue"`
	BookingsCount int             `json:"bookings_count"`
	RoomNights    int             `json:"room_nights"`
}

type RevenueDailyResponse struct {
	DateFrom            string          `json:"date_from"`
	DateTo              string          `json:"date_to"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRoomNights     int             `json:"total_room_nights"`
	TotalBookings       int             `json:"total_bookings"`
	AverageDailyRevenue decimal.Decimal `json:"average_daily_revenue"`
	AverageDailyRate    decimal.Decimal `json:"average_daily_rate"`
	DailyBreakdown      []DailyRevenue  `json:"daily_breakdown"`
}

func (r *RevenueDailyResponse) FromDays(from, to time.Time, days []ledger.Day) {
	r.DateFrom = timezone.FormatDate(from)
	r.DateTo = timezone.FormatDate(to)
	r.DailyBreakdown = make([]DailyRevenue, len(days))

	revenues := make([]decimal.Decimal, len(days))

	for i, day := range days {
		r.DailyBreakdown[i] = DailyRevenue{
			Date:          timezone.FormatDate(day.Date),
			Revenue:       money.Round(day.Revenue),
			BookingsCount: day.BookingsCount,
			RoomNights:    day.RoomNights,
		}

		revenues[i] = day.Revenue
		r.TotalRoomNights += day.RoomNights
		r.TotalBookings += day.BookingsCount
	}

	r.TotalRevenue = money.Sum(revenues...)
	r.AverageDailyRevenue = money.Round(r.TotalRevenue.Div(decimal.NewFromInt(int64(max(len(days), 1)))))
	r.AverageDailyRate = money.Round(r.TotalRevenue.Div(decimal.NewFromInt(int64(max(r.TotalRoomNights, 1)))))
}

type RevenueSummaryResponse struct {
	DateFrom         string          `json:"date_from"`
	DateTo           string          `json:"date_to"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	RevenueCollected decimal.Decimal `json:"revenue_collected"`
	RevenuePending   decimal.Decimal `json:"revenue_pending"`
	BookingsCount    int             `json:"bookings_count"`
}

type ActivityResponse struct {
	ID         string         `json:"id"`
	Event      model.Event    `json:"event"`
	Status     model.Status   `json:"status"`
	Actor      string         `json:"actor"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt string         `json:"occurred_at"`
}

// FromModel renders a stored activity. A payload that no longer decodes leaves Status
// and Details empty.
func (a *ActivityResponse) FromModel(activity model.Activity) {
	a.ID = activity.ID
	a.Event = activity.Event
	a.Actor = activity.Actor
	a.OccurredAt = timezone.Format(activity.OccurredAt, time.RFC3339)

	var event model.LifecycleEvent
	if err := json.Unmarshal([]byte(activity.Payload), &event); err == nil {
		a.Status = event.Status
		a.Details = event.Details
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, time.RFC3339)

	return &formatted
}
