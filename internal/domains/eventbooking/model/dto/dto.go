package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/eventbooking/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceRequest struct {
	ServiceType       model.ServiceType `json:"service_type"        validate:"required,enum"`
	CustomServiceName *string           `json:"custom_service_name" validate:"omitempty,max=200"`
	CustomerPrice     decimal.Decimal   `json:"customer_price"      validate:"gte=0"`
	VendorCost        decimal.Decimal   `json:"vendor_cost"         validate:"gte=0"`
	VendorName        *string           `json:"vendor_name"         validate:"omitempty,max=200"`
	Notes             *string           `json:"notes"`
}

// Named reports whether a custom service carries its name.
func (s ServiceRequest) Named() bool {
	if s.ServiceType != model.ServiceCustom {
		return true
	}

	return s.CustomServiceName != nil && strings.TrimSpace(*s.CustomServiceName) != ""
}

func (s ServiceRequest) ToModel(eventID, user string, now time.Time) model.Service {
	return model.Service{
		ID:                uuid.NewString(),
		EventBookingID:    eventID,
		ServiceType:       s.ServiceType,
		CustomServiceName: s.CustomServiceName,
		CustomerPrice:     s.CustomerPrice,
		VendorCost:        s.VendorCost,
		VendorName:        s.VendorName,
		Notes:             s.Notes,
		Metadata:          metadata(user, now),
	}
}

type CreateEventBookingRequest struct {
	BookingName  string           `json:"booking_name"  validate:"required,min=1,max=300"`
	BookingDate  string           `json:"booking_date"  validate:"required,date"`
	ContactName  string           `json:"contact_name"  validate:"required,min=1,max=200"`
	ContactPhone string           `json:"contact_phone" validate:"required,min=10,max=20"`
	ContactEmail *string          `json:"contact_email" validate:"omitempty,email"`
	Notes        *string          `json:"notes"`
	Services     []ServiceRequest `json:"services"      validate:"omitempty,max=50,dive"`
}

func (c *CreateEventBookingRequest) ToModel(user string) (model.EventBooking, []model.Service) {
	now := timezone.Now()
	bookingDate, _ := timezone.ParseDate(c.BookingDate)

	event := model.EventBooking{
		ID:           uuid.NewString(),
		BookingName:  strings.TrimSpace(c.BookingName),
		BookingDate:  bookingDate,
		ContactName:  strings.TrimSpace(c.ContactName),
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
		Status:       model.StatusConfirmed,
		Notes:        c.Notes,
		Metadata:     metadata(user, now),
	}

	services := make([]model.Service, len(c.Services))
	for i, service := range c.Services {
		services[i] = service.ToModel(event.ID, user, now)
	}

	return event, services
}

type UpdateEventBookingRequest struct {
	BookingName  *string       `db:"booking_name"  json:"booking_name"  validate:"omitempty,min=1,max=300"`
	ContactName  *string       `db:"contact_name"  json:"contact_name"  validate:"omitempty,min=1,max=200"`
	ContactPhone *string       `db:"contact_phone" json:"contact_phone" validate:"omitempty,min=10,max=20"`
	ContactEmail *string       `db:"contact_email" json:"contact_email" validate:"omitempty,email"`
	Status       *model.Status `db:"status"        json:"status"        validate:"omitempty,enum"`
	Notes        *string       `db:"notes"         json:"notes"`
	BookingDate  *string       `db:"-"             json:"booking_date"  validate:"omitempty,date"`
}

type UpdateServiceRequest struct {
	ServiceType       *model.ServiceType `db:"service_type"        json:"service_type"        validate:"omitempty,enum"`
	CustomServiceName *string            `db:"custom_service_name" json:"custom_service_name" validate:"omitempty,max=200"`
	CustomerPrice     *decimal.Decimal   `db:"-"                   json:"customer_price"      validate:"omitempty,gte=0"`
	VendorCost        *decimal.Decimal   `db:"-"                   json:"vendor_cost"         validate:"omitempty,gte=0"`
	VendorName        *string            `db:"vendor_name"         json:"vendor_name"         validate:"omitempty,max=200"`
	Notes             *string            `db:"notes"               json:"notes"`
}

// Apply copies the update onto service so the result can be checked as a whole.
func (u *UpdateServiceRequest) Apply(service *model.Service) {
	if u.ServiceType != nil {
		service.ServiceType = *u.ServiceType
	}

	if u.CustomServiceName != nil {
		service.CustomServiceName = u.CustomServiceName
	}

	if u.CustomerPrice != nil {
		service.CustomerPrice = *u.CustomerPrice
	}

	if u.VendorCost != nil {
		service.VendorCost = *u.VendorCost
	}
}

type PaymentRequest struct {
	PaymentDate string                    `json:"payment_date" validate:"required,date"`
	Amount      decimal.Decimal           `json:"amount"       validate:"gt=0"`
	PaymentMode *bookingModel.PaymentMode `json:"payment_mode" validate:"omitempty,enum"`
	Notes       *string                   `json:"notes"`
}

func (p PaymentRequest) ToCustomerPayment(eventID, user string) model.CustomerPayment {
	paymentDate, _ := timezone.ParseDate(p.PaymentDate)

	return model.CustomerPayment{
		ID:             uuid.NewString(),
		EventBookingID: eventID,
		PaymentDate:    paymentDate,
		Amount:         p.Amount,
		PaymentMode:    p.PaymentMode,
		Notes:          p.Notes,
		Metadata:       metadata(user, timezone.Now()),
	}
}

func (p PaymentRequest) ToVendorPayment(serviceID, user string) model.VendorPayment {
	paymentDate, _ := timezone.ParseDate(p.PaymentDate)

	return model.VendorPayment{
		ID:             uuid.NewString(),
		EventServiceID: serviceID,
		PaymentDate:    paymentDate,
		Amount:         p.Amount,
		PaymentMode:    p.PaymentMode,
		Notes:          p.Notes,
		Metadata:       metadata(user, timezone.Now()),
	}
}

type SummaryRequest struct {
	DateFrom string `json:"date_from" validate:"omitempty,date"`
	DateTo   string `json:"date_to"   validate:"omitempty,date"`
}

type PaymentResponse struct {
	ID          string                    `json:"id"`
	PaymentDate string                    `json:"payment_date"`
	Amount      decimal.Decimal           `json:"amount"`
	PaymentMode *bookingModel.PaymentMode `json:"payment_mode"`
	Notes       *string                   `json:"notes"`
	CreatedAt   time.Time                 `json:"created_at"`
}

func FromCustomerPayment(payment model.CustomerPayment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID,
		PaymentDate: timezone.FormatDate(payment.PaymentDate),
		Amount:      payment.Amount,
		PaymentMode: payment.PaymentMode,
		Notes:       payment.Notes,
		CreatedAt:   payment.CreatedAt,
	}
}

func FromVendorPayment(payment model.VendorPayment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID,
		PaymentDate: timezone.FormatDate(payment.PaymentDate),
		Amount:      payment.Amount,
		PaymentMode: payment.PaymentMode,
		Notes:       payment.Notes,
		CreatedAt:   payment.CreatedAt,
	}
}

type ServiceResponse struct {
	ID                string            `json:"id"`
	ServiceType       model.ServiceType `json:"service_type"`
	CustomServiceName *string           `json:"custom_service_name"`
	CustomerPrice     decimal.Decimal   `json:"customer_price"`
	VendorCost        decimal.Decimal   `json:"vendor_cost"`
	VendorName        *string           `json:"vendor_name"`
	Notes             *string           `json:"notes"`
	VendorTotalPaid   decimal.Decimal   `json:"vendor_total_paid"`
	VendorPending     decimal.Decimal   `json:"vendor_pending"`
	VendorPayments    []PaymentResponse `json:"vendor_payments"`
}

// FromModel fills the service with its vendor payments, taken from payments.
func (s *ServiceResponse) FromModel(service model.Service, payments []model.VendorPayment) {
	financials := model.Compute([]model.Service{service}, payments, nil).Services[service.ID]

	s.ID = service.ID
	s.ServiceType = service.ServiceType
	s.CustomServiceName = service.CustomServiceName
	s.CustomerPrice = service.CustomerPrice
	s.VendorCost = service.VendorCost
	s.VendorName = service.VendorName
	s.Notes = service.Notes
	s.VendorTotalPaid = financials.VendorTotalPaid
	s.VendorPending = financials.VendorPending

	s.VendorPayments = []PaymentResponse{}
	for _, payment := range payments {
		if payment.EventServiceID == service.ID {
			s.VendorPayments = append(s.VendorPayments, FromVendorPayment(payment))
		}
	}
}

type FinancialsResponse struct {
	TotalCustomerPrice decimal.Decimal `json:"total_customer_price"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	CustomerPending    decimal.Decimal `json:"customer_pending"`
	TotalVendorCost    decimal.Decimal `json:"total_vendor_cost"`
	TotalVendorPaid    decimal.Decimal `json:"total_vendor_paid"`
	VendorPending      decimal.Decimal `json:"vendor_pending"`
}

func (f *FinancialsResponse) FromModel(financials model.Financials) {
	f.TotalCustomerPrice = financials.TotalCustomerPrice
	f.TotalCollected = financials.TotalCollected
	f.CustomerPending = financials.CustomerPending
	f.TotalVendorCost = financials.TotalVendorCost
	f.TotalVendorPaid = financials.TotalVendorPaid
	f.VendorPending = financials.VendorPending
}

type EventBookingResponse struct {
	ID               string            `json:"id"`
	BookingName      string            `json:"booking_name"`
	BookingDate      string            `json:"booking_date"`
	ContactName      string            `json:"contact_name"`
	ContactPhone     string            `json:"contact_phone"`
	ContactEmail     *string           `json:"contact_email"`
	Status           model.Status      `json:"status"`
	Notes            *string           `json:"notes"`
	Services         []ServiceResponse `json:"services"`
	CustomerPayments []PaymentResponse `json:"customer_payments"`
	ProfitMargin     decimal.Decimal   `json:"profit_margin"`
	FinancialsResponse
	gDto.Metadata
}

func (e *EventBookingResponse) FromModel(event model.EventBooking, children model.Children) {
	financials := children.Financials()

	e.ID = event.ID
	e.BookingName = event.BookingName
	e.BookingDate = timezone.FormatDate(event.BookingDate)
	e.ContactName = event.ContactName
	e.ContactPhone = event.ContactPhone
	e.ContactEmail = event.ContactEmail
	e.Status = event.Status
	e.Notes = event.Notes
	e.ProfitMargin = financials.ProfitMargin
	e.FinancialsResponse.FromModel(financials)
	e.Metadata.FromModel(event.Metadata)

	e.Services = make([]ServiceResponse, len(children.Services))
	for i, service := range children.Services {
		e.Services[i].FromModel(service, children.VendorPayments)
	}

	e.CustomerPayments = make([]PaymentResponse, len(children.CustomerPayments))
	for i, payment := range children.CustomerPayments {
		e.CustomerPayments[i] = FromCustomerPayment(payment)
	}
}

type EventBookingListItem struct {
	ID           string       `json:"id"`
	BookingName  string       `json:"booking_name"`
	BookingDate  string       `json:"booking_date"`
	ContactName  string       `json:"contact_name"`
	ContactPhone string       `json:"contact_phone"`
	Status       model.Status `json:"status"`
	IsCollapsed  bool         `json:"is_collapsed"`
	CreatedAt    time.Time    `json:"created_at"`
	FinancialsResponse
}

func (e *EventBookingListItem) FromModel(event model.EventBooking, children model.Children, today time.Time) {
	e.ID = event.ID
	e.BookingName = event.BookingName
	e.BookingDate = timezone.FormatDate(event.BookingDate)
	e.ContactName = event.ContactName
	e.ContactPhone = event.ContactPhone
	e.Status = event.Status
	e.IsCollapsed = event.Collapsed(today)
	e.CreatedAt = event.CreatedAt
	e.FinancialsResponse.FromModel(children.Financials())
}

type GetEventBookingsResponse struct {
	EventBookings []EventBookingListItem `json:"event_bookings"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (g *GetEventBookingsResponse) FromModels(events []model.EventBooking, children model.Children, today time.Time, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.EventBookings = make([]EventBookingListItem, len(events))
	for i, event := range events {
		g.EventBookings[i].FromModel(event, children.Of(event.ID), today)
	}
}

type SummaryResponse struct {
	TotalEvents     int             `json:"total_events"`
	ConfirmedEvents int             `json:"confirmed_events"`
	CompletedEvents int             `json:"completed_events"`
	CancelledEvents int             `json:"cancelled_events"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCollected  decimal.Decimal `json:"total_collected"`
	RevenuePending  decimal.Decimal `json:"revenue_pending"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	ExpensesPending decimal.Decimal `json:"expenses_pending"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
}

func (s *SummaryResponse) FromModel(summary model.Summary) {
	s.TotalEvents = summary.TotalEvents
	s.ConfirmedEvents = summary.ConfirmedEvents
	s.CompletedEvents = summary.CompletedEvents
	s.CancelledEvents = summary.CancelledEvents
	s.TotalRevenue = summary.TotalRevenue
	s.TotalCollected = summary.TotalCollected
	s.RevenuePending = summary.RevenuePending
	s.TotalExpenses = summary.TotalExpenses
	s.TotalPaid = summary.TotalPaid
	s.ExpensesPending = summary.ExpensesPending
	s.TotalProfit = summary.TotalProfit
}

func metadata(user string, now time.Time) gModel.Metadata {
	return gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
