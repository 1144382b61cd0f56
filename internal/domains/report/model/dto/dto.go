package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	eventModel "hotel/internal/domains/eventbooking/model"
	"hotel/internal/domains/report/model"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

type DashboardRequest struct {
	DateFrom string     `json:"date_from" validate:"omitempty,date"`
	DateTo   string     `json:"date_to"   validate:"omitempty,date"`
	Type     model.Type `json:"type"      validate:"omitempty,enum"`
}

type OccupancyRequest struct {
	Date string `json:"date" validate:"omitempty,date"`
}

type RevenueResponse struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Collected decimal.Decimal `json:"collected"`
	Pending   decimal.Decimal `json:"pending"`
}

func revenueOf(revenue model.Revenue) RevenueResponse {
	return RevenueResponse{
		Revenue:   revenue.Revenue,
		Collected: revenue.Collected,
		Pending:   revenue.Pending,
	}
}

type OccupancyResponse struct {
	Date          string          `json:"date,omitempty"`
	ActiveRooms   int             `json:"active_rooms"`
	OccupiedRooms int             `json:"occupied_rooms"`
	OccupancyRate decimal.Decimal `json:"occupancy_rate"`
	RoomNights    int             `json:"room_nights"`
	AverageRate   decimal.Decimal `json:"average_occupancy_rate"`
}

type DashboardResponse struct {
	DateFrom           string                      `json:"date_from"`
	DateTo             string                      `json:"date_to"`
	Type               model.Type                  `json:"type"`
	TotalRevenue       decimal.Decimal             `json:"total_revenue"`
	RevenueCollected   decimal.Decimal             `json:"revenue_collected"`
	RevenuePending     decimal.Decimal             `json:"revenue_pending"`
	Hotel              RevenueResponse             `json:"hotel"`
	Events             RevenueResponse             `json:"events"`
	Occupancy          OccupancyResponse           `json:"occupancy"`
	BookingsByStatus   map[bookingModel.Status]int `json:"bookings_by_status"`
	EventsByStatus     map[eventModel.Status]int   `json:"events_by_status"`
	ExpensesByCategory map[string]decimal.Decimal  `json:"expenses_by_category"`
	TotalExpenses      decimal.Decimal             `json:"total_expenses"`
	Profit             decimal.Decimal             `json:"profit"`
}

func (d *DashboardResponse) FromModel(report model.Report) {
	d.DateFrom = timezone.FormatDate(report.From)
	d.DateTo = timezone.FormatDate(report.To)
	d.Type = report.Type
	d.TotalRevenue = report.Total.Revenue
	d.RevenueCollected = report.Total.Collected
	d.RevenuePending = report.Total.Pending
	d.Hotel = revenueOf(report.Hotel)
	d.Events = revenueOf(report.Events)
	d.Occupancy = OccupancyResponse{
		ActiveRooms:   report.Occupancy.ActiveRooms,
		OccupiedRooms: report.Occupancy.OccupiedRooms,
		OccupancyRate: report.Occupancy.Rate,
		RoomNights:    report.Occupancy.RoomNights,
		AverageRate:   report.Occupancy.AverageRate,
	}
	d.BookingsByStatus = report.BookingsByStatus
	d.EventsByStatus = report.EventsByStatus
	d.ExpensesByCategory = report.ExpensesByCategory
	d.TotalExpenses = report.TotalExpenses
	d.Profit = report.Profit
}
