package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/eventbooking/model"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func service(id, eventID, price, cost string) model.Service {
	return model.Service{
		ID:             id,
		EventBookingID: eventID,
		ServiceType:    model.ServiceTenting,
		CustomerPrice:  amount(price),
		VendorCost:     amount(cost),
	}
}

func vendorPayment(serviceID, value string) model.VendorPayment {
	return model.VendorPayment{EventServiceID: serviceID, Amount: amount(value)}
}

func customerPayment(eventID, value string) model.CustomerPayment {
	return model.CustomerPayment{EventBookingID: eventID, Amount: amount(value)}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, amount(want).Equal(got), "want %s, got %s", want, got)
}

func TestCompute(t *testing.T) {
	services := []model.Service{
		service("s1", "e1", "50000", "30000"),
		service("s2", "e1", "20000.50", "12000"),
	}
	vendorPayments := []model.VendorPayment{
		vendorPayment("s1", "10000"),
		vendorPayment("s1", "5000"),
		vendorPayment("s2", "12000"),
		vendorPayment("unknown", "999"),
	}
	customerPayments := []model.CustomerPayment{
		customerPayment("e1", "25000"),
		customerPayment("e1", "10000"),
	}

	res := model.Compute(services, vendorPayments, customerPayments)

	assertAmount(t, "70000.50", res.TotalCustomerPrice)
	assertAmount(t, "35000", res.TotalCollected)
	assertAmount(t, "35000.50", res.CustomerPending)
	assertAmount(t, "42000", res.TotalVendorCost)
	assertAmount(t, "27000", res.TotalVendorPaid)
	assertAmount(t, "15000", res.VendorPending)
	assertAmount(t, "28000.50", res.ProfitMargin)

	assertAmount(t, "15000", res.Services["s1"].VendorTotalPaid)
	assertAmount(t, "15000", res.Services["s1"].VendorPending)
	assertAmount(t, "12000", res.Services["s2"].VendorTotalPaid)
	assertAmount(t, "0", res.Services["s2"].VendorPending)
}

func TestComputeEmpty(t *testing.T) {
	res := model.Compute(nil, nil, nil)

	assertAmount(t, "0", res.TotalCustomerPrice)
	assertAmount(t, "0", res.CustomerPending)
	assertAmount(t, "0", res.ProfitMargin)
	assert.Empty(t, res.Services)
}

func TestComputeOverpaidCustomer(t *testing.T) {
	res := model.Compute(
		[]model.Service{service("s1", "e1", "1000", "0")},
		nil,
		[]model.CustomerPayment{customerPayment("e1", "1200")},
	)

	assertAmount(t, "-200", res.CustomerPending)
}

func TestChildrenOf(t *testing.T) {
	children := model.Children{
		Services: []model.Service{
			service("s1", "e1", "100", "50"),
			service("s2", "e2", "300", "100"),
		},
		VendorPayments: []model.VendorPayment{
			vendorPayment("s1", "50"),
			vendorPayment("s2", "40"),
		},
		CustomerPayments: []model.CustomerPayment{
			customerPayment("e1", "100"),
			customerPayment("e2", "10"),
		},
	}

	of := children.Of("e2")

	assert.Len(t, of.Services, 1)
	assert.Len(t, of.VendorPayments, 1)
	assert.Len(t, of.CustomerPayments, 1)
	assertAmount(t, "290", of.Financials().CustomerPending)
	assertAmount(t, "60", of.Financials().VendorPending)
}

func TestCollapsed(t *testing.T) {
	today := date("2025-06-10")

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "upcoming", date: "2025-06-20", want: false},
		{name: "today", date: "2025-06-10", want: false},
		{name: "three days ago", date: "2025-06-07", want: false},
		{name: "four days ago", date: "2025-06-06", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := model.EventBooking{BookingDate: date(tt.date)}

			assert.Equal(t, tt.want, event.Collapsed(today))
		})
	}
}

func TestSummarize(t *testing.T) {
	events := []model.EventBooking{
		{ID: "e1", Status: model.StatusConfirmed},
		{ID: "e2", Status: model.StatusCompleted},
		{ID: "e3", Status: model.StatusCancelled},
	}
	children := model.Children{
		Services: []model.Service{
			service("s1", "e1", "1000", "600"),
			service("s2", "e2", "2000", "500"),
			service("s3", "e3", "9999", "9999"),
		},
		VendorPayments: []model.VendorPayment{
			vendorPayment("s1", "600"),
			vendorPayment("s3", "9999"),
		},
		CustomerPayments: []model.CustomerPayment{
			customerPayment("e1", "1000"),
			customerPayment("e2", "500"),
			customerPayment("e3", "9999"),
		},
	}

	res := model.Summarize(events, children)

	assert.Equal(t, 3, res.TotalEvents)
	assert.Equal(t, 1, res.ConfirmedEvents)
	assert.Equal(t, 1, res.CompletedEvents)
	assert.Equal(t, 1, res.CancelledEvents)
	assertAmount(t, "3000", res.TotalRevenue)
	assertAmount(t, "1500", res.TotalCollected)
	assertAmount(t, "1500", res.RevenuePending)
	assertAmount(t, "1100", res.TotalExpenses)
	assertAmount(t, "600", res.TotalPaid)
	assertAmount(t, "500", res.ExpensesPending)
	assertAmount(t, "1900", res.TotalProfit)
}

func TestStatus(t *testing.T) {
	assert.True(t, model.StatusConfirmed.AcceptsChanges())
	assert.False(t, model.StatusCancelled.AcceptsChanges())
	assert.True(t, model.StatusCancelled.Deletable())
	assert.False(t, model.StatusCompleted.Deletable())
	assert.False(t, model.Status("Postponed").Valid())
	assert.True(t, model.ServiceCustom.Valid())
	assert.False(t, model.ServiceType("Catering").Valid())
}
