package model

import (
	"hotel/shared/money"

	"github.com/shopspring/decimal"
)

type ServiceFinancials struct {
	VendorTotalPaid decimal.Decimal
	VendorPending   decimal.Decimal
}

// Financials tracks an event on two sides: what the customer owes the hotel
// and what the hotel owes its vendors.
type Financials struct {
	TotalCustomerPrice decimal.Decimal
	TotalCollected     decimal.Decimal
	CustomerPending    decimal.Decimal
	TotalVendorCost    decimal.Decimal
	TotalVendorPaid    decimal.Decimal
	VendorPending      decimal.Decimal
	ProfitMargin       decimal.Decimal
	Services           map[string]ServiceFinancials
}

// Compute folds the children of one event. Vendor payments whose service is not
// among services are ignored.
func Compute(services []Service, vendorPayments []VendorPayment, customerPayments []CustomerPayment) Financials {
	paidByService := make(map[string]decimal.Decimal, len(services))
	for _, payment := range vendorPayments {
		paidByService[payment.EventServiceID] = paidByService[payment.EventServiceID].Add(payment.Amount)
	}

	res := Financials{
		TotalCustomerPrice: money.Zero,
		TotalCollected:     money.Zero,
		TotalVendorCost:    money.Zero,
		TotalVendorPaid:    money.Zero,
		Services:           make(map[string]ServiceFinancials, len(services)),
	}

	for _, service := range services {
		paid := money.Round(paidByService[service.ID])

		res.TotalCustomerPrice = res.TotalCustomerPrice.Add(service.CustomerPrice)
		res.TotalVendorCost = res.TotalVendorCost.Add(service.VendorCost)
		res.TotalVendorPaid = res.TotalVendorPaid.Add(paid)
		res.Services[service.ID] = ServiceFinancials{
			VendorTotalPaid: paid,
			VendorPending:   money.Round(service.VendorCost.Sub(paid)),
		}
	}

	for _, payment := range customerPayments {
		res.TotalCollected = res.TotalCollected.Add(payment.Amount)
	}

	res.TotalCustomerPrice = money.Round(res.TotalCustomerPrice)
	res.TotalCollected = money.Round(res.TotalCollected)
	res.TotalVendorCost = money.Round(res.TotalVendorCost)
	res.TotalVendorPaid = money.Round(res.TotalVendorPaid)
	res.CustomerPending = money.Round(res.TotalCustomerPrice.Sub(res.TotalCollected))
	res.VendorPending = money.Round(res.TotalVendorCost.Sub(res.TotalVendorPaid))
	res.ProfitMargin = money.Round(res.TotalCustomerPrice.Sub(res.TotalVendorCost))

	return res
}

// Children holds the rows that hang off a set of events, as loaded in bulk.
type Children struct {
	Services         []Service
	VendorPayments   []VendorPayment
	CustomerPayments []CustomerPayment
}

// Of returns the children that belong to eventID.
func (c Children) Of(eventID string) Children {
	var res Children

	serviceIDs := make(map[string]struct{})

	for _, service := range c.Services {
		if service.EventBookingID == eventID {
			res.Services = append(res.Services, service)
			serviceIDs[service.ID] = struct{}{}
		}
	}

	for _, payment := range c.VendorPayments {
		if _, ok := serviceIDs[payment.EventServiceID]; ok {
			res.VendorPayments = append(res.VendorPayments, payment)
		}
	}

	for _, payment := range c.CustomerPayments {
		if payment.EventBookingID == eventID {
			res.CustomerPayments = append(res.CustomerPayments, payment)
		}
	}

	return res
}

func (c Children) Financials() Financials {
	return Compute(c.Services, c.VendorPayments, c.CustomerPayments)
}

type Summary struct {
	TotalEvents     int
	ConfirmedEvents int
	CompletedEvents int
	CancelledEvents int
	TotalRevenue    decimal.Decimal
	TotalCollected  decimal.Decimal
	RevenuePending  decimal.Decimal
	TotalExpenses   decimal.Decimal
	TotalPaid       decimal.Decimal
	ExpensesPending decimal.Decimal
	TotalProfit     decimal.Decimal
}

// Summarize counts every event by status; money is folded over the events that
// are not cancelled.
func Summarize(events []EventBooking, children Children) Summary {
	res := Summary{
		TotalEvents:    len(events),
		TotalRevenue:   money.Zero,
		TotalCollected: money.Zero,
		TotalExpenses:  money.Zero,
		TotalPaid:      money.Zero,
	}

	for _, event := range events {
		switch event.Status {
		case StatusConfirmed:
			res.ConfirmedEvents++
		case StatusCompleted:
			res.CompletedEvents++
		case StatusCancelled:
			res.CancelledEvents++

			continue
		}

		financials := children.Of(event.ID).Financials()
		res.TotalRevenue = res.TotalRevenue.Add(financials.TotalCustomerPrice)
		res.TotalCollected = res.TotalCollected.Add(financials.TotalCollected)
		res.TotalExpenses = res.TotalExpenses.Add(financials.TotalVendorCost)
		res.TotalPaid = res.TotalPaid.Add(financials.TotalVendorPaid)
	}

	res.TotalRevenue = money.Round(res.TotalRevenue)
	res.TotalCollected = money.Round(res.TotalCollected)
	res.TotalExpenses = money.Round(res.TotalExpenses)
	res.TotalPaid = money.Round(res.TotalPaid)
	res.RevenuePending = money.Round(res.TotalRevenue.Sub(res.TotalCollected))
	res.ExpensesPending = money.Round(res.TotalExpenses.Sub(res.TotalPaid))
	res.TotalProfit = money.Round(res.TotalRevenue.Sub(res.TotalExpenses))

	return res
}
