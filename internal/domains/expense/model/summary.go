package model

import (
	"hotel/shared/money"
	"hotel/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

const TrendMonths = 12

type Summary struct {
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	TotalDue      decimal.Decimal
	ByCategory    map[Category]decimal.Decimal
	MonthlyTrend  []MonthTotal
}

type MonthTotal struct {
	Month  time.Time
	Amount decimal.Decimal
}

type CategoryTotal struct {
	Category     Category
	TotalAmount  decimal.Decimal
	ExpenseCount int
}

// Summarize folds expenses into totals. When trendEnd is set, MonthlyTrend holds the
// TrendMonths calendar months ending with the month of trendEnd, oldest first.
func Summarize(expenses []Expense, trendEnd *time.Time) Summary {
	summary := Summary{ByCategory: make(map[Category]decimal.Decimal)}

	var amounts, paid, due []decimal.Decimal

	months := make(map[time.Time][]decimal.Decimal)

	for _, expense := range expenses {
		amounts = append(amounts, expense.Amount)
		paid = append(paid, expense.AmountPaid)

		if expense.Status == StatusPending {
			due = append(due, money.NonNegative(expense.Amount.Sub(expense.AmountPaid)))
		}

		summary.ByCategory[expense.Category] = summary.ByCategory[expense.Category].Add(expense.Amount)

		month := timezone.MonthStart(expense.ExpenseDate)
		months[month] = append(months[month], expense.Amount)
	}

	summary.TotalAmount = money.Sum(amounts...)
	summary.PaidAmount = money.Sum(paid...)
	summary.PendingAmount = summary.TotalAmount.Sub(summary.PaidAmount)
	summary.TotalDue = money.Sum(due...)

	for category, amount := range summary.ByCategory {
		summary.ByCategory[category] = money.Round(amount)
	}

	if trendEnd == nil {
		return summary
	}

	first := timezone.MonthStart(*trendEnd).AddDate(0, 1-TrendMonths, 0)
	summary.MonthlyTrend = make([]MonthTotal, TrendMonths)

	for i := range summary.MonthlyTrend {
		month := first.AddDate(0, i, 0)
		summary.MonthlyTrend[i] = MonthTotal{Month: month, Amount: money.Sum(months[month]...)}
	}

	return summary
}

// Breakdown totals expenses per category in the order of Categories. Categories
// without expenses are left out.
func Breakdown(expenses []Expense) []CategoryTotal {
	totals := make(map[Category]*CategoryTotal)

	for _, expense := range expenses {
		total, ok := totals[expense.Category]
		if !ok {
			total = &CategoryTotal{Category: expense.Category, TotalAmount: decimal.Zero}
			totals[expense.Category] = total
		}

		total.TotalAmount = total.TotalAmount.Add(expense.Amount)
		total.ExpenseCount++
	}

	breakdown := make([]CategoryTotal, 0, len(totals))

	for _, category := range Categories() {
		if total, ok := totals[category]; ok {
			total.TotalAmount = money.Round(total.TotalAmount)
			breakdown = append(breakdown, *total)
		}
	}

	return breakdown
}
