package model

import (
	"hotel/shared/money"
	"time"
)

func (r Recurrence) months() int {
	switch r {
	case RecurrenceMonthly:
		return 1
	case RecurrenceYearly:
		return 12 //nolint:mnd
	case RecurrenceOneTime:
	}

	return 0
}

// Advance returns the occurrence after date. Month ends are clamped, so an expense
// dated 31 January recurs on the last day of February.
func (r Recurrence) Advance(date time.Time) time.Time {
	return addMonths(date, r.months())
}

// After returns the first occurrence counted from anchor that falls after date.
// Counting from the anchor keeps the day of month: a 31st clamped to 29 February is back on 31 March.
func (r Recurrence) After(anchor, date time.Time) time.Time {
	step := r.months()
	if step == 0 {
		return date
	}

	for k := 1; ; k++ {
		if next := addMonths(anchor, k*step); next.After(date) {
			return next
		}
	}
}

func addMonths(date time.Time, months int) time.Time {
	first := time.Date(date.Year(), date.Month()+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1).Day()

	return first.AddDate(0, 0, min(date.Day(), last)-1)
}

// Schedule sets next_occurrence_date from expense_date for a repeating expense.
func (e *Expense) Schedule() {
	e.NextOccurrenceDate = nil

	if !e.RecurrenceType.Repeats() {
		return
	}

	next := e.RecurrenceType.Advance(e.ExpenseDate)
	if e.RecurrenceEndDate != nil && next.After(*e.RecurrenceEndDate) {
		return
	}

	e.NextOccurrenceDate = &next
}

// Occurrences materialises the occurrences of template due on or before today as
// pending one-time expenses. Dates are counted from the template's expense_date. It returns them together with the template's next
// occurrence date, nil once the recurrence has ended. newID names each copy.
func Occurrences(template Expense, today time.Time, newID func() string) ([]Expense, *time.Time) {
	next := template.NextOccurrenceDate
	if !template.RecurrenceType.Repeats() || next == nil {
		return nil, nil
	}

	var occurrences []Expense

	for !next.After(today) {
		if template.RecurrenceEndDate != nil && next.After(*template.RecurrenceEndDate) {
			return occurrences, nil
		}

		occurrences = append(occurrences, template.occurrenceOn(*next, newID()))

		advanced := template.RecurrenceType.After(template.ExpenseDate, *next)
		next = &advanced
	}

	if template.RecurrenceEndDate != nil && next.After(*template.RecurrenceEndDate) {
		return occurrences, nil
	}

	return occurrences, next
}

func (e Expense) occurrenceOn(date time.Time, id string) Expense {
	occurrence := e
	occurrence.ID = id
	occurrence.ExpenseDate = date
	occurrence.AmountPaid = money.Zero
	occurrence.PaymentDate = nil
	occurrence.PaymentMode = nil
	occurrence.ReceiptPath = nil
	occurrence.RecurrenceType = RecurrenceOneTime
	occurrence.RecurrenceEndDate = nil
	occurrence.NextOccurrenceDate = nil
	occurrence.RecurrenceParentID = &e.ID

	if e.DueDate != nil {
		due := date.Add(e.DueDate.Sub(e.ExpenseDate))
		occurrence.DueDate = &due
	}

	occurrence.Settle()

	return occurrence
}
