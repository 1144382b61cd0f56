package model

import (
	"hotel/shared/money"
	"time"
)

// Settle derives amount_due and status from amount and amount_paid.
func (e *Expense) Settle() {
	e.Amount = money.Round(e.Amount)
	e.AmountPaid = money.Round(e.AmountPaid)
	e.AmountDue = money.NonNegative(e.Amount.Sub(e.AmountPaid))

	if e.AmountPaid.GreaterThanOrEqual(e.Amount) {
		e.Status = StatusPaid

		return
	}

	e.Status = StatusPending
}

// MarkPaid settles the whole amount on paidOn.
func (e *Expense) MarkPaid(paidOn time.Time) {
	e.AmountPaid = e.Amount
	e.PaymentDate = &paidOn
	e.Settle()
}

// MarkPending reopens a settled expense. Partial payments are kept.
func (e *Expense) MarkPending() {
	if e.AmountPaid.GreaterThanOrEqual(e.Amount) {
		e.AmountPaid = money.Zero
		e.PaymentDate = nil
	}

	e.Settle()
}

// Overdue reports whether a pending expense is past its due date on today.
func (e Expense) Overdue(today time.Time) bool {
	return e.Status == StatusPending && e.DueDate != nil && e.DueDate.Before(today)
}

// Fields returns the derived columns for a partial update.
func (e Expense) Fields() map[string]any {
	return map[string]any{
		FieldAmount:      e.Amount,
		FieldAmountPaid:  e.AmountPaid,
		FieldAmountDue:   e.AmountDue,
		FieldStatus:      e.Status,
		FieldPaymentDate: e.PaymentDate,
	}
}
