package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "expenses"
	EntityName = "expense"

	FieldID                 = "id"
	FieldCategory           = "category"
	FieldDescription        = "description"
	FieldAmount             = "amount"
	FieldAmountPaid         = "amount_paid"
	FieldAmountDue          = "amount_due"
	FieldExpenseDate        = "expense_date"
	FieldDueDate            = "due_date"
	FieldStatus             = "status"
	FieldPaymentMode        = "payment_mode"
	FieldPaymentDate        = "payment_date"
	FieldVendorName         = "vendor_name"
	FieldEmployeeName       = "employee_name"
	FieldRoomNumber         = "room_number"
	FieldRecurrenceType     = "recurrence_type"
	FieldRecurrenceEndDate  = "recurrence_end_date"
	FieldNextOccurrenceDate = "next_occurrence_date"
	FieldReceiptPath        = "receipt_path"
)

type Category string

const (
	CategoryStaffSalaries        Category = "Staff Salaries"
	CategoryUtilities            Category = "Utilities"
	CategoryHousekeepingSupplies Category = "Housekeeping Supplies"
	CategoryMaintenance          Category = "Maintenance & Repairs"
	CategoryKitchen              Category = "Kitchen/Restaurant"
	CategoryMarketing            Category = "Marketing & Commissions"
	CategoryOther                Category = "Other Operating Expenses"
)

func Categories() []Category {
	return []Category{
		CategoryStaffSalaries,
		CategoryUtilities,
		CategoryHousekeepingSupplies,
		CategoryMaintenance,
		CategoryKitchen,
		CategoryMarketing,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, category := range Categories() {
		if c == category {
			return true
		}
	}

	return false
}

type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
)

func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

type Recurrence string

const (
	RecurrenceOneTime Recurrence = "One Time"
	RecurrenceMonthly Recurrence = "Monthly"
	RecurrenceYearly  Recurrence = "Yearly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOneTime, RecurrenceMonthly, RecurrenceYearly:
		return true
	}

	return false
}

func (r Recurrence) Repeats() bool {
	return r == RecurrenceMonthly || r == RecurrenceYearly
}

type Expense struct {
	ID                 string                    `db:"id"`
	Category           Category                  `db:"category"`
	Subcategory        *string                   `db:"subcategory"`
	Description        string                    `db:"description"`
	Amount             decimal.Decimal           `db:"amount"`
	AmountPaid         decimal.Decimal           `db:"amount_paid"`
	AmountDue          decimal.Decimal           `db:"amount_due"`
	ExpenseDate        time.Time                 `db:"expense_date"`
	DueDate            *time.Time                `db:"due_date"`
	Status             Status                    `db:"status"`
	PaymentMode        *bookingModel.PaymentMode `db:"payment_mode"`
	PaymentDate        *time.Time                `db:"payment_date"`
	VendorName         *string                   `db:"vendor_name"`
	EmployeeName       *string                   `db:"employee_name"`
	VendorContact      *string                   `db:"vendor_contact"`
	InvoiceNumber      *string                   `db:"invoice_number"`
	RoomNumber         *string                   `db:"room_number"`
	RecurrenceType     Recurrence                `db:"recurrence_type"`
	RecurrenceEndDate  *time.Time                `db:"recurrence_end_date"`
	NextOccurrenceDate *time.Time                `db:"next_occurrence_date"`
	RecurrenceParentID *string                   `db:"recurrence_parent_id"`
	Notes              *string                   `db:"notes"`
	ReceiptPath        *string                   `db:"receipt_path"`
	model.Metadata
}
