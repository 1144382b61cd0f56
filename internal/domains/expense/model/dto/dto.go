package dto

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/expense/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Category          model.Category            `json:"category"            validate:"required,enum"`
	Subcategory       *string                   `json:"subcategory"         validate:"omitempty,max=100"`
	Description       string                    `json:"description"         validate:"required,min=1,max=500"`
	Amount            decimal.Decimal           `json:"amount"              validate:"gt=0"`
	AmountPaid        decimal.Decimal           `json:"amount_paid"         validate:"gte=0"`
	ExpenseDate       string                    `json:"expense_date"        validate:"required,date"`
	DueDate           *string                   `json:"due_date"            validate:"omitempty,date"`
	PaymentMode       *bookingModel.PaymentMode `json:"payment_mode"        validate:"omitempty,enum"`
	PaymentDate       *string                   `json:"payment_date"        validate:"omitempty,date"`
	VendorName        *string                   `json:"vendor_name"         validate:"omitempty,max=200"`
	EmployeeName      *string                   `json:"employee_name"       validate:"omitempty,max=200"`
	VendorContact     *string                   `json:"vendor_contact"      validate:"omitempty,max=100"`
	InvoiceNumber     *string                   `json:"invoice_number"      validate:"omitempty,max=100"`
	RoomNumber        *string                   `json:"room_number"         validate:"omitempty,max=20"`
	RecurrenceType    model.Recurrence          `json:"recurrence_type"     validate:"omitempty,enum"`
	RecurrenceEndDate *string                   `json:"recurrence_end_date" validate:"omitempty,date"`
	Notes             *string                   `json:"notes"`
}

// ToModel builds a settled expense. Dates have already been checked by the handler's validation.
func (c *CreateExpenseRequest) ToModel(user string) model.Expense {
	recurrence := c.RecurrenceType
	if recurrence == "" {
		recurrence = model.RecurrenceOneTime
	}

	now := timezone.Now()
	expenseDate, _ := timezone.ParseDate(c.ExpenseDate)

	expense := model.Expense{
		ID:                uuid.NewString(),
		Category:          c.Category,
		Subcategory:       c.Subcategory,
		Description:       strings.TrimSpace(c.Description),
		Amount:            c.Amount,
		AmountPaid:        c.AmountPaid,
		ExpenseDate:       expenseDate,
		DueDate:           ParseOptionalDate(c.DueDate),
		PaymentMode:       c.PaymentMode,
		PaymentDate:       ParseOptionalDate(c.PaymentDate),
		VendorName:        c.VendorName,
		EmployeeName:      c.EmployeeName,
		VendorContact:     c.VendorContact,
		InvoiceNumber:     c.InvoiceNumber,
		RoomNumber:        c.RoomNumber,
		RecurrenceType:    recurrence,
		RecurrenceEndDate: ParseOptionalDate(c.RecurrenceEndDate),
		Notes:             c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	expense.Settle()
	expense.Schedule()

	return expense
}

// UpdateExpenseRequest is a partial update. Fields tagged db:"-" feed the settlement or
// the schedule and are applied by the service on the stored expense.
type UpdateExpenseRequest struct {
	Category          *model.Category           `db:"category"       json:"category"            validate:"omitempty,enum"`
	Subcategory       *string                   `db:"subcategory"    json:"subcategory"         validate:"omitempty,max=100"`
	Description       *string                   `db:"description"    json:"description"         validate:"omitempty,min=1,max=500"`
	PaymentMode       *bookingModel.PaymentMode `db:"payment_mode"   json:"payment_mode"        validate:"omitempty,enum"`
	VendorName        *string                   `db:"vendor_name"    json:"vendor_name"         validate:"omitempty,max=200"`
	EmployeeName      *string                   `db:"employee_name"  json:"employee_name"       validate:"omitempty,max=200"`
	VendorContact     *string                   `db:"vendor_contact" json:"vendor_contact"      validate:"omitempty,max=100"`
	InvoiceNumber     *string                   `db:"invoice_number" json:"invoice_number"      validate:"omitempty,max=100"`
	RoomNumber        *string                   `db:"room_number"    json:"room_number"         validate:"omitempty,max=20"`
	Notes             *string                   `db:"notes"          json:"notes"`
	Amount            *decimal.Decimal          `db:"-"              json:"amount"              validate:"omitempty,gt=0"`
	AmountPaid        *decimal.Decimal          `db:"-"              json:"amount_paid"         validate:"omitempty,gte=0"`
	ExpenseDate       *string                   `db:"-"              json:"expense_date"        validate:"omitempty,date"`
	DueDate           *string                   `db:"-"              json:"due_date"            validate:"omitempty,date"`
	PaymentDate       *string                   `db:"-"              json:"payment_date"        validate:"omitempty,date"`
	RecurrenceType    *model.Recurrence         `db:"-"              json:"recurrence_type"     validate:"omitempty,enum"`
	RecurrenceEndDate *string                   `db:"-"              json:"recurrence_end_date" validate:"omitempty,date"`
}

// Apply copies the settlement and schedule fields onto expense and reports whether
// any of them was set.
func (u *UpdateExpenseRequest) Apply(expense *model.Expense) bool {
	changed := false

	if u.Amount != nil {
		expense.Amount = *u.Amount
		changed = true
	}

	if u.AmountPaid != nil {
		expense.AmountPaid = *u.AmountPaid
		changed = true
	}

	if date := ParseOptionalDate(u.ExpenseDate); date != nil {
		expense.ExpenseDate = *date
		changed = true
	}

	if date := ParseOptionalDate(u.DueDate); date != nil {
		expense.DueDate = date
		changed = true
	}

	if date := ParseOptionalDate(u.PaymentDate); date != nil {
		expense.PaymentDate = date
		changed = true
	}

	if u.RecurrenceType != nil {
		expense.RecurrenceType = *u.RecurrenceType
		changed = true
	}

	if date := ParseOptionalDate(u.RecurrenceEndDate); date != nil {
		expense.RecurrenceEndDate = date
		changed = true
	}

	return changed
}

type UpdateStatusRequest struct {
	Status      model.Status `json:"status"       validate:"required,enum"`
	PaymentDate *string      `json:"payment_date" validate:"omitempty,date"`
}

type BulkStatusRequest struct {
	ExpenseIDs  []string     `json:"expense_ids"  validate:"required,min=1,max=200,dive,required"`
	Status      model.Status `json:"status"       validate:"required,enum"`
	PaymentDate *string      `json:"payment_date" validate:"omitempty,date"`
}

type SummaryRequest struct {
	DateFrom string `json:"date_from" validate:"omitempty,date"`
	DateTo   string `json:"date_to"   validate:"omitempty,date"`
}

func (s SummaryRequest) Windowed() bool {
	return s.DateFrom != "" || s.DateTo != ""
}

type BreakdownRequest struct {
	Month int `json:"month" validate:"omitempty,min=1,max=12"`
	Year  int `json:"year"  validate:"omitempty,min=2020,max=2100"`
}

// Window returns the expense_date range selected by month and year. A month without a
// year means that month of the current year. Both empty selects everything.
func (b BreakdownRequest) Window(today time.Time) (from, to *time.Time) {
	if b.Month == 0 && b.Year == 0 {
		return nil, nil
	}

	year := b.Year
	if year == 0 {
		year = today.Year()
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)

	if b.Month != 0 {
		start = time.Date(year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	}

	return &start, &end
}

type UploadReceiptRequest struct {
	Receipt     *multipart.FileHeader `json:"receipt" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpeg application/pdf,maxfilesize=5"`
	ReceiptFile multipart.File        `json:"-"`
}

type ExpenseResponse struct {
	ID                 string                    `json:"id"`
	Category           model.Category            `json:"category"`
	Subcategory        *string                   `json:"subcategory"`
	Description        string                    `json:"description"`
	Amount             decimal.Decimal           `json:"amount"`
	AmountPaid         decimal.Decimal           `json:"amount_paid"`
	AmountDue          decimal.Decimal           `json:"amount_due"`
	ExpenseDate        string                    `json:"expense_date"`
	DueDate            *string                   `json:"due_date"`
	Status             model.Status              `json:"status"`
	PaymentMode        *bookingModel.PaymentMode `json:"payment_mode"`
	PaymentDate        *string                   `json:"payment_date"`
	VendorName         *string                   `json:"vendor_name"`
	EmployeeName       *string                   `json:"employee_name"`
	VendorContact      *string                   `json:"vendor_contact"`
	InvoiceNumber      *string                   `json:"invoice_number"`
	RoomNumber         *string                   `json:"room_number"`
	RecurrenceType     model.Recurrence          `json:"recurrence_type"`
	RecurrenceEndDate  *string                   `json:"recurrence_end_date"`
	NextOccurrenceDate *string                   `json:"next_occurrence_date"`
	RecurrenceParentID *string                   `json:"recurrence_parent_id"`
	Notes              *string                   `json:"notes"`
	ReceiptPath        *string                   `json:"receipt_path"`
	gDto.Metadata
}

func (e *ExpenseResponse) FromModel(expense model.Expense) {
	e.ID = expense.ID
	e.Category = expense.Category
	e.Subcategory = expense.Subcategory
	e.Description = expense.Description
	e.Amount = expense.Amount
	e.AmountPaid = expense.AmountPaid
	e.AmountDue = expense.AmountDue
	e.ExpenseDate = timezone.FormatDate(expense.ExpenseDate)
	e.DueDate = FormatOptionalDate(expense.DueDate)
	e.Status = expense.Status
	e.PaymentMode = expense.PaymentMode
	e.PaymentDate = FormatOptionalDate(expense.PaymentDate)
	e.VendorName = expense.VendorName
	e.EmployeeName = expense.EmployeeName
	e.VendorContact = expense.VendorContact
	e.InvoiceNumber = expense.InvoiceNumber
	e.RoomNumber = expense.RoomNumber
	e.RecurrenceType = expense.RecurrenceType
	e.RecurrenceEndDate = FormatOptionalDate(expense.RecurrenceEndDate)
	e.NextOccurrenceDate = FormatOptionalDate(expense.NextOccurrenceDate)
	e.RecurrenceParentID = expense.RecurrenceParentID
	e.Notes = expense.Notes
	e.ReceiptPath = expense.ReceiptPath
	e.Metadata.FromModel(expense.Metadata)
}

type GetExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetExpensesResponse) FromModels(expenses []model.Expense, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)
	g.Expenses = ToResponses(expenses)
}

func ToResponses(expenses []model.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i].FromModel(expense)
	}

	return responses
}

type MonthTotalResponse struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type SummaryResponse struct {
	TotalAmount       decimal.Decimal                    `json:"total_amount"`
	PaidAmount        decimal.Decimal                    `json:"paid_amount"`
	PendingAmount     decimal.Decimal                    `json:"pending_amount"`
	TotalDue          decimal.Decimal                    `json:"total_due"`
	ExpenseByCategory map[model.Category]decimal.Decimal `json:"expense_by_category"`
	MonthlyTrend      []MonthTotalResponse               `json:"monthly_trend"`
}

func (s *SummaryResponse) FromModel(summary model.Summary) {
	s.TotalAmount = summary.TotalAmount
	s.PaidAmount = summary.PaidAmount
	s.PendingAmount = summary.PendingAmount
	s.TotalDue = summary.TotalDue
	s.ExpenseByCategory = summary.ByCategory

	s.MonthlyTrend = make([]MonthTotalResponse, len(summary.MonthlyTrend))
	for i, month := range summary.MonthlyTrend {
		s.MonthlyTrend[i] = MonthTotalResponse{Month: month.Month.Format("2006-01"), Amount: month.Amount}
	}
}

type CategoryBreakdownResponse struct {
	Category     model.Category  `json:"category"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ExpenseCount int             `json:"expense_count"`
}

func ToBreakdownResponses(breakdown []model.CategoryTotal) []CategoryBreakdownResponse {
	responses := make([]CategoryBreakdownResponse, len(breakdown))
	for i, total := range breakdown {
		responses[i] = CategoryBreakdownResponse{
			Category:     total.Category,
			TotalAmount:  total.TotalAmount,
			ExpenseCount: total.ExpenseCount,
		}
	}

	return responses
}

// ParseOptionalDate returns nil for an absent or malformed date.
func ParseOptionalDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}

	parsed, err := timezone.ParseDate(*value)
	if err != nil {
		return nil
	}

	return &parsed
}

func FormatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.FormatDate(*value)

	return &formatted
}
