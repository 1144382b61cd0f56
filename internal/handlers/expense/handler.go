package expense

import (
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamRecurrence = "recurrence_type"
	queryParamMonth      = "month"
	queryParamYear       = "year"
)

type Handler struct {
	service service.Expense
	otel    otel.Otel
}

func New(service service.Expense, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/expenses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExpense)
		routerGroup.Get("/", handler.GetExpenses)
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/categories/breakdown", handler.GetCategoryBreakdown)
		routerGroup.Get("/pending/overdue", handler.GetOverdue)
		routerGroup.Post("/bulk-status-update", handler.BulkUpdateStatus)
		routerGroup.Get("/{id}", handler.GetExpenseByID)
		routerGroup.Patch("/{id}", handler.UpdateExpense)
		routerGroup.Delete("/{id}", handler.DeleteExpense)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Post("/{id}/receipt", handler.UploadReceipt)
	})
}

// CreateExpense records an expense.
// @Summary Create an expense
// @Description amount_due and status are derived from amount and amount_paid. Monthly and yearly expenses are scheduled for recurrence.
// @Tags Expense
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} response.Data[dto.ExpenseResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/expenses [post]
// @Security BearerAuth
func (handler *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExpense")
	defer scope.End()

	var req dto.CreateExpenseRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	expense, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create expense")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, expense)
}

// GetExpenses lists expenses.
// @Summary Get all expenses
// @Description List expenses, newest first by default.
// @Tags Expense
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Category"
// @Param status query string false "Paid or Pending"
// @Param recurrence_type query string false "One Time, Monthly or Yearly"
// @Param vendor_name query string false "Vendor name"
// @Param date_from query string false "Expense date from (YYYY-MM-DD)"
// @Param date_to query string false "Expense date to (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetExpensesResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/expenses [get]
// @Security BearerAuth
func (handler *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := expenseFilter(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	expenses, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expenses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expenses)
}

// GetSummary totals expenses.
// @Summary Expense summary
// @Description Totals over the expense dates in the window. Without a window the response also carries a twelve month trend.
// @Tags Expense
// @Produce json
// @Param date_from query string false "From (YYYY-MM-DD)"
// @Param date_to query string false "To (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Message
// @Router /v1/expenses/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	req := dto.SummaryRequest{
		DateFrom: r.URL.Query().Get(constant.RequestParamDateFrom),
		DateTo:   r.URL.Query().Get(constant.RequestParamDateTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	summary, err := handler.service.Summary(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetCategoryBreakdown totals expenses per category.
// @Summary Expense breakdown by category
// @Description A month without a year uses the current year.
// @Tags Expense
// @Produce json
// @Param month query integer false "Month (1-12)"
// @Param year query integer false "Year"
// @Success 200 {object} response.Data[[]dto.CategoryBreakdownResponse]
// @Failure 400 {object} response.Message
// @Router /v1/expenses/categories/breakdown [get]
// @Security BearerAuth
func (handler *Handler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryBreakdown")
	defer scope.End()

	req := dto.BreakdownRequest{
		Month: shared.ConvertStringToInt(r.URL.Query().Get(queryParamMonth), 0),
		Year:  shared.ConvertStringToInt(r.URL.Query().Get(queryParamYear), 0),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	breakdown, err := handler.service.Breakdown(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense breakdown")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, breakdown)
}

// GetOverdue lists overdue expenses.
// @Summary Overdue expenses
// @Description Pending expenses whose due date has passed, earliest first.
// @Tags Expense
// @Produce json
// @Success 200 {object} response.Data[[]dto.ExpenseResponse]
// @Router /v1/expenses/pending/overdue [get]
// @Security BearerAuth
func (handler *Handler) GetOverdue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverdue")
	defer scope.End()

	expenses, err := handler.service.Overdue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overdue expenses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expenses)
}

// BulkUpdateStatus sets the status of several expenses.
// @Summary Bulk status update
// @Description All listed expenses are updated together; nothing changes when one of them does not exist.
// @Tags Expense
// @Accept json
// @Produce json
// @Param request body dto.BulkStatusRequest true "Expenses and status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/expenses/bulk-status-update [post]
// @Security BearerAuth
func (handler *Handler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkUpdateStatus")
	defer scope.End()

	var req dto.BulkStatusRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	updated, err := handler.service.BulkStatus(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense statuses")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, fmt.Sprintf("Updated %d expenses successfully", updated))
}

// GetExpenseByID returns one expense.
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Data[dto.ExpenseResponse]
// @Failure 404 {object} response.Message
// @Router /v1/expenses/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExpenseByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenseByID")
	defer scope.End()

	expense, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expense)
}

// UpdateExpense partially updates an expense.
// @Summary Update an expense
// @Description Changing amounts or dates re-derives amount_due, status and the next occurrence.
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ExpenseResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/expenses/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExpense")
	defer scope.End()

	var req dto.UpdateExpenseRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	expense, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expense)
}

// UpdateStatus marks an expense paid or pending.
// @Summary Update expense status
// @Description Paid settles the whole amount; payment_date defaults to today.
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Data[dto.ExpenseResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/expenses/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExpenseStatus")
	defer scope.End()

	var req dto.UpdateStatusRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	expense, err := handler.service.UpdateStatus(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, expense)
}

// UploadReceipt attaches a receipt to an expense.
// @Summary Upload a receipt
// @Description PNG, JPEG or PDF up to 5 MB. A previous receipt is replaced.
// @Tags Expense
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Expense ID"
// @Param file formData file true "Receipt"
// @Success 200 {object} response.Data[dto.ExpenseResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/expenses/{id}/receipt [post]
// @Security BearerAuth
func (handler *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadReceipt")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadReceiptRequest{
		Receipt:     fileHeader,
		ReceiptFile: file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	expense, err := handler.service.UploadReceipt(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload receipt")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Receipt uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, expense)
}

// DeleteExpense deletes an expense and its receipt.
// @Summary Delete an expense
// @Tags Expense
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/expenses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExpense")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete expense")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Expense deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Expense deleted successfully")
}

func expenseFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	enums := []struct {
		param string
		value any
		field string
	}{
		{param: model.FieldCategory, value: model.Category(query.Get(model.FieldCategory)), field: model.FieldCategory},
		{param: model.FieldStatus, value: model.Status(query.Get(model.FieldStatus)), field: model.FieldStatus},
		{param: queryParamRecurrence, value: model.Recurrence(query.Get(queryParamRecurrence)), field: model.FieldRecurrenceType},
	}

	for _, enum := range enums {
		if query.Get(enum.param) == constant.Empty {
			continue
		}

		if err := validator.ValidateVar(enum.value, "enum"); err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    enum.field,
			Operator: gDto.FilterOperatorEq,
			Value:    enum.value,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldVendorName, model.FieldEmployeeName, model.FieldDescription} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	bounds := []struct {
		param    string
		operator string
	}{
		{param: constant.RequestParamDateFrom, operator: gDto.FilterOperatorGreaterEq},
		{param: constant.RequestParamDateTo, operator: gDto.FilterOperatorLessEq},
	}

	for _, bound := range bounds {
		value := query.Get(bound.param)
		if value == constant.Empty {
			continue
		}

		date, err := timezone.ParseDate(value)
		if err != nil {
			return filterGroup, failure.BadRequestFromString(bound.param + " must be a date formatted as YYYY-MM-DD") //nolint:wrapcheck
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  bound.param,
			Field:    model.FieldExpenseDate,
			Operator: bound.operator,
			Value:    date,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}
