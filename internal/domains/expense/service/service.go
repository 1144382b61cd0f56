package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/s3"
	"hotel/internal/domains/expense/model"
	"hotel/internal/domains/expense/model/dto"
	"hotel/internal/domains/expense/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetExpense    = "expense:get"
	cacheGetAllExpense = "expense:gets"
	cacheCountExpense  = "expense:count"
	cacheSummary       = "expense:summary"

	receiptDirectory = "receipts"
	msgNotFound      = "expense not found"
)

type Expense interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (dto.ExpenseResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExpensesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ExpenseResponse, error)
	Update(ctx context.Context, req dto.UpdateExpenseRequest, id string) (dto.ExpenseResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.ExpenseResponse, error)
	BulkStatus(ctx context.Context, req dto.BulkStatusRequest) (int, error)
	Summary(ctx context.Context, req dto.SummaryRequest) (dto.SummaryResponse, error)
	Breakdown(ctx context.Context, req dto.BreakdownRequest) ([]dto.CategoryBreakdownResponse, error)
	Overdue(ctx context.Context) ([]dto.ExpenseResponse, error)
	UploadReceipt(ctx context.Context, req dto.UploadReceiptRequest, id string) (dto.ExpenseResponse, error)
	GenerateRecurring(ctx context.Context, today time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Expense
	tx      postgres.Transactor
	storage s3.Storage
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Expense, tx postgres.Transactor, storage s3.Storage, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Expense {
	return &serviceImpl{
		repo:    repo,
		tx:      tx,
		storage: storage,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExpenseRequest) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	expense := req.ToModel(user)

	if expense.Status == model.StatusPaid && expense.PaymentDate == nil {
		today := timezone.Today()
		expense.PaymentDate = &today
	}

	if err = check(expense); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, expense); err != nil {
		log.Error().Err(err).Msg("failed to create expense")

		return res, fmt.Errorf("failed to create expense: %w", err)
	}

	s.invalidate(ctx, expense.ID)

	res.FromModel(expense)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExpensesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req = req.WithDefaultSort(model.FieldExpenseDate, gDto.SortDirDesc)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExpense, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expenses")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	expenses, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses")

		return res, fmt.Errorf("failed to get expenses: %w", err)
	}

	res.FromModels(expenses, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expenses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountExpense, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count expenses")

		return res, fmt.Errorf("failed to count expenses: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetExpense, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expense")

		return res, nil
	}

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(expense)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense to cache")
		}
	}()

	return res, nil
}

// Update applies a partial update and re-derives amount_due, status and the next occurrence.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExpenseRequest, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, user)

	if req.Apply(&expense) {
		expense.Settle()

		if expense.Status == model.StatusPaid && expense.PaymentDate == nil {
			today := timezone.Today()
			expense.PaymentDate = &today
		}

		if err = check(expense); err != nil {
			return res, err
		}

		if req.ExpenseDate != nil || req.RecurrenceType != nil || req.RecurrenceEndDate != nil {
			expense.Schedule()
		}

		for field, value := range expense.Fields() {
			fields[field] = value
		}

		fields[model.FieldExpenseDate] = expense.ExpenseDate
		fields[model.FieldDueDate] = expense.DueDate
		fields[model.FieldRecurrenceType] = expense.RecurrenceType
		fields[model.FieldRecurrenceEndDate] = expense.RecurrenceEndDate
		fields[model.FieldNextOccurrenceDate] = expense.NextOccurrenceDate
	}

	if err = s.repo.Update(ctx, fields, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update expense")

		return res, fmt.Errorf("failed to update expense: %w", err)
	}

	s.invalidate(ctx, id)

	return s.reload(ctx, id)
}

// UpdateStatus marks an expense Paid, settling the full amount, or reopens it as Pending.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	setStatus(&expense, req.Status, dto.ParseOptionalDate(req.PaymentDate))

	if err = s.repo.Update(ctx, withAudit(expense.Fields(), user), byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update expense status")

		return res, fmt.Errorf("failed to update expense status: %w", err)
	}

	s.invalidate(ctx, id)

	return s.reload(ctx, id)
}

// BulkStatus sets the status of every listed expense in one transaction. Nothing is
// changed when any id is unknown.
func (s *serviceImpl) BulkStatus(ctx context.Context, req dto.BulkStatusRequest) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.BulkStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ids := slices.Clone(req.ExpenseIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	paidOn := dto.ParseOptionalDate(req.PaymentDate)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		expenses, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get expenses for bulk update")

			return fmt.Errorf("failed to get expenses for bulk update: %w", err)
		}

		if len(expenses) != len(ids) {
			return failure.NotFound("Some expenses not found") // nolint:wrapcheck
		}

		for _, expense := range expenses {
			setStatus(&expense, req.Status, paidOn)

			if err := s.repo.UpdateTx(ctx, tx, withAudit(expense.Fields(), user), byID(expense.ID)); err != nil {
				log.Error().Err(err).Str("id", expense.ID).Msg("failed to update expense status")

				return fmt.Errorf("failed to update expense status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	for _, id := range ids {
		s.invalidate(ctx, id)
	}

	return len(ids), nil
}

// Summary folds the expenses dated inside the window. Without a window it covers every
// expense and adds a twelve month trend ending this month.
func (s *serviceImpl) Summary(ctx context.Context, req dto.SummaryRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSummary, req.DateFrom, req.DateTo)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	from := dto.ParseOptionalDate(&req.DateFrom)
	to := dto.ParseOptionalDate(&req.DateTo)

	if from != nil && to != nil && to.Before(*from) {
		return res, failure.BadRequestFromString("date_to must not be before date_from") // nolint:wrapcheck
	}

	expenses, err := s.inWindow(ctx, from, to)
	if err != nil {
		return res, err
	}

	var trendEnd *time.Time

	if !req.Windowed() {
		today := timezone.Today()
		trendEnd = &today
	}

	res.FromModel(model.Summarize(expenses, trendEnd))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Breakdown(ctx context.Context, req dto.BreakdownRequest) (res []dto.CategoryBreakdownResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Breakdown")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to := req.Window(timezone.Today())

	expenses, err := s.inWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return dto.ToBreakdownResponses(model.Breakdown(expenses)), nil
}

// Overdue lists pending expenses whose due date has passed, earliest due first.
func (s *serviceImpl) Overdue(ctx context.Context) (res []dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Overdue")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldDueDate, Value: timezone.Today(), Operator: gDto.FilterOperatorLess, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDueDate, SortDir: gDto.SortDirAsc}

	expenses, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overdue expenses")

		return nil, fmt.Errorf("failed to get overdue expenses: %w", err)
	}

	return dto.ToResponses(expenses), nil
}

// UploadReceipt stores the receipt in object storage and replaces any previous one.
func (s *serviceImpl) UploadReceipt(ctx context.Context, req dto.UploadReceiptRequest, id string) (res dto.ExpenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.UploadReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(req.Receipt.Filename))
	contentType := req.Receipt.Header.Get(constant.RequestHeaderContentType)

	url, err := s.storage.Upload(ctx, receiptDirectory+"/"+id, fileName, contentType, req.ReceiptFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload receipt")

		return res, fmt.Errorf("failed to upload receipt: %w", err)
	}

	if err = s.repo.Update(ctx, withAudit(map[string]any{model.FieldReceiptPath: url}, user), byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to save receipt path")

		return res, fmt.Errorf("failed to save receipt path: %w", err)
	}

	if expense.ReceiptPath != nil {
		s.removeReceipt(ctx, *expense.ReceiptPath)
	}

	s.invalidate(ctx, id)

	expense.ReceiptPath = &url
	res.FromModel(expense)

	return res, nil
}

// GenerateRecurring materialises every occurrence of the repeating expenses that falls
// on or before today and moves each template to its next occurrence.
func (s *serviceImpl) GenerateRecurring(ctx context.Context, today time.Time) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.GenerateRecurring")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	templates, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRecurrenceType,
				Value:    []model.Recurrence{model.RecurrenceMonthly, model.RecurrenceYearly},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{Field: model.FieldNextOccurrenceDate, Value: today, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get recurring expenses")

		return 0, fmt.Errorf("failed to get recurring expenses: %w", err)
	}

	now := timezone.Now()

	for _, template := range templates {
		occurrences, next := model.Occurrences(template, today, uuid.NewString)

		for i := range occurrences {
			occurrences[i].CreatedAt = now
			occurrences[i].ModifiedAt = now
			occurrences[i].CreatedBy = user
			occurrences[i].ModifiedBy = user
		}

		err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
			if len(occurrences) > 0 {
				if err := s.repo.InsertBulkTx(ctx, tx, occurrences); err != nil {
					return fmt.Errorf("failed to insert recurring expenses: %w", err)
				}
			}

			fields := withAudit(map[string]any{model.FieldNextOccurrenceDate: next}, user)

			if err := s.repo.UpdateTx(ctx, tx, fields, byID(template.ID)); err != nil {
				return fmt.Errorf("failed to advance recurring expense: %w", err)
			}

			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("id", template.ID).Msg("failed to generate recurring expense")

			return res, err //nolint:wrapcheck
		}

		res += len(occurrences)

		s.invalidate(ctx, template.ID)
	}

	log.Info().Int("generated", res).Int("templates", len(templates)).Msg("recurring expenses generated")

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	expense, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete expense")

		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if expense.ReceiptPath != nil {
		s.removeReceipt(ctx, *expense.ReceiptPath)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Expense, error) {
	expense, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expense")

		return expense, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.ID == constant.Empty {
		return expense, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	return expense, nil
}

func (s *serviceImpl) reload(ctx context.Context, id string) (res dto.ExpenseResponse, err error) {
	expense, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(expense)

	return res, nil
}

func (s *serviceImpl) inWindow(ctx context.Context, from, to *time.Time) ([]model.Expense, error) {
	filter := gDto.FilterGroup{}

	if from != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "expense_date_from",
			Field:    model.FieldExpenseDate,
			Value:    *from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if to != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "expense_date_to",
			Field:    model.FieldExpenseDate,
			Value:    *to,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	expenses, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expenses in window")

		return nil, fmt.Errorf("failed to get expenses in window: %w", err)
	}

	return expenses, nil
}

func (s *serviceImpl) removeReceipt(ctx context.Context, url string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.storage.Delete(c, s.storage.ObjectKeyFromURL(url)); err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to delete receipt")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExpense, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete expense cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExpense, cacheCountExpense, cacheSummary)
	}()
}

// check enforces the cross-field rules of an expense.
func check(expense model.Expense) error {
	if expense.AmountPaid.GreaterThan(expense.Amount) {
		return failure.BadRequestFromString("amount_paid cannot exceed amount") // nolint:wrapcheck
	}

	if expense.DueDate != nil && expense.DueDate.Before(expense.ExpenseDate) {
		return failure.BadRequestFromString("due_date cannot be before expense_date") // nolint:wrapcheck
	}

	if expense.PaymentDate != nil && expense.PaymentDate.Before(expense.ExpenseDate) {
		return failure.BadRequestFromString("payment_date cannot be before expense_date") // nolint:wrapcheck
	}

	if expense.RecurrenceEndDate != nil && !expense.RecurrenceEndDate.After(expense.ExpenseDate) {
		return failure.BadRequestFromString("recurrence_end_date must be after expense_date") // nolint:wrapcheck
	}

	return nil
}

func setStatus(expense *model.Expense, status model.Status, paidOn *time.Time) {
	if status == model.StatusPending {
		expense.MarkPending()

		return
	}

	if paidOn == nil {
		today := timezone.Today()
		paidOn = &today
	}

	expense.MarkPaid(*paidOn)
}

func withAudit(fields map[string]any, user string) map[string]any {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	return fields
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
