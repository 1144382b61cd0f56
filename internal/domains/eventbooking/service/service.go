package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/eventbooking/model"
	"hotel/internal/domains/eventbooking/model/dto"
	"hotel/internal/domains/eventbooking/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetEvent    = "event_booking:get"
	cacheGetAllEvent = "event_booking:gets"
	cacheCountEvent  = "event_booking:count"
	cacheSummary     = "event_booking:summary"

	msgNotFound        = "event booking not found"
	msgServiceNotFound = "service not found"
	msgPaymentNotFound = "payment not found"
	msgCustomName      = "custom_service_name is required for Custom services"
)

type EventBooking interface {
	Create(ctx context.Context, req dto.CreateEventBookingRequest) (dto.EventBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Summary(ctx context.Context, req dto.SummaryRequest) (dto.SummaryResponse, error)
	Get(ctx context.Context, id string) (dto.EventBookingResponse, error)
	Update(ctx context.Context, req dto.UpdateEventBookingRequest, id string) (dto.EventBookingResponse, error)
	Delete(ctx context.Context, id string) error
	AddService(ctx context.Context, req dto.ServiceRequest, id string) (dto.ServiceResponse, error)
	UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id, serviceID string) (dto.ServiceResponse, error)
	RemoveService(ctx context.Context, id, serviceID string) error
	AddCustomerPayment(ctx context.Context, req dto.PaymentRequest, id string) (dto.PaymentResponse, error)
	RemoveCustomerPayment(ctx context.Context, id, paymentID string) error
	AddVendorPayment(ctx context.Context, req dto.PaymentRequest, id, serviceID string) (dto.PaymentResponse, error)
	RemoveVendorPayment(ctx context.Context, id, serviceID, paymentID string) error
}

type serviceImpl struct {
	repo  repository.EventBooking
	tx    postgres.Transactor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.EventBooking, tx postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) EventBooking {
	return &serviceImpl{
		repo:  repo,
		tx:    tx,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Create stores the event together with its initial services.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventBookingRequest) (res dto.EventBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for _, service := range req.Services {
		if !service.Named() {
			return res, failure.BadRequestFromString(msgCustomName) // nolint:wrapcheck
		}
	}

	event, services := req.ToModel(user)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, event); err != nil {
			return fmt.Errorf("failed to insert event booking: %w", err)
		}

		if err := s.repo.InsertServicesTx(ctx, tx, services); err != nil {
			return fmt.Errorf("failed to insert event services: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create event booking")

		return res, err //nolint:wrapcheck
	}

	s.invalidate(ctx, event.ID)

	res.FromModel(event, model.Children{Services: services})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req = req.WithDefaultSort(model.FieldBookingDate, gDto.SortDirDesc)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvent, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	events, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event bookings")

		return res, fmt.Errorf("failed to get event bookings: %w", err)
	}

	children, err := s.children(ctx, events)
	if err != nil {
		return res, err
	}

	res.FromModels(events, children, timezone.Today(), total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEvent, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count event bookings")

		return res, fmt.Errorf("failed to count event bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event booking count to cache")
		}
	}()

	return res, nil
}

// Summary counts the events dated inside the window by status and folds the money of
// those that were not cancelled.
func (s *serviceImpl) Summary(ctx context.Context, req dto.SummaryRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSummary, req.DateFrom, req.DateTo)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	from, to, err := window(req)
	if err != nil {
		return res, err
	}

	events, err := s.repo.GetAll(ctx, gDto.QueryParams{}, InWindow(from, to))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event bookings for summary")

		return res, fmt.Errorf("failed to get event bookings for summary: %w", err)
	}

	children, err := s.children(ctx, events)
	if err != nil {
		return res, err
	}

	res.FromModel(model.Summarize(events, children))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event booking summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEvent, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event booking")

		return res, nil
	}

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEventBookingRequest, id string) (res dto.EventBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, user)

	if req.BookingDate != nil {
		bookingDate, err := timezone.ParseDate(*req.BookingDate)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		fields[model.FieldBookingDate] = bookingDate
	}

	if err = s.repo.Update(ctx, fields, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update event booking")

		return res, fmt.Errorf("failed to update event booking: %w", err)
	}

	s.invalidate(ctx, id)

	return s.detail(ctx, id)
}

// Delete removes a cancelled event with everything attached to it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !event.Status.Deletable() {
		return failure.BadRequestFromString("only cancelled event bookings can be deleted") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete event booking")

		return fmt.Errorf("failed to delete event booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddService(ctx context.Context, req dto.ServiceRequest, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.AddService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	event, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !event.Status.AcceptsChanges() {
		return res, failure.BadRequestFromString("cannot add services to cancelled events") // nolint:wrapcheck
	}

	if !req.Named() {
		return res, failure.BadRequestFromString(msgCustomName) // nolint:wrapcheck
	}

	service := req.ToModel(id, user, timezone.Now())

	if err = s.repo.InsertService(ctx, service); err != nil {
		log.Error().Err(err).Msg("failed to add event service")

		return res, fmt.Errorf("failed to add event service: %w", err)
	}

	s.invalidate(ctx, id)

	res.FromModel(service, nil)

	return res, nil
}

func (s *serviceImpl) UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id, serviceID string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.UpdateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	service, err := s.findService(ctx, id, serviceID)
	if err != nil {
		return res, err
	}

	req.Apply(&service)

	if service.ServiceType == model.ServiceCustom && (service.CustomServiceName == nil || *service.CustomServiceName == "") {
		return res, failure.BadRequestFromString(msgCustomName) // nolint:wrapcheck
	}

	fields := shared.TransformFields(req, user)

	if req.CustomerPrice != nil {
		fields[model.FieldCustomerPrice] = service.CustomerPrice
	}

	if req.VendorCost != nil {
		fields[model.FieldVendorCost] = service.VendorCost
	}

	if err = s.repo.UpdateService(ctx, fields, id, serviceID); err != nil {
		log.Error().Err(err).Msg("failed to update event service")

		return res, fmt.Errorf("failed to update event service: %w", err)
	}

	s.invalidate(ctx, id)

	children, err := s.repo.GetChildren(ctx, []string{id})
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor payments")

		return res, fmt.Errorf("failed to get vendor payments: %w", err)
	}

	res.FromModel(service, children.VendorPayments)

	return res, nil
}

func (s *serviceImpl) RemoveService(ctx context.Context, id, serviceID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.RemoveService")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.findService(ctx, id, serviceID); err != nil {
		return err
	}

	if err = s.repo.DeleteService(ctx, id, serviceID); err != nil {
		log.Error().Err(err).Msg("failed to remove event service")

		return fmt.Errorf("failed to remove event service: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddCustomerPayment(ctx context.Context, req dto.PaymentRequest, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.AddCustomerPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	event, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !event.Status.AcceptsChanges() {
		return res, failure.BadRequestFromString("cannot add payments to cancelled events") // nolint:wrapcheck
	}

	payment := req.ToCustomerPayment(id, user)

	if err = s.repo.InsertCustomerPayment(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to add customer payment")

		return res, fmt.Errorf("failed to add customer payment: %w", err)
	}

	s.invalidate(ctx, id)

	return dto.FromCustomerPayment(payment), nil
}

func (s *serviceImpl) RemoveCustomerPayment(ctx context.Context, id, paymentID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.RemoveCustomerPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.repo.GetCustomerPayment(ctx, id, paymentID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer payment")

		return fmt.Errorf("failed to get customer payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return failure.NotFound(msgPaymentNotFound) // nolint:wrapcheck
	}

	if err = s.repo.DeleteCustomerPayment(ctx, id, paymentID); err != nil {
		log.Error().Err(err).Msg("failed to remove customer payment")

		return fmt.Errorf("failed to remove customer payment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddVendorPayment(ctx context.Context, req dto.PaymentRequest, id, serviceID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.AddVendorPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.findService(ctx, id, serviceID); err != nil {
		return res, err
	}

	payment := req.ToVendorPayment(serviceID, user)

	if err = s.repo.InsertVendorPayment(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to add vendor payment")

		return res, fmt.Errorf("failed to add vendor payment: %w", err)
	}

	s.invalidate(ctx, id)

	return dto.FromVendorPayment(payment), nil
}

func (s *serviceImpl) RemoveVendorPayment(ctx context.Context, id, serviceID, paymentID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event_booking.RemoveVendorPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.findService(ctx, id, serviceID); err != nil {
		return err
	}

	payment, err := s.repo.GetVendorPayment(ctx, serviceID, paymentID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor payment")

		return fmt.Errorf("failed to get vendor payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return failure.NotFound(msgPaymentNotFound) // nolint:wrapcheck
	}

	if err = s.repo.DeleteVendorPayment(ctx, serviceID, paymentID); err != nil {
		log.Error().Err(err).Msg("failed to remove vendor payment")

		return fmt.Errorf("failed to remove vendor payment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.EventBooking, error) {
	event, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event booking")

		return event, fmt.Errorf("failed to get event booking: %w", err)
	}

	if event.ID == constant.Empty {
		return event, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	return event, nil
}

func (s *serviceImpl) findService(ctx context.Context, id, serviceID string) (model.Service, error) {
	service, err := s.repo.GetService(ctx, id, serviceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event service")

		return service, fmt.Errorf("failed to get event service: %w", err)
	}

	if service.ID == constant.Empty {
		return service, failure.NotFound(msgServiceNotFound) // nolint:wrapcheck
	}

	return service, nil
}

func (s *serviceImpl) detail(ctx context.Context, id string) (res dto.EventBookingResponse, err error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	children, err := s.children(ctx, []model.EventBooking{event})
	if err != nil {
		return res, err
	}

	res.FromModel(event, children)

	return res, nil
}

func (s *serviceImpl) children(ctx context.Context, events []model.EventBooking) (model.Children, error) {
	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	children, err := s.repo.GetChildren(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event services and payments")

		return children, fmt.Errorf("failed to get event services and payments: %w", err)
	}

	return children, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEvent, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete event booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent, cacheCountEvent, cacheSummary)
	}()
}

// InWindow selects the events whose booking_date lies in [from, to]; a nil bound is open.
func InWindow(from, to *time.Time) gDto.FilterGroup {
	filter := gDto.FilterGroup{}

	if from != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "booking_date_from",
			Field:    model.FieldBookingDate,
			Value:    *from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if to != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "booking_date_to",
			Field:    model.FieldBookingDate,
			Value:    *to,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return filter
}

func window(req dto.SummaryRequest) (from, to *time.Time, err error) {
	if req.DateFrom != "" {
		parsed, err := timezone.ParseDate(req.DateFrom)
		if err != nil {
			return nil, nil, failure.BadRequest(err) // nolint:wrapcheck
		}

		from = &parsed
	}

	if req.DateTo != "" {
		parsed, err := timezone.ParseDate(req.DateTo)
		if err != nil {
			return nil, nil, failure.BadRequest(err) // nolint:wrapcheck
		}

		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, failure.BadRequestFromString("date_to must not be before date_from") // nolint:wrapcheck
	}

	return from, to, nil
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
