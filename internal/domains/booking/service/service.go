package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/ledger"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/money"
	"hotel/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	// guest statistics are rolled up from bookings
	cacheGuests = "guest"

	defaultRevenueDays = 30

	msgOverlap = "Room is already booked for overlapping dates"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	MarkNoShow(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (dto.BookingResponse, error)
	CollectPayment(ctx context.Context, req dto.CollectPaymentRequest, id string) (dto.LedgerResponse, error)
	GetPayments(ctx context.Context, id string) ([]dto.PaymentResponse, error)
	AddService(ctx context.Context, req dto.AddServiceRequest, id string) (dto.LedgerResponse, error)
	RemoveService(ctx context.Context, id, serviceID string) (dto.LedgerResponse, error)
	GetServices(ctx context.Context, id string) ([]dto.ServiceResponse, error)
	GetActivities(ctx context.Context, id string) ([]dto.ActivityResponse, error)
	Delete(ctx context.Context, id string) error
	Arrivals(ctx context.Context, date time.Time) ([]dto.ArrivalResponse, error)
	Departures(ctx context.Context) ([]dto.DepartureResponse, error)
	RevenueDaily(ctx context.Context, req dto.DateRangeRequest) (dto.RevenueDailyResponse, error)
	RevenueSummary(ctx context.Context, req dto.DateRangeRequest) (dto.RevenueSummaryResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	tx        postgres.Transactor
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	tx postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		guestRepo: guestRepo,
		tx:        tx,
		kafka:     kafka,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.lockRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}

		if !room.Status.Bookable() {
			return failure.BadRequestFromString("Room is not available") // nolint:wrapcheck
		}

		if guests := req.GuestCount(); guests > room.MaxOccupancy {
			return failure.BadRequestFromString(fmt.Sprintf("Guest count (%d) exceeds room capacity (%d)", guests, room.MaxOccupancy)) // nolint:wrapcheck
		}

		overlap, err := s.repo.HasOverlapTx(ctx, tx, room.ID, checkIn, checkOut, constant.Empty)
		if err != nil {
			log.Error().Err(err).Msg("failed to check room availability")

			return fmt.Errorf("failed to check room availability: %w", err)
		}

		if overlap {
			return failure.Conflict(msgOverlap) // nolint:wrapcheck
		}

		rate := room.BasePrice
		if req.RoomRatePerNight != nil {
			rate = *req.RoomRatePerNight
		}

		booking = req.ToModel(user, checkIn, checkOut, rate)

		result := ledger.Compute(ledger.Input{
			Rate:     booking.RoomRatePerNight,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Advance:  booking.AdvancePayment,
		})
		if result.Overpaid() {
			return failure.BadRequestFromString("Advance payment exceeds the total amount") // nolint:wrapcheck
		}

		result.ApplyTo(&booking)

		guestID, err := s.linkGuestTx(ctx, tx, user, booking)
		if err != nil {
			return err
		}

		booking.GuestID = &guestID

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			if fail := failure.FromPqError(err, msgOverlap); fail != nil {
				return fail
			}

			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		booking.RoomNumber = room.RoomNumber
		booking.RoomType = string(room.RoomType)
		booking.FloorNumber = room.FloorNumber

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	s.publish(ctx, model.EventCreated, booking, map[string]any{
		"room_id":      booking.RoomID,
		"total_amount": booking.TotalAmount,
	})
	s.invalidate(ctx, booking.ID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req = req.WithDefaultSort(model.FieldCheckInDate, gDto.SortDirDesc)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update applies a partial update. Moving the stay re-runs the availability check under the
// room lock and every change to dates, rate or advance re-derives the charges.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := byID(id)

	var current model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		fields := shared.TransformFields(req, user)

		if req.MovesStay() && !current.Status.Active() {
			return failure.Conflict(fmt.Sprintf("Cannot move a booking that is %s", current.Status)) // nolint:wrapcheck
		}

		roomID, checkIn, checkOut := current.RoomID, current.CheckInDate, current.CheckOutDate

		if req.RoomID != nil {
			roomID = *req.RoomID
		}

		if req.CheckInDate != nil {
			if checkIn, err = timezone.ParseDate(*req.CheckInDate); err != nil {
				return failure.BadRequestFromString("check_in_date must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
			}
		}

		if req.CheckOutDate != nil {
			if checkOut, err = timezone.ParseDate(*req.CheckOutDate); err != nil {
				return failure.BadRequestFromString("check_out_date must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
			}
		}

		if !checkOut.After(checkIn) {
			return failure.BadRequestFromString("Check-out date must be after check-in date") // nolint:wrapcheck
		}

		if req.MovesStay() || req.Adults != nil || req.Children != nil {
			if err = s.checkRoomTx(ctx, tx, req, current, roomID, checkIn, checkOut); err != nil {
				return err
			}

			fields[model.FieldRoomID] = roomID
			fields[model.FieldCheckInDate] = checkIn
			fields[model.FieldCheckOutDate] = checkOut
		}

		if req.ChangesCharges() {
			rate, advance := current.RoomRatePerNight, current.AdvancePayment

			if req.RoomRatePerNight != nil {
				rate = money.Round(*req.RoomRatePerNight)
			}

			if req.AdvancePayment != nil {
				advance = money.Round(*req.AdvancePayment)
			}

			current.RoomRatePerNight = rate
			current.AdvancePayment = advance
			current.CheckInDate = checkIn
			current.CheckOutDate = checkOut

			result, err := s.recomputeTx(ctx, tx, current, nil, nil)
			if err != nil {
				return err
			}

			if result.Overpaid() {
				return failure.BadRequestFromString("Payments already collected exceed the new total amount") // nolint:wrapcheck
			}

			fields[model.FieldRoomRatePerNight] = rate
			fields[model.FieldAdvancePayment] = advance

			for column, value := range result.Fields() {
				fields[column] = value
			}
		}

		if req.GuestPhone != nil && *req.GuestPhone != current.GuestPhone {
			linked := current

			linked.GuestPhone = *req.GuestPhone
			if req.GuestName != nil {
				linked.GuestName = *req.GuestName
			}

			guestID, err := s.linkGuestTx(ctx, tx, user, linked)
			if err != nil {
				return err
			}

			fields[model.FieldGuestID] = guestID
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			if fail := failure.FromPqError(err, msgOverlap); fail != nil {
				return fail
			}

			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.publish(ctx, model.EventUpdated, current, nil)
	s.invalidate(ctx, id)

	return s.detail(ctx, id)
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusCheckedIn, model.EventCheckedIn, model.FieldActualCheckIn)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusCheckedOut, model.EventCheckedOut, model.FieldActualCheckOut)
}

func (s *serviceImpl) MarkNoShow(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.MarkNoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusNoShow, model.EventNoShow, constant.Empty)
}

// Cancel releases the room. With RefundAdvance the advance is recorded as refunded and the
// balance is derived again.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var current model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(model.StatusCancelled) {
			return failure.Conflict(fmt.Sprintf("Cannot cancel a booking that is %s", current.Status)) // nolint:wrapcheck
		}

		fields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if req.RefundAdvance && current.AdvancePayment.IsPositive() {
			current.RefundedAmount = money.Round(current.RefundedAmount.Add(current.AdvancePayment))

			result, err := s.recomputeTx(ctx, tx, current, nil, nil)
			if err != nil {
				return err
			}

			fields[model.FieldRefundedAmount] = current.RefundedAmount

			for column, value := range result.Fields() {
				fields[column] = value
			}
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, byID(id)); err != nil {
			log.Error().Err(err).Msg("failed to cancel booking")

			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		current.Status = model.StatusCancelled

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	details := map[string]any{
		"refund_advance":  req.RefundAdvance,
		"refunded_amount": current.RefundedAmount,
	}
	if req.Reason != nil {
		details["reason"] = *req.Reason
	}

	s.publish(ctx, model.EventCancelled, current, details)
	s.invalidate(ctx, id)

	return s.detail(ctx, id)
}

// CollectPayment records a payment of at most the outstanding balance.
func (s *serviceImpl) CollectPayment(ctx context.Context, req dto.CollectPaymentRequest, id string) (res dto.LedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CollectPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	payment := req.ToModel(user, id)

	var current model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.Status.Counted() {
			return failure.Conflict(fmt.Sprintf("Cannot collect payment on a booking that is %s", current.Status)) // nolint:wrapcheck
		}

		if !payment.Amount.IsPositive() {
			return failure.BadRequestFromString("Amount must be positive") // nolint:wrapcheck
		}

		before, err := s.recomputeTx(ctx, tx, current, nil, nil)
		if err != nil {
			return err
		}

		if payment.Amount.GreaterThan(before.Balance) {
			return failure.BadRequestFromString(fmt.Sprintf("Amount exceeds balance due (%s)", before.Balance.StringFixed(money.Scale))) // nolint:wrapcheck
		}

		if err = s.repo.InsertPaymentTx(ctx, tx, payment); err != nil {
			log.Error().Err(err).Msg("failed to record payment")

			return fmt.Errorf("failed to record payment: %w", err)
		}

		result, err := s.recomputeTx(ctx, tx, current, nil, []decimal.Decimal{payment.Amount})
		if err != nil {
			return err
		}

		fields := result.Fields()
		fields[constant.FieldModifiedAt] = timezone.Now()
		fields[constant.FieldModifiedBy] = user

		if req.PaymentMode != nil {
			fields[model.FieldPaymentMode] = *req.PaymentMode
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, byID(id)); err != nil {
			log.Error().Err(err).Msg("failed to update booking balance")

			return fmt.Errorf("failed to update booking balance: %w", err)
		}

		res.FromResult(id, result)

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	paymentRes := dto.PaymentResponse{}
	paymentRes.FromModel(payment)
	res.Payment = &paymentRes

	s.publish(ctx, model.EventPaymentCollected, current, map[string]any{
		"amount":      payment.Amount,
		"balance_due": res.BalanceDue,
	})
	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) GetPayments(ctx context.Context, id string) (res []dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, id); err != nil {
		return nil, err
	}

	payments, err := s.repo.GetPayments(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return nil, fmt.Errorf("failed to get booking payments: %w", err)
	}

	res = make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		res[i].FromModel(payment)
	}

	return res, nil
}

func (s *serviceImpl) AddService(ctx context.Context, req dto.AddServiceRequest, id string) (res dto.LedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.AddService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	serviceDate := timezone.Today()
	if req.ServiceDate != nil {
		if serviceDate, err = timezone.ParseDate(*req.ServiceDate); err != nil {
			return res, failure.BadRequestFromString("service_date must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	service := req.ToModel(user, id, serviceDate)

	var current model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.Status.AcceptsServices() {
			return failure.BadRequestFromString("Can only add items to confirmed or checked-in bookings") // nolint:wrapcheck
		}

		result, err := s.recomputeTx(ctx, tx, current, []decimal.Decimal{service.TotalPrice}, nil)
		if err != nil {
			return err
		}

		if err = s.repo.InsertServiceTx(ctx, tx, service); err != nil {
			log.Error().Err(err).Msg("failed to add booking service")

			return fmt.Errorf("failed to add booking service: %w", err)
		}

		if err = s.saveResultTx(ctx, tx, id, user, result); err != nil {
			return err
		}

		res.FromResult(id, result)

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	serviceRes := dto.ServiceResponse{}
	serviceRes.FromModel(service)
	res.Service = &serviceRes

	s.publish(ctx, model.EventServiceAdded, current, map[string]any{
		"service_id":   service.ID,
		"service_name": service.ServiceName,
		"total_price":  service.TotalPrice,
	})
	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) RemoveService(ctx context.Context, id, serviceID string) (res dto.LedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RemoveService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		current model.Booking
		removed model.Service
	)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.Status.AcceptsServices() {
			return failure.BadRequestFromString("Can only remove items from confirmed or checked-in bookings") // nolint:wrapcheck
		}

		services, err := s.repo.GetServicesTx(ctx, tx, id)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking services")

			return fmt.Errorf("failed to get booking services: %w", err)
		}

		remaining := make([]decimal.Decimal, 0, len(services))

		for _, service := range services {
			if service.ID == serviceID {
				removed = service

				continue
			}

			remaining = append(remaining, service.TotalPrice)
		}

		if removed.ID == constant.Empty {
			return failure.NotFound("service not found") // nolint:wrapcheck
		}

		payments, err := s.paymentAmountsTx(ctx, tx, id)
		if err != nil {
			return err
		}

		result := ledger.Compute(inputOf(current, remaining, payments))
		if result.Overpaid() {
			return failure.BadRequestFromString("Removing this item would leave the booking overpaid") // nolint:wrapcheck
		}

		if err = s.repo.DeleteServiceTx(ctx, tx, id, serviceID); err != nil {
			log.Error().Err(err).Msg("failed to remove booking service")

			return fmt.Errorf("failed to remove booking service: %w", err)
		}

		if err = s.saveResultTx(ctx, tx, id, user, result); err != nil {
			return err
		}

		res.FromResult(id, result)

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.publish(ctx, model.EventServiceRemoved, current, map[string]any{
		"service_id":   removed.ID,
		"service_name": removed.ServiceName,
		"total_price":  removed.TotalPrice,
	})
	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) GetServices(ctx context.Context, id string) (res []dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, id); err != nil {
		return nil, err
	}

	services, err := s.repo.GetServices(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking services")

		return nil, fmt.Errorf("failed to get booking services: %w", err)
	}

	res = make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		res[i].FromModel(service)
	}

	return res, nil
}

func (s *serviceImpl) GetActivities(ctx context.Context, id string) (res []dto.ActivityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetActivities")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.find(ctx, id); err != nil {
		return nil, err
	}

	activities, err := s.repo.GetActivities(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking activities")

		return nil, fmt.Errorf("failed to get booking activities: %w", err)
	}

	res = make([]dto.ActivityResponse, len(activities))
	for i, activity := range activities {
		res[i].FromModel(activity)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !booking.Status.Deletable() {
		return failure.BadRequestFromString("Only cancelled, checked-out or no-show bookings can be deleted") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publish(ctx, model.EventDeleted, booking, nil)
	s.invalidate(ctx, id)

	return nil
}

// Arrivals lists confirmed bookings due to check in on or before date, oldest first.
func (s *serviceImpl) Arrivals(ctx context.Context, date time.Time) (res []dto.ArrivalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Arrivals")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			byStatus(model.StatusConfirmed),
			gDto.Filter{
				Field:    model.FieldCheckInDate,
				Value:    timezone.DateOf(date),
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
		},
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get arrivals")

		return nil, fmt.Errorf("failed to get arrivals: %w", err)
	}

	res = make([]dto.ArrivalResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res, nil
}

// Departures lists every checked-in booking ordered by check-out date.
func (s *serviceImpl) Departures(ctx context.Context) (res []dto.DepartureResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Departures")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{Filters: []any{byStatus(model.StatusCheckedIn)}}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCheckOutDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get departures")

		return nil, fmt.Errorf("failed to get departures: %w", err)
	}

	res = make([]dto.DepartureResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res, nil
}

func (s *serviceImpl) RevenueDaily(ctx context.Context, req dto.DateRangeRequest) (res dto.RevenueDailyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RevenueDaily")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := revenueWindow(req, func(to time.Time) time.Time {
		return to.AddDate(0, 0, -defaultRevenueDays)
	})
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetOverlapping(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for daily revenue")

		return res, fmt.Errorf("failed to get bookings for daily revenue: %w", err)
	}

	res.FromDays(from, to, ledger.DailyRevenue(staysOf(bookings), from, to))

	return res, nil
}

// RevenueSummary attributes to the window only the nights that fall inside it.
func (s *serviceImpl) RevenueSummary(ctx context.Context, req dto.DateRangeRequest) (res dto.RevenueSummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RevenueSummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := revenueWindow(req, timezone.MonthStart)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetOverlapping(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for revenue summary")

		return res, fmt.Errorf("failed to get bookings for revenue summary: %w", err)
	}

	revenue, collected, pending := decimal.Zero, decimal.Zero, decimal.Zero

	for _, stay := range staysOf(bookings) {
		share := ledger.RevenueInWindow(stay, from, to)

		revenue = revenue.Add(share.Revenue)
		collected = collected.Add(share.Collected)
		pending = pending.Add(share.Pending)
	}

	res = dto.RevenueSummaryResponse{
		DateFrom:         timezone.FormatDate(from),
		DateTo:           timezone.FormatDate(to),
		TotalRevenue:     money.Round(revenue),
		RevenueCollected: money.Round(collected),
		RevenuePending:   money.Round(pending),
		BookingsCount:    len(bookings),
	}

	return res, nil
}

func (s *serviceImpl) transition(ctx context.Context, id string, next model.Status, event model.Event, stampField string) (res dto.BookingResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var current model.Booking

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(next) {
			return failure.Conflict(fmt.Sprintf("Cannot change booking from %s to %s", current.Status, next)) // nolint:wrapcheck
		}

		now := timezone.Now()
		fields := map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if stampField != constant.Empty {
			fields[stampField] = now
		}

		if next == model.StatusCheckedOut {
			if released := current.ReleasedCheckOut(timezone.DateOf(now)); released.Before(current.CheckOutDate) {
				fields[model.FieldCheckOutDate] = released
				current.CheckOutDate = released
			}
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, byID(id)); err != nil {
			log.Error().Err(err).Str("status", string(next)).Msg("failed to change booking status")

			return fmt.Errorf("failed to change booking status: %w", err)
		}

		current.Status = next

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.publish(ctx, event, current, nil)
	s.invalidate(ctx, id)

	return s.detail(ctx, id)
}

// checkRoomTx locks the target room and validates capacity, and availability when the stay moves.
func (s *serviceImpl) checkRoomTx(ctx context.Context, tx *sqlx.Tx, req dto.UpdateBookingRequest, current model.Booking, roomID string, checkIn, checkOut time.Time) error {
	room, err := s.lockRoom(ctx, tx, roomID)
	if err != nil {
		return err
	}

	if roomID != current.RoomID && !room.Status.Bookable() {
		return failure.BadRequestFromString("Room is not available") // nolint:wrapcheck
	}

	adults, children := current.Adults, current.Children
	if req.Adults != nil {
		adults = *req.Adults
	}

	if req.Children != nil {
		children = *req.Children
	}

	if adults+children > room.MaxOccupancy {
		return failure.BadRequestFromString(fmt.Sprintf("Guest count (%d) exceeds room capacity (%d)", adults+children, room.MaxOccupancy)) // nolint:wrapcheck
	}

	if !req.MovesStay() {
		return nil
	}

	overlap, err := s.repo.HasOverlapTx(ctx, tx, roomID, checkIn, checkOut, current.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if overlap {
		return failure.Conflict(msgOverlap) // nolint:wrapcheck
	}

	return nil
}

// recomputeTx derives the charges of booking from its stored services and payments plus
// any pending additions.
func (s *serviceImpl) recomputeTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, addServices, addPayments []decimal.Decimal) (ledger.Result, error) {
	services, err := s.repo.GetServicesTx(ctx, tx, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking services")

		return ledger.Result{}, fmt.Errorf("failed to get booking services: %w", err)
	}

	totals := make([]decimal.Decimal, 0, len(services)+len(addServices))
	for _, service := range services {
		totals = append(totals, service.TotalPrice)
	}

	payments, err := s.paymentAmountsTx(ctx, tx, booking.ID)
	if err != nil {
		return ledger.Result{}, err
	}

	totals = append(totals, addServices...)
	payments = append(payments, addPayments...)

	return ledger.Compute(inputOf(booking, totals, payments)), nil
}

func (s *serviceImpl) paymentAmountsTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]decimal.Decimal, error) {
	payments, err := s.repo.GetPaymentsTx(ctx, tx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return nil, fmt.Errorf("failed to get booking payments: %w", err)
	}

	amounts := make([]decimal.Decimal, len(payments))
	for i, payment := range payments {
		amounts[i] = payment.Amount
	}

	return amounts, nil
}

func (s *serviceImpl) saveResultTx(ctx context.Context, tx *sqlx.Tx, id, user string, result ledger.Result) error {
	fields := result.Fields()
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	if err := s.repo.UpdateTx(ctx, tx, fields, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update booking charges")

		return fmt.Errorf("failed to update booking charges: %w", err)
	}

	return nil
}

func (s *serviceImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock room")

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock booking")

		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// linkGuestTx returns the guest profile matching the booking phone, creating it on first stay.
func (s *serviceImpl) linkGuestTx(ctx context.Context, tx *sqlx.Tx, user string, booking model.Booking) (string, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    guestModel.FieldPhone,
				Value:    booking.GuestPhone,
				Operator: gDto.FilterOperatorEq,
				Table:    guestModel.TableName,
			},
		},
	}

	guest, err := s.guestRepo.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find guest by phone")

		return constant.Empty, fmt.Errorf("failed to find guest by phone: %w", err)
	}

	if guest.ID != constant.Empty {
		return guest.ID, nil
	}

	now := timezone.Now()
	guest = guestModel.Guest{
		ID:          uuid.NewString(),
		FullName:    booking.GuestName,
		Phone:       booking.GuestPhone,
		Email:       booking.GuestEmail,
		IDProofType: booking.GuestIDProof,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
		if fail := failure.FromPqError(err, "guest changed concurrently"); fail != nil {
			return constant.Empty, fail
		}

		log.Error().Err(err).Msg("failed to create guest profile")

		return constant.Empty, fmt.Errorf("failed to create guest profile: %w", err)
	}

	log.Info().Str("guest_id", guest.ID).Msg("guest profile created from booking")

	return guest.ID, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) detail(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	services, err := s.repo.GetServices(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking services")

		return res, fmt.Errorf("failed to get booking services: %w", err)
	}

	payments, err := s.repo.GetPayments(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return res, fmt.Errorf("failed to get booking payments: %w", err)
	}

	res.FromModel(booking)
	res.WithChildren(services, payments)

	return res, nil
}

// publish sends the lifecycle event in the background; delivery failures are only logged.
func (s *serviceImpl) publish(ctx context.Context, event model.Event, booking model.Booking, details map[string]any) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	message := model.LifecycleEvent{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		Event:      event,
		Status:     booking.Status,
		Actor:      user,
		Details:    details,
		OccurredAt: timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, kafka.Message{Key: booking.ID, Value: message})
		if err != nil {
			log.Error().Err(err).Str("event", string(event)).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking, cacheCountBooking, cacheGuests)
	}()
}

func parseStay(checkInValue, checkOutValue string) (checkIn, checkOut time.Time, err error) {
	if checkIn, err = timezone.ParseDate(checkInValue); err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if checkOut, err = timezone.ParseDate(checkOutValue); err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("Check-out date must be after check-in date") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// revenueWindow resolves the requested window. date_to defaults to today and date_from to
// defaultFrom(date_to).
func revenueWindow(req dto.DateRangeRequest, defaultFrom func(time.Time) time.Time) (from, to time.Time, err error) {
	to = timezone.Today()
	if req.DateTo != constant.Empty {
		if to, err = timezone.ParseDate(req.DateTo); err != nil {
			return from, to, failure.BadRequestFromString("date_to must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	from = defaultFrom(to)
	if req.DateFrom != constant.Empty {
		if from, err = timezone.ParseDate(req.DateFrom); err != nil {
			return from, to, failure.BadRequestFromString("date_from must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	if to.Before(from) {
		return from, to, failure.BadRequestFromString("date_from must not be after date_to") // nolint:wrapcheck
	}

	return from, to, nil
}

func inputOf(booking model.Booking, services, payments []decimal.Decimal) ledger.Input {
	return ledger.Input{
		Rate:     booking.RoomRatePerNight,
		CheckIn:  booking.CheckInDate,
		CheckOut: booking.CheckOutDate,
		Services: services,
		Advance:  booking.AdvancePayment,
		Payments: payments,
		Refunded: booking.RefundedAmount,
	}
}

func staysOf(bookings []model.Booking) []ledger.Stay {
	stays := make([]ledger.Stay, len(bookings))

	for i, booking := range bookings {
		stays[i] = ledger.StayOf(booking)
	}

	return stays
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func byStatus(status model.Status) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldStatus,
		Value:    status,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}
}
