package service

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	eventModel "hotel/internal/domains/eventbooking/model"
	eventRepo "hotel/internal/domains/eventbooking/repository"
	eventService "hotel/internal/domains/eventbooking/service"
	expenseModel "hotel/internal/domains/expense/model"
	expenseRepo "hotel/internal/domains/expense/repository"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Report interface {
	Dashboard(ctx context.Context, req dto.DashboardRequest) (dto.DashboardResponse, error)
	Occupancy(ctx context.Context, req dto.OccupancyRequest) (dto.OccupancyResponse, error)
}

// serviceImpl reads the source ledgers on every call; reports are never cached.
type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	expenses expenseRepo.Expense
	events   eventRepo.EventBooking
	otel     otel.Otel
}

func New(rooms roomRepo.Room, bookings bookingRepo.Booking, expenses expenseRepo.Expense, events eventRepo.EventBooking, otel otel.Otel) Report {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		expenses: expenses,
		events:   events,
		otel:     otel,
	}
}

// Dashboard defaults to the current month up to today and to both hotel and events.
func (s *serviceImpl) Dashboard(ctx context.Context, req dto.DashboardRequest) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Dashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Today()

	in := model.Input{Today: today, Type: req.Type}
	if in.Type == "" {
		in.Type = model.TypeBoth
	}

	in.From, in.To, err = window(req, today)
	if err != nil {
		return res, err
	}

	group, gctx := errgroup.WithContext(ctx)

	if in.Type.IncludesHotel() {
		group.Go(func() (err error) {
			in.ActiveRooms, err = s.activeRooms(gctx)

			return err
		})

		group.Go(func() (err error) {
			in.Stays, err = s.bookings.GetOverlapping(gctx, in.From, in.To)

			return wrap(err, "failed to get bookings in window")
		})

		group.Go(func() (err error) {
			in.Arrivals, err = s.bookings.GetAll(gctx, gDto.QueryParams{}, arrivals(in.From, in.To))

			return wrap(err, "failed to get arrivals in window")
		})

		group.Go(func() (err error) {
			in.InHouse, err = s.bookings.GetAll(gctx, gDto.QueryParams{}, checkedIn())

			return wrap(err, "failed to get checked in bookings")
		})

		group.Go(func() (err error) {
			in.Expenses, err = s.expenses.GetAll(gctx, gDto.QueryParams{}, expensesIn(in.From, in.To))

			return wrap(err, "failed to get expenses in window")
		})
	}

	if in.Type.IncludesEvents() {
		group.Go(func() (err error) {
			in.Events, in.EventChildren, err = s.eventsIn(gctx, in.From, in.To)

			return err
		})
	}

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load dashboard data")

		return res, err // nolint:wrapcheck
	}

	res.FromModel(model.Build(in))

	return res, nil
}

// Occupancy counts the rooms held on the requested date. For today only guests that are
// checked in count; other dates count every booking that holds its room.
func (s *serviceImpl) Occupancy(ctx context.Context, req dto.OccupancyRequest) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Today()

	date := today
	if req.Date != constant.Empty {
		if date, err = timezone.ParseDate(req.Date); err != nil {
			return res, failure.BadRequestFromString("date must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	active, err := s.activeRooms(ctx)
	if err != nil {
		return res, err
	}

	var bookings []bookingModel.Booking

	if date.Equal(today) {
		bookings, err = s.bookings.GetAll(ctx, gDto.QueryParams{}, checkedIn())
	} else {
		bookings, err = s.bookings.GetOverlapping(ctx, date, date)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for occupancy")

		return res, fmt.Errorf("failed to get bookings for occupancy: %w", err)
	}

	occupied := model.OccupiedOn(bookings, date)

	return dto.OccupancyResponse{
		Date:          timezone.FormatDate(date),
		ActiveRooms:   active,
		OccupiedRooms: occupied,
		OccupancyRate: model.OccupancyRate(occupied, active),
		RoomNights:    occupied,
		AverageRate:   model.OccupancyRate(occupied, active),
	}, nil
}

func (s *serviceImpl) activeRooms(ctx context.Context) (int, error) {
	count, err := s.rooms.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldStatus, Value: roomModel.StatusActive, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active rooms: %w", err)
	}

	return count, nil
}

func (s *serviceImpl) eventsIn(ctx context.Context, from, to time.Time) ([]eventModel.EventBooking, eventModel.Children, error) {
	events, err := s.events.GetAll(ctx, gDto.QueryParams{}, eventService.InWindow(&from, &to))
	if err != nil {
		return nil, eventModel.Children{}, fmt.Errorf("failed to get events in window: %w", err)
	}

	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	children, err := s.events.GetChildren(ctx, ids)
	if err != nil {
		return nil, eventModel.Children{}, fmt.Errorf("failed to get event services and payments: %w", err)
	}

	return events, children, nil
}

func window(req dto.DashboardRequest, today time.Time) (from, to time.Time, err error) {
	to = today
	if req.DateTo != constant.Empty {
		if to, err = timezone.ParseDate(req.DateTo); err != nil {
			return from, to, failure.BadRequestFromString("date_to must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	from = timezone.MonthStart(to)
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

func arrivals(from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "check_in_from",
				Field:    bookingModel.FieldCheckInDate,
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "check_in_to",
				Field:    bookingModel.FieldCheckInDate,
				Value:    to,
				Operator: gDto.FilterOperatorLessEq,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func checkedIn() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Value:    bookingModel.StatusCheckedIn,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func expensesIn(from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				ArgName:  "expense_date_from",
				Field:    expenseModel.FieldExpenseDate,
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    expenseModel.TableName,
			},
			gDto.Filter{
				ArgName:  "expense_date_to",
				Field:    expenseModel.FieldExpenseDate,
				Value:    to,
				Operator: gDto.FilterOperatorLessEq,
				Table:    expenseModel.TableName,
			},
		},
	}
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", msg, err)
}
