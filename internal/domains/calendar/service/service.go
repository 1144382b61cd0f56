package service

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/calendar/model"
	"hotel/internal/domains/calendar/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Calendar interface {
	Grid(ctx context.Context, req dto.GridRequest) (dto.GridResponse, error)
}

type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(rooms roomRepo.Room, bookings bookingRepo.Booking, otel otel.Otel) Calendar {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		otel:     otel,
	}
}

func (s *serviceImpl) Grid(ctx context.Context, req dto.GridRequest) (res dto.GridResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Grid")
	defer scope.End()
	defer scope.TraceIfError(err)

	start := timezone.Today()
	if req.Start != constant.Empty {
		if start, err = timezone.ParseDate(req.Start); err != nil {
			return res, failure.BadRequestFromString("start must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
		}
	}

	days := model.DefaultDays
	if req.Days != nil {
		days = *req.Days
	}

	if days < 1 || days > model.MaxDays {
		return res, failure.BadRequestFromString(fmt.Sprintf("days must be between 1 and %d", model.MaxDays)) // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldStatus,
				Value:    roomModel.StatusInactive,
				Operator: gDto.FilterOperatorNotEq,
				Table:    roomModel.TableName,
			},
		},
	}

	rooms, err := s.rooms.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for calendar")

		return res, fmt.Errorf("failed to get rooms for calendar: %w", err)
	}

	bookings, err := s.bookings.GetOverlapping(ctx, start, start.AddDate(0, 0, days-1))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for calendar")

		return res, fmt.Errorf("failed to get bookings for calendar: %w", err)
	}

	res.FromModel(model.BuildGrid(rooms, bookings, start, days))

	return res, nil
}
