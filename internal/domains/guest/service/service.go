package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGuest    = "guest:get"
	cacheGetAllGuest = "guest:gets"
	cacheTopGuest    = "guest:top"

	minSearchLength   = 2
	searchLimit       = 10
	defaultTopLimit   = 10
	msgPhoneDuplicate = "A guest with this phone number already exists"
)

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, aggregate dto.ListGuestsRequest) (dto.GetGuestsResponse, error)
	Search(ctx context.Context, query string) ([]dto.GuestResponse, error)
	Top(ctx context.Context, req dto.TopGuestsRequest) ([]dto.GuestResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	GetByPhone(ctx context.Context, phone string) (dto.GuestResponse, error)
	GetBookings(ctx context.Context, id string) (dto.GuestBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (dto.GuestResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Guest
	bookings bookingRepo.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Guest, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	guest := req.ToModel(user)

	exist, err := s.repo.Exist(ctx, byPhone(guest.Phone))
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest phone")

		return res, fmt.Errorf("failed to check guest phone: %w", err)
	}

	if exist {
		return res, failure.BadRequestFromString(msgPhoneDuplicate) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, guest); err != nil {
		if fail := failure.FromPqError(err, msgPhoneDuplicate); fail != nil {
			return res, fail
		}

		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	s.invalidate(ctx, guest.ID)

	res.FromModel(guest, model.Stats{})

	return res, nil
}

// GetAll filters guests on their own columns in the database and on the rolled-up
// statistics in memory, then orders by last visit.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, aggregate dto.ListGuestsRequest) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	minSpent := constant.Empty
	if aggregate.MinSpent != nil {
		minSpent = aggregate.MinSpent.String()
	}

	cacheKey := shared.BuildCacheKey(shared.BuildCacheKeyWithQuery(cacheGetAllGuest, req, filter),
		strconv.Itoa(aggregate.MinBookings), minSpent)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	guests, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	stats, err := s.statsOf(ctx, guests)
	if err != nil {
		return res, err
	}

	matched := make([]model.Guest, 0, len(guests))
	for _, guest := range guests {
		if aggregate.Matches(stats[guest.ID]) {
			matched = append(matched, guest)
		}
	}

	slices.SortStableFunc(matched, func(a, b model.Guest) int {
		return compareLastVisit(stats[a.ID], stats[b.ID])
	})

	res.FromModels(paginate(matched, req), stats, len(matched), req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

// Search matches name, phone or email and returns at most ten guests.
func (s *serviceImpl) Search(ctx context.Context, query string) (res []dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	query = strings.TrimSpace(query)
	if len(query) < minSearchLength {
		return nil, failure.BadRequestFromString(fmt.Sprintf("q must be at least %d characters", minSearchLength)) // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldFullName, Value: query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			gDto.Filter{Field: model.FieldPhone, Value: query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			gDto.Filter{Field: model.FieldEmail, Value: query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{Limit: searchLimit, SortBy: model.FieldFullName, SortDir: gDto.SortDirAsc}

	guests, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search guests")

		return nil, fmt.Errorf("failed to search guests: %w", err)
	}

	stats, err := s.statsOf(ctx, guests)
	if err != nil {
		return nil, err
	}

	res = make([]dto.GuestResponse, len(guests))
	for i, guest := range guests {
		res[i].FromModel(guest, stats[guest.ID])
	}

	return res, nil
}

// Top ranks guests by booking count or by amount spent.
func (s *serviceImpl) Top(ctx context.Context, req dto.TopGuestsRequest) (res []dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Top")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.By == constant.Empty {
		req.By = dto.TopGuestsByBookings
	}

	if req.Limit == 0 {
		req.Limit = defaultTopLimit
	}

	cacheKey := shared.BuildCacheKey(cacheTopGuest, req.By, strconv.Itoa(req.Limit))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldGuestID, Operator: gDto.FilterIsNotNull, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for top guests")

		return nil, fmt.Errorf("failed to get bookings for top guests: %w", err)
	}

	stats := model.RollupByGuest(bookings)

	ids := make([]string, 0, len(stats))
	for id, stat := range stats {
		if stat.TotalBookings > 0 {
			ids = append(ids, id)
		}
	}

	slices.SortFunc(ids, func(a, b string) int {
		if req.By == dto.TopGuestsBySpent {
			if cmp := stats[b].TotalSpent.Cmp(stats[a].TotalSpent); cmp != 0 {
				return cmp
			}
		}

		if stats[a].TotalBookings != stats[b].TotalBookings {
			return stats[b].TotalBookings - stats[a].TotalBookings
		}

		return strings.Compare(a, b)
	})

	ids = ids[:min(req.Limit, len(ids))]

	res = make([]dto.GuestResponse, 0, len(ids))

	if len(ids) > 0 {
		guests, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get top guests")

			return nil, fmt.Errorf("failed to get top guests: %w", err)
		}

		byID := make(map[string]model.Guest, len(guests))
		for _, guest := range guests {
			byID[guest.ID] = guest
		}

		for _, id := range ids {
			guest, ok := byID[id]
			if !ok {
				continue
			}

			var guestRes dto.GuestResponse
			guestRes.FromModel(guest, stats[id])
			res = append(res, guestRes)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save top guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetGuest, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guest")

		return res, nil
	}

	guest, err := s.find(ctx, byID(id))
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingsOf(ctx, guest.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(guest, model.Rollup(bookings))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByPhone(ctx context.Context, phone string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetByPhone")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.find(ctx, byPhone(strings.TrimSpace(phone)))
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingsOf(ctx, guest.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(guest, model.Rollup(bookings))

	return res, nil
}

// GetBookings returns the guest together with every booking linked to them, newest first.
func (s *serviceImpl) GetBookings(ctx context.Context, id string) (res dto.GuestBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	guest, err := s.find(ctx, byID(id))
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingsOf(ctx, guest.ID)
	if err != nil {
		return res, err
	}

	res.Guest.FromModel(guest, model.Rollup(bookings))

	res.Bookings = make([]dto.GuestBooking, len(bookings))
	for i, booking := range bookings {
		res.Bookings[i].FromModel(booking)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := byID(id)

	if _, err = s.find(ctx, filter); err != nil {
		return res, err
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		req.Phone = &phone

		taken := byPhone(phone)
		taken.Filters = append(taken.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    id,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})

		exist, err := s.repo.Exist(ctx, taken)
		if err != nil {
			log.Error().Err(err).Msg("failed to check guest phone")

			return res, fmt.Errorf("failed to check guest phone: %w", err)
		}

		if exist {
			return res, failure.BadRequestFromString("Phone number already used by another guest") // nolint:wrapcheck
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if fail := failure.FromPqError(err, msgPhoneDuplicate); fail != nil {
			return res, fail
		}

		log.Error().Err(err).Msg("failed to update guest")

		return res, fmt.Errorf("failed to update guest: %w", err)
	}

	s.invalidate(ctx, id)

	guest, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingsOf(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(guest, model.Rollup(bookings))

	return res, nil
}

// Delete removes the profile. Bookings keep their guest snapshot and lose the link.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := byID(id)

	if _, err = s.find(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Guest, error) {
	guest, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return guest, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return guest, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	return guest, nil
}

func (s *serviceImpl) bookingsOf(ctx context.Context, guestID string) ([]bookingModel.Booking, error) {
	params := gDto.QueryParams{SortBy: bookingModel.FieldCheckInDate, SortDir: gDto.SortDirDesc}

	bookings, err := s.bookings.GetAll(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldGuestID, Value: guestID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest bookings")

		return nil, fmt.Errorf("failed to get guest bookings: %w", err)
	}

	return bookings, nil
}

// statsOf rolls up the bookings of every guest in one query.
func (s *serviceImpl) statsOf(ctx context.Context, guests []model.Guest) (map[string]model.Stats, error) {
	if len(guests) == 0 {
		return map[string]model.Stats{}, nil
	}

	ids := make([]string, len(guests))
	for i, guest := range guests {
		ids[i] = guest.ID
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldGuestID, Value: ids, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for guest statistics")

		return nil, fmt.Errorf("failed to get bookings for guest statistics: %w", err)
	}

	return model.RollupByGuest(bookings), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGuest, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete guest cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest, cacheTopGuest)
	}()
}

// compareLastVisit orders the most recent visitor first; guests who never stayed go last.
func compareLastVisit(a, b model.Stats) int {
	switch {
	case a.LastVisit == nil && b.LastVisit == nil:
		return 0
	case a.LastVisit == nil:
		return 1
	case b.LastVisit == nil:
		return -1
	}

	return b.LastVisit.Compare(*a.LastVisit)
}

func paginate(guests []model.Guest, params gDto.QueryParams) []model.Guest {
	if params.Limit <= 0 {
		return guests
	}

	start := min(params.Offset(), len(guests))
	end := min(start+params.Limit, len(guests))

	return guests[start:end]
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func byPhone(phone string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldPhone, Value: phone, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
