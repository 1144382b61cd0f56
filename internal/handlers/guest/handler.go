package guest

import (
	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	queryParamMinBookings = "min_bookings"
	queryParamMinSpent    = "min_spent"
	queryParamBy          = "by"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGuest)
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/search", handler.SearchGuests)
		routerGroup.Get("/stats/top-guests", handler.GetTopGuests)
		routerGroup.Get("/phone/{phone}", handler.GetGuestByPhone)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Get("/{id}/bookings", handler.GetGuestBookings)
		routerGroup.Patch("/{id}", handler.UpdateGuest)
		routerGroup.Delete("/{id}", handler.DeleteGuest)
	})
}

// CreateGuest handles the creation of a guest profile.
// @Summary Create a guest
// @Description Create a guest profile. Phone numbers are unique.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Guest details"
// @Success 201 {object} response.Data[dto.GuestResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/guests [post]
// @Security BearerAuth
func (handler *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	var req dto.CreateGuestRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, guest)
}

// GetGuests lists guests with their stay statistics.
// @Summary Get all guests
// @Description List guests, most recent visitor first. Text filters match partially; min_bookings and min_spent apply to the statistics.
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param full_name query string false "Name"
// @Param phone query string false "Phone"
// @Param email query string false "Email"
// @Param city query string false "City"
// @Param min_bookings query integer false "Minimum number of bookings"
// @Param min_spent query number false "Minimum amount spent"
// @Success 200 {object} response.Data[dto.GetGuestsResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	aggregate, err := aggregateFilter(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	guests, err := handler.service.GetAll(ctx, queryParams, guestFilter(r), aggregate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guests)
}

// SearchGuests finds guests by name, phone or email.
// @Summary Search guests
// @Tags Guest
// @Produce json
// @Param q query string true "Search term (at least 2 characters)"
// @Success 200 {object} response.Data[[]dto.GuestResponse]
// @Failure 400 {object} response.Message
// @Router /v1/guests/search [get]
// @Security BearerAuth
func (handler *Handler) SearchGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchGuests")
	defer scope.End()

	guests, err := handler.service.Search(ctx, r.URL.Query().Get(constant.RequestParamSearch))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guests)
}

// GetTopGuests ranks guests.
// @Summary Top guests
// @Tags Guest
// @Produce json
// @Param by query string false "bookings or spent"
// @Param limit query integer false "Number of guests (1-50)"
// @Success 200 {object} response.Data[[]dto.GuestResponse]
// @Failure 400 {object} response.Message
// @Router /v1/guests/stats/top-guests [get]
// @Security BearerAuth
func (handler *Handler) GetTopGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTopGuests")
	defer scope.End()

	req := dto.TopGuestsRequest{
		By:    r.URL.Query().Get(queryParamBy),
		Limit: shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamLimit), 0),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	guests, err := handler.service.Top(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get top guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guests)
}

// GetGuestByPhone retrieves a guest by phone number.
// @Summary Get a guest by phone
// @Tags Guest
// @Produce json
// @Param phone path string true "Phone number"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 404 {object} response.Message
// @Router /v1/guests/phone/{phone} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByPhone(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByPhone")
	defer scope.End()

	guest, err := handler.service.GetByPhone(ctx, chi.URLParam(r, constant.RequestParamPhone))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest by phone")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// GetGuestByID retrieves a guest.
// @Summary Get a guest by ID
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 404 {object} response.Message
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	guest, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// GetGuestBookings lists the stay history of a guest.
// @Summary Guest booking history
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestBookingsResponse]
// @Failure 404 {object} response.Message
// @Router /v1/guests/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetGuestBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestBookings")
	defer scope.End()

	history, err := handler.service.GetBookings(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, history)
}

// UpdateGuest updates a guest profile.
// @Summary Update a guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path string true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.GuestResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/guests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	var req dto.UpdateGuestRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// DeleteGuest deletes a guest profile.
// @Summary Delete a guest
// @Description Bookings keep their guest name and phone but are unlinked from the profile.
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/guests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete guest")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Guest deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Guest deleted successfully")
}

func guestFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldFullName, model.FieldPhone, model.FieldEmail, model.FieldCity} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	return filterGroup
}

func aggregateFilter(r *http.Request) (dto.ListGuestsRequest, error) {
	query := r.URL.Query()

	req := dto.ListGuestsRequest{
		MinBookings: shared.ConvertStringToInt(query.Get(queryParamMinBookings), 0),
	}

	if req.MinBookings < 0 {
		return req, failure.BadRequestFromString(queryParamMinBookings + " must not be negative") //nolint:wrapcheck
	}

	if value := query.Get(queryParamMinSpent); value != constant.Empty {
		minSpent, err := decimal.NewFromString(value)
		if err != nil || minSpent.IsNegative() {
			return req, failure.BadRequestFromString(queryParamMinSpent + " must be a non-negative number") //nolint:wrapcheck
		}

		req.MinSpent = &minSpent
	}

	return req, nil
}
