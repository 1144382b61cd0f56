package booking

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamDate         = "date"
	queryParamCheckInFrom  = "check_in_from"
	queryParamCheckInTo    = "check_in_to"
	queryParamGuestPhone   = "guest_phone"
	queryParamGuestName    = "guest_name"
	queryParamRoomID       = "room_id"
	queryParamSource       = "booking_source"
	queryParamBookingType  = "booking_type"
	queryParamPaymentState = "payment_status"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/today/checkins", handler.GetArrivals)
		routerGroup.Get("/today/checkouts", handler.GetDepartures)
		routerGroup.Get("/revenue/daily", handler.GetDailyRevenue)
		routerGroup.Get("/revenue/summary", handler.GetRevenueSummary)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Post("/{id}/check-in", handler.CheckIn)
		routerGroup.Post("/{id}/check-out", handler.CheckOut)
		routerGroup.Post("/{id}/no-show", handler.MarkNoShow)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/collect-payment", handler.CollectPayment)
		routerGroup.Get("/{id}/payments", handler.GetPayments)
		routerGroup.Get("/{id}/services", handler.GetServices)
		routerGroup.Post("/{id}/services", handler.AddService)
		routerGroup.Delete("/{id}/services/{service_id}", handler.RemoveService)
		routerGroup.Get("/{id}/activities", handler.GetActivities)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a room for the nights [check_in_date, check_out_date). The room is locked while
// @Description availability is checked; an overlapping Confirmed, Checked In or Checked Out booking yields 409.
// @Description The guest profile is found or created by phone.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists bookings.
// @Summary Get all bookings
// @Description List bookings, newest check-in first unless sort_by is given.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Booking status"
// @Param payment_status query string false "Payment status"
// @Param booking_source query string false "Booking source"
// @Param booking_type query string false "Booking type"
// @Param room_id query string false "Room ID"
// @Param guest_name query string false "Guest name (partial match)"
// @Param guest_phone query string false "Guest phone (partial match)"
// @Param check_in_from query string false "Earliest check-in date (YYYY-MM-DD)"
// @Param check_in_to query string false "Latest check-in date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup, err := bookingFilter(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetArrivals lists the confirmed bookings due to check in.
// @Summary Today's check-ins
// @Description Confirmed bookings with check_in_date on or before date (default today), so late arrivals stay visible.
// @Tags Booking
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.ArrivalResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/today/checkins [get]
// @Security BearerAuth
func (handler *Handler) GetArrivals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArrivals")
	defer scope.End()

	date, err := dateParam(r, queryParamDate, timezone.Today())
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	arrivals, err := handler.service.Arrivals(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get arrivals")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, arrivals)
}

// GetDepartures lists checked-in bookings.
// @Summary Today's check-outs
// @Description Every Checked In booking ordered by check_out_date, including overstays.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.DepartureResponse]
// @Failure 500 {object} response.Message
// @Router /v1/bookings/today/checkouts [get]
// @Security BearerAuth
func (handler *Handler) GetDepartures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartures")
	defer scope.End()

	departures, err := handler.service.Departures(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get departures")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, departures)
}

// GetDailyRevenue returns the revenue attributed to each day.
// @Summary Daily revenue
// @Description Room nights and revenue per day, each stay's total spread evenly over its nights. Defaults to the last 30 days.
// @Tags Booking
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RevenueDailyResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/revenue/daily [get]
// @Security BearerAuth
func (handler *Handler) GetDailyRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailyRevenue")
	defer scope.End()

	req, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	revenue, err := handler.service.RevenueDaily(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get daily revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, revenue)
}

// GetRevenueSummary returns the revenue of a window.
// @Summary Revenue summary
// @Description Revenue, collected and pending amounts for the nights inside the window. Defaults to month to date.
// @Tags Booking
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RevenueSummaryResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/revenue/summary [get]
// @Security BearerAuth
func (handler *Handler) GetRevenueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenueSummary")
	defer scope.End()

	req, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	summary, err := handler.service.RevenueSummary(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetBookingByID retrieves a booking with its services and payments.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking updates an existing booking.
// @Summary Update a booking by ID
// @Description Partially update a booking. Changing the room or dates re-checks availability; changing dates,
// @Description rate or advance recomputes the charges.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	var req dto.UpdateBookingRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking deletes a finished booking.
// @Summary Delete a booking by ID
// @Description Only Cancelled, Checked Out or No Show bookings can be deleted. Services and payments go with it.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// CheckIn moves a confirmed booking to Checked In.
// @Summary Check in
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/bookings/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	booking, err := handler.service.CheckIn(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CheckOut moves a checked-in booking to Checked Out.
// @Summary Check out
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/bookings/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	booking, err := handler.service.CheckOut(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// MarkNoShow moves a confirmed booking to No Show.
// @Summary Mark no-show
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/bookings/{id}/no-show [post]
// @Security BearerAuth
func (handler *Handler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNoShow")
	defer scope.End()

	booking, err := handler.service.MarkNoShow(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark booking as no-show")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a confirmed booking.
// @Summary Cancel a booking
// @Description Cancels a Confirmed booking. With refund_advance the advance is recorded as refunded.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Cancellation options"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	var req dto.CancelBookingRequest

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	}

	booking, err := handler.service.Cancel(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CollectPayment records a payment against the balance.
// @Summary Collect payment
// @Description Records a payment of at most the balance due and returns the updated charges.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CollectPaymentRequest true "Payment"
// @Success 200 {object} response.Data[dto.LedgerResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/bookings/{id}/collect-payment [post]
// @Security BearerAuth
func (handler *Handler) CollectPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CollectPayment")
	defer scope.End()

	var req dto.CollectPaymentRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.CollectPayment(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to collect payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment collected by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}

// GetPayments lists the payments of a booking.
// @Summary Booking payments
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[[]dto.PaymentResponse]
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	payments, err := handler.service.GetPayments(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetServices lists the extras charged to a booking.
// @Summary Booking services
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[[]dto.ServiceResponse]
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/services [get]
// @Security BearerAuth
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	services, err := handler.service.GetServices(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// AddService charges an extra to a booking.
// @Summary Add a service
// @Description Adds quantity x unit_price to the additional charges of a Confirmed or Checked In booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AddServiceRequest true "Service"
// @Success 201 {object} response.Data[dto.LedgerResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/services [post]
// @Security BearerAuth
func (handler *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddService")
	defer scope.End()

	var req dto.AddServiceRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.AddService(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add booking service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, result)
}

// RemoveService removes an extra from a booking.
// @Summary Remove a service
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param service_id path string true "Service ID"
// @Success 200 {object} response.Data[dto.LedgerResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/services/{service_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveService")
	defer scope.End()

	result, err := handler.service.RemoveService(ctx,
		chi.URLParam(r, constant.RequestParamID),
		chi.URLParam(r, constant.RequestParamServiceID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove booking service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, result)
}

// GetActivities lists the lifecycle events recorded for a booking.
// @Summary Booking activity log
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[[]dto.ActivityResponse]
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/activities [get]
// @Security BearerAuth
func (handler *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivities")
	defer scope.End()

	activities, err := handler.service.GetActivities(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking activities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, activities)
}

func bookingFilter(r *http.Request) (gDto.FilterGroup, error) {
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
		{param: model.FieldStatus, value: model.Status(query.Get(model.FieldStatus)), field: model.FieldStatus},
		{param: queryParamPaymentState, value: model.PaymentStatus(query.Get(queryParamPaymentState)), field: model.FieldPaymentStatus},
		{param: queryParamSource, value: model.Source(query.Get(queryParamSource)), field: model.FieldBookingSource},
		{param: queryParamBookingType, value: model.Type(query.Get(queryParamBookingType)), field: model.FieldBookingType},
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

	if roomID := query.Get(queryParamRoomID); roomID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	likes := []struct {
		param string
		field string
	}{
		{param: queryParamGuestName, field: model.FieldGuestName},
		{param: queryParamGuestPhone, field: model.FieldGuestPhone},
	}

	for _, like := range likes {
		if value := query.Get(like.param); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    like.field,
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
		{param: queryParamCheckInFrom, operator: gDto.FilterOperatorGreaterEq},
		{param: queryParamCheckInTo, operator: gDto.FilterOperatorLessEq},
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
			Field:    model.FieldCheckInDate,
			Operator: bound.operator,
			Value:    date,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}

func dateRange(r *http.Request) (dto.DateRangeRequest, error) {
	req := dto.DateRangeRequest{
		DateFrom: r.URL.Query().Get(constant.RequestParamDateFrom),
		DateTo:   r.URL.Query().Get(constant.RequestParamDateTo),
	}

	return req, validator.ValidateStruct(&req) //nolint:wrapcheck
}

func dateParam(r *http.Request, param string, fallback time.Time) (time.Time, error) {
	value := r.URL.Query().Get(param)
	if value == constant.Empty {
		return fallback, nil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return date, failure.BadRequestFromString(param + " must be a date formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	return date, nil
}
