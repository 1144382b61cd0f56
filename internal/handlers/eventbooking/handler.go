package eventbooking

import (
	"hotel/infras/otel"
	"hotel/internal/domains/eventbooking/model"
	"hotel/internal/domains/eventbooking/model/dto"
	"hotel/internal/domains/eventbooking/service"
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

const queryParamSearch = "search"

type Handler struct {
	service service.EventBooking
	otel    otel.Otel
}

func New(service service.EventBooking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/event-bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEventBooking)
		routerGroup.Get("/", handler.GetEventBookings)
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/{id}", handler.GetEventBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateEventBooking)
		routerGroup.Delete("/{id}", handler.DeleteEventBooking)
		routerGroup.Post("/{id}/services", handler.AddService)
		routerGroup.Patch("/{id}/services/{service_id}", handler.UpdateService)
		routerGroup.Delete("/{id}/services/{service_id}", handler.RemoveService)
		routerGroup.Post("/{id}/services/{service_id}/vendor-payments", handler.AddVendorPayment)
		routerGroup.Delete("/{id}/services/{service_id}/vendor-payments/{payment_id}", handler.RemoveVendorPayment)
		routerGroup.Post("/{id}/customer-payments", handler.AddCustomerPayment)
		routerGroup.Delete("/{id}/customer-payments/{payment_id}", handler.RemoveCustomerPayment)
	})
}

// CreateEventBooking books an event with its initial services.
// @Summary Create an event booking
// @Description The event starts Confirmed. Custom services need custom_service_name.
// @Tags Event Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateEventBookingRequest true "Event details"
// @Success 201 {object} response.Data[dto.EventBookingResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/event-bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateEventBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEventBooking")
	defer scope.End()

	var req dto.CreateEventBookingRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	event, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create event booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, event)
}

// GetEventBookings lists events with their financial totals.
// @Summary Get all event bookings
// @Description Latest event date first. is_collapsed marks events more than three days in the past.
// @Tags Event Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Booking or contact name"
// @Param status query string false "Confirmed, Completed or Cancelled"
// @Param date_from query string false "Event date from (YYYY-MM-DD)"
// @Param date_to query string false "Event date to (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetEventBookingsResponse]
// @Failure 400 {object} response.Message
// @Router /v1/event-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetEventBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := eventFilter(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	events, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, events)
}

// GetSummary totals events for reporting.
// @Summary Event booking summary
// @Description Counts include cancelled events; money excludes them.
// @Tags Event Booking
// @Produce json
// @Param date_from query string false "From (YYYY-MM-DD)"
// @Param date_to query string false "To (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Message
// @Router /v1/event-bookings/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventSummary")
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
		log.Error().Err(err).Msg("failed to get event booking summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetEventBookingByID returns an event with services, payments and financials.
// @Summary Get an event booking
// @Tags Event Booking
// @Produce json
// @Param id path string true "Event booking ID"
// @Success 200 {object} response.Data[dto.EventBookingResponse]
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEventBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventBookingByID")
	defer scope.End()

	event, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, event)
}

// UpdateEventBooking partially updates an event.
// @Summary Update an event booking
// @Tags Event Booking
// @Accept json
// @Produce json
// @Param id path string true "Event booking ID"
// @Param request body dto.UpdateEventBookingRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.EventBookingResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEventBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEventBooking")
	defer scope.End()

	var req dto.UpdateEventBookingRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	event, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update event booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, event)
}

// DeleteEventBooking deletes a cancelled event.
// @Summary Delete an event booking
// @Description Only cancelled events can be deleted. Services and payments go with it.
// @Tags Event Booking
// @Produce json
// @Param id path string true "Event booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEventBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEventBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete event booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event booking deleted successfully")
}

// AddService adds a service to an event.
// @Summary Add an event service
// @Tags Event Booking
// @Accept json
// @Produce json
// @Param id path string true "Event booking ID"
// @Param request body dto.ServiceRequest true "Service"
// @Success 201 {object} response.Data[dto.ServiceResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/services [post]
// @Security BearerAuth
func (handler *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddEventService")
	defer scope.End()

	var req dto.ServiceRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	created, err := handler.service.AddService(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add event service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, created)
}

// UpdateService changes a service of an event.
// @Summary Update an event service
// @Tags Event Booking
// @Accept json
// @Produce json
// @Param id path string true "Event booking ID"
// @Param service_id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.ServiceResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/services/{service_id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEventService")
	defer scope.End()

	var req dto.UpdateServiceRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	updated, err := handler.service.UpdateService(ctx, req, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamServiceID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update event service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, updated)
}

// RemoveService deletes a service and its vendor payments.
// @Summary Remove an event service
// @Tags Event Booking
// @Produce json
// @Param id path string true "Event booking ID"
// @Param service_id path string true "Service ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/services/{service_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveEventService")
	defer scope.End()

	err := handler.service.RemoveService(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamServiceID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove event service")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Service deleted successfully")
}

// AddCustomerPayment records money received from the customer.
// @Summary Add a customer payment
// @Tags Event Booking
// @Accept json
// @Produce json
// @Param id path string true "Event booking ID"
// @Param request body dto.PaymentRequest true "Payment"
// @Success 201 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/customer-payments [post]
// @Security BearerAuth
func (handler *Handler) AddCustomerPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddCustomerPayment")
	defer scope.End()

	var req dto.PaymentRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	payment, err := handler.service.AddCustomerPayment(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add customer payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, payment)
}

// RemoveCustomerPayment deletes a customer payment.
// @Summary Remove a customer payment
// @Tags Event Booking
// @Produce json
// @Param id path string true "Event booking ID"
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/customer-payments/{payment_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveCustomerPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveCustomerPayment")
	defer scope.End()

	err := handler.service.RemoveCustomerPayment(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamPaymentID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove customer payment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Payment deleted successfully")
}

// AddVendorPayment records money paid to the vendor of a service.
// @Summary Add a vendor payment
// @Tags Event Booking
// @Accept json
// @Produce json
// @Param id path string true "Event booking ID"
// @Param service_id path string true "Service ID"
// @Param request body dto.PaymentRequest true "Payment"
// @Success 201 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/services/{service_id}/vendor-payments [post]
// @Security BearerAuth
func (handler *Handler) AddVendorPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddVendorPayment")
	defer scope.End()

	var req dto.PaymentRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	payment, err := handler.service.AddVendorPayment(ctx, req, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamServiceID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add vendor payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, payment)
}

// RemoveVendorPayment deletes a vendor payment.
// @Summary Remove a vendor payment
// @Tags Event Booking
// @Produce json
// @Param id path string true "Event booking ID"
// @Param service_id path string true "Service ID"
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/event-bookings/{id}/services/{service_id}/vendor-payments/{payment_id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveVendorPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveVendorPayment")
	defer scope.End()

	err := handler.service.RemoveVendorPayment(ctx,
		chi.URLParam(r, constant.RequestParamID),
		chi.URLParam(r, constant.RequestParamServiceID),
		chi.URLParam(r, constant.RequestParamPaymentID),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove vendor payment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Vendor payment deleted successfully")
}

func eventFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if search := query.Get(queryParamSearch); search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldBookingName, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName},
				gDto.Filter{Field: model.FieldContactName, Operator: gDto.FilterOperatorLike, Value: search, Table: model.TableName},
			},
		})
	}

	if value := query.Get(model.FieldStatus); value != constant.Empty {
		status := model.Status(value)
		if err := validator.ValidateVar(status, "enum"); err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	from, err := dateParam(query.Get(constant.RequestParamDateFrom), constant.RequestParamDateFrom)
	if err != nil {
		return filterGroup, err
	}

	to, err := dateParam(query.Get(constant.RequestParamDateTo), constant.RequestParamDateTo)
	if err != nil {
		return filterGroup, err
	}

	window := service.InWindow(from, to)
	filterGroup.Filters = append(filterGroup.Filters, window.Filters...)

	return filterGroup, nil
}

func dateParam(value, name string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return nil, failure.BadRequestFromString(name + " must be a date formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	return &date, nil
}
