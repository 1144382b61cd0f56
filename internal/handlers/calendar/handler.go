package calendar

import (
	"hotel/infras/otel"
	"hotel/internal/domains/calendar/model/dto"
	"hotel/internal/domains/calendar/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/calendar", handler.GetGrid)
}

// GetGrid returns the room by date availability grid.
// @Summary Availability calendar
// @Description Rooms other than Inactive ones, one cell per date. Defaults to 14 days from today.
// @Tags Calendar
// @Produce json
// @Param start query string false "First date (YYYY-MM-DD)"
// @Param days query integer false "Number of days (1-62)"
// @Success 200 {object} response.Data[dto.GridResponse]
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGrid")
	defer scope.End()

	query := r.URL.Query()
	req := dto.GridRequest{Start: query.Get(constant.RequestParamStart)}

	if value := query.Get(constant.RequestParamDays); value != constant.Empty {
		days, err := strconv.Atoi(value)
		if err != nil {
			err = failure.BadRequestFromString("days must be an integer")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		req.Days = &days
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	grid, err := handler.service.Grid(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, grid)
}
