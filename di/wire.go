//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/internal/jobs"
	"hotel/internal/worker"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	authService "hotel/internal/domains/auth/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	calendarService "hotel/internal/domains/calendar/service"
	eventBookingRepository "hotel/internal/domains/eventbooking/repository"
	eventBookingService "hotel/internal/domains/eventbooking/service"
	expenseRepository "hotel/internal/domains/expense/repository"
	expenseService "hotel/internal/domains/expense/service"
	guestRepository "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	reportService "hotel/internal/domains/report/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	calendarHandler "hotel/internal/handlers/calendar"
	eventBookingHandler "hotel/internal/handlers/eventbooking"
	expenseHandler "hotel/internal/handlers/expense"
	guestHandler "hotel/internal/handlers/guest"
	reportHandler "hotel/internal/handlers/report"
	roomHandler "hotel/internal/handlers/room"
	userHandler "hotel/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.Revocation), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomRepository.New,
	guestRepository.New,
	bookingRepository.New,
	expenseRepository.New,
	eventBookingRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	roomService.New,
	guestService.New,
	bookingService.New,
	expenseService.New,
	eventBookingService.New,
	reportService.New,
	calendarService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	expenseHandler.New,
	eventBookingHandler.New,
	reportHandler.New,
	calendarHandler.New,
	router.New,
)

var scheduling = wire.NewSet(
	jobs.New,
	wire.Bind(new(jobs.RecurringExpenses), new(expenseService.Expense)),
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		scheduling,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}

func InitializeWorker() *Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		bookingRepository.New,
		worker.NewActivityRecorder,
		wire.Struct(new(Worker), "*"),
	)

	return &Worker{}
}

func InitializeUserService() userService.User {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		sharedHelpers,
		userRepository.New,
		userService.New,
	)

	return nil
}
