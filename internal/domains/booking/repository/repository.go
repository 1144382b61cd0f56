package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasOverlapTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	GetOverlapping(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	InsertServiceTx(ctx context.Context, tx *sqlx.Tx, service model.Service) error
	GetServices(ctx context.Context, bookingID string) ([]model.Service, error)
	GetServicesTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.Service, error)
	DeleteServiceTx(ctx context.Context, tx *sqlx.Tx, bookingID, serviceID string) error
	InsertPaymentTx(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error
	GetPayments(ctx context.Context, bookingID string) ([]model.Payment, error)
	GetPaymentsTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.Payment, error)
	InsertActivity(ctx context.Context, activity model.Activity) error
	GetActivities(ctx context.Context, bookingID string) ([]model.Activity, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	services   gRepo.Repository[model.Service]
	payments   gRepo.Repository[model.Payment]
	activities gRepo.Repository[model.Activity]
	db         *postgres.Connection
	otel       otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		services:   gRepo.NewRepository[model.Service](model.ServiceEntityName, model.ServiceTableName, model.FieldID, db, otel),
		payments:   gRepo.NewRepository[model.Payment](model.PaymentEntityName, model.PaymentTableName, model.FieldID, db, otel),
		activities: gRepo.NewRepository[model.Activity](model.ActivityEntityName, model.ActivityTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HasOverlapTx reports whether another blocking booking of roomID intersects [checkIn, checkOut).
// It must run after the room row has been locked in tx.
func (r *repositoryImpl) HasOverlapTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasOverlapTx")
	defer scope.End()

	query := fmt.Sprintf(`SELECT EXISTS(
		SELECT 1 FROM %s
		WHERE room_id = $1
		AND status = ANY($2)
		AND check_in_date < $4
		AND $3 < check_out_date
		AND id <> $5
	)`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exists bool

	err := tx.GetContext(ctx, &exists, query, roomID, pq.Array(model.BlockingStatusValues()), checkIn, checkOut, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	return exists, nil
}

// GetOverlapping returns the blocking bookings with at least one night in [from, to].
func (r *repositoryImpl) GetOverlapping(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetOverlapping")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.BlockingStatusValues(),
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckInDate,
				Value:    to,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckOutDate,
				Value:    from,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertServiceTx(ctx context.Context, tx *sqlx.Tx, service model.Service) error {
	return r.services.InsertTx(ctx, tx, service) //nolint:wrapcheck
}

func (r *repositoryImpl) GetServices(ctx context.Context, bookingID string) ([]model.Service, error) {
	return r.services.GetAll(ctx, oldestFirst(model.FieldServiceDate), ofBooking(model.ServiceTableName, bookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetServicesTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.Service, error) {
	return r.services.GetAllTx(ctx, tx, oldestFirst(model.FieldServiceDate), ofBooking(model.ServiceTableName, bookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteServiceTx(ctx context.Context, tx *sqlx.Tx, bookingID, serviceID string) error {
	filter := ofBooking(model.ServiceTableName, bookingID)
	filter.Filters = append(filter.Filters, shared.FilterByID(serviceID, model.FieldID, model.ServiceTableName))

	return r.services.DeleteTx(ctx, tx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertPaymentTx(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error {
	return r.payments.InsertTx(ctx, tx, payment) //nolint:wrapcheck
}

func (r *repositoryImpl) GetPayments(ctx context.Context, bookingID string) ([]model.Payment, error) {
	return r.payments.GetAll(ctx, oldestFirst(model.FieldPaymentCollectedAt), ofBooking(model.PaymentTableName, bookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetPaymentsTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.Payment, error) {
	return r.payments.GetAllTx(ctx, tx, oldestFirst(model.FieldPaymentCollectedAt), ofBooking(model.PaymentTableName, bookingID)) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertActivity(ctx context.Context, activity model.Activity) error {
	return r.activities.Insert(ctx, activity) //nolint:wrapcheck
}

func (r *repositoryImpl) GetActivities(ctx context.Context, bookingID string) ([]model.Activity, error) {
	return r.activities.GetAll(ctx, oldestFirst(model.FieldActivityOccurredAt), ofBooking(model.ActivityTableName, bookingID)) //nolint:wrapcheck
}

func ofBooking(table, bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldServiceBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func oldestFirst(sortBy string) gDto.QueryParams {
	return gDto.QueryParams{SortBy: sortBy, SortDir: gDto.SortDirAsc}
}
