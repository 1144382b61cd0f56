package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountGroupedBy(ctx context.Context, column string) ([]model.StatusCount, error)
	HasBookings(ctx context.Context, roomID string) (bool, error)
	GetAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountGroupedBy counts rooms per distinct value of column. Only status and room_type are accepted.
func (r *repositoryImpl) CountGroupedBy(ctx context.Context, column string) ([]model.StatusCount, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.CountGroupedBy")
	defer scope.End()

	if column != model.FieldStatus && column != model.FieldRoomType {
		return nil, fmt.Errorf("unsupported group column %q", column)
	}

	query := fmt.Sprintf("SELECT %[1]s AS key, COUNT(id) AS count FROM %[2]s GROUP BY %[1]s ORDER BY %[1]s", column, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []model.StatusCount{}

	if err := r.db.Read.SelectContext(ctx, &rows, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count rooms by %s: %w", column, err)
	}

	return rows, nil
}

func (r *repositoryImpl) HasBookings(ctx context.Context, roomID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.HasBookings")
	defer scope.End()

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", bookingModel.TableName, bookingModel.FieldRoomID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exists bool

	if err := r.db.Read.GetContext(ctx, &exists, query, roomID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check room bookings: %w", err)
	}

	return exists, nil
}

// GetAvailable lists bookable rooms with no blocking booking intersecting [checkIn, checkOut).
func (r *repositoryImpl) GetAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]model.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAvailable")
	defer scope.End()

	query := fmt.Sprintf(`SELECT %[1]s.* FROM %[1]s
		WHERE %[1]s.status = $1
		AND NOT EXISTS (
			SELECT 1 FROM %[2]s b
			WHERE b.room_id = %[1]s.id
			AND b.status = ANY($2)
			AND b.check_in_date < $4
			AND $3 < b.check_out_date
		)
		ORDER BY %[1]s.room_number`, model.TableName, bookingModel.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rooms := []model.Room{}

	err := r.db.Read.SelectContext(ctx, &rooms, query, model.StatusActive, pq.Array(bookingModel.BlockingStatusValues()), checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get available rooms: %w", err)
	}

	return rooms, nil
}
