package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/eventbooking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type EventBooking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.EventBooking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.EventBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.EventBooking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertServicesTx(ctx context.Context, tx *sqlx.Tx, services []model.Service) error
	InsertService(ctx context.Context, service model.Service) error
	GetService(ctx context.Context, eventID, serviceID string) (model.Service, error)
	UpdateService(ctx context.Context, req map[string]any, eventID, serviceID string) error
	DeleteService(ctx context.Context, eventID, serviceID string) error
	InsertCustomerPayment(ctx context.Context, payment model.CustomerPayment) error
	GetCustomerPayment(ctx context.Context, eventID, paymentID string) (model.CustomerPayment, error)
	DeleteCustomerPayment(ctx context.Context, eventID, paymentID string) error
	InsertVendorPayment(ctx context.Context, payment model.VendorPayment) error
	GetVendorPayment(ctx context.Context, serviceID, paymentID string) (model.VendorPayment, error)
	DeleteVendorPayment(ctx context.Context, serviceID, paymentID string) error
	GetChildren(ctx context.Context, eventIDs []string) (model.Children, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.EventBooking]
	services         gRepo.Repository[model.Service]
	customerPayments gRepo.Repository[model.CustomerPayment]
	vendorPayments   gRepo.Repository[model.VendorPayment]
	otel             otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) EventBooking {
	return &repositoryImpl{
		Repository:       gRepo.NewRepository[model.EventBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
		services:         gRepo.NewRepository[model.Service](model.ServiceEntityName, model.ServiceTableName, model.FieldID, db, otel),
		customerPayments: gRepo.NewRepository[model.CustomerPayment](model.CustomerPaymentEntityName, model.CustomerPaymentTableName, model.FieldID, db, otel),
		vendorPayments:   gRepo.NewRepository[model.VendorPayment](model.VendorPaymentEntityName, model.VendorPaymentTableName, model.FieldID, db, otel),
		otel:             otel,
	}
}

func (r *repositoryImpl) InsertServicesTx(ctx context.Context, tx *sqlx.Tx, services []model.Service) error {
	if len(services) == 0 {
		return nil
	}

	return r.services.InsertBulkTx(ctx, tx, services) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertService(ctx context.Context, service model.Service) error {
	return r.services.Insert(ctx, service) //nolint:wrapcheck
}

func (r *repositoryImpl) GetService(ctx context.Context, eventID, serviceID string) (model.Service, error) {
	return r.services.Get(ctx, child(model.ServiceTableName, model.FieldEventBookingID, eventID, serviceID)) //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateService(ctx context.Context, req map[string]any, eventID, serviceID string) error {
	return r.services.Update(ctx, req, child(model.ServiceTableName, model.FieldEventBookingID, eventID, serviceID)) //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteService(ctx context.Context, eventID, serviceID string) error {
	return r.services.Delete(ctx, child(model.ServiceTableName, model.FieldEventBookingID, eventID, serviceID)) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertCustomerPayment(ctx context.Context, payment model.CustomerPayment) error {
	return r.customerPayments.Insert(ctx, payment) //nolint:wrapcheck
}

func (r *repositoryImpl) GetCustomerPayment(ctx context.Context, eventID, paymentID string) (model.CustomerPayment, error) {
	return r.customerPayments.Get(ctx, child(model.CustomerPaymentTableName, model.FieldEventBookingID, eventID, paymentID)) //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteCustomerPayment(ctx context.Context, eventID, paymentID string) error {
	return r.customerPayments.Delete(ctx, child(model.CustomerPaymentTableName, model.FieldEventBookingID, eventID, paymentID)) //nolint:wrapcheck
}

func (r *repositoryImpl) InsertVendorPayment(ctx context.Context, payment model.VendorPayment) error {
	return r.vendorPayments.Insert(ctx, payment) //nolint:wrapcheck
}

func (r *repositoryImpl) GetVendorPayment(ctx context.Context, serviceID, paymentID string) (model.VendorPayment, error) {
	return r.vendorPayments.Get(ctx, child(model.VendorPaymentTableName, model.FieldEventServiceID, serviceID, paymentID)) //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteVendorPayment(ctx context.Context, serviceID, paymentID string) error {
	return r.vendorPayments.Delete(ctx, child(model.VendorPaymentTableName, model.FieldEventServiceID, serviceID, paymentID)) //nolint:wrapcheck
}

// GetChildren loads the services, vendor payments and customer payments of eventIDs
// with one query per table.
func (r *repositoryImpl) GetChildren(ctx context.Context, eventIDs []string) (res model.Children, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".event_booking.GetChildren")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(eventIDs) == 0 {
		return res, nil
	}

	res.Services, err = r.services.GetAll(ctx, oldestFirst(), in(model.ServiceTableName, model.FieldEventBookingID, eventIDs))
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.CustomerPayments, err = r.customerPayments.GetAll(ctx, byPaymentDate(), in(model.CustomerPaymentTableName, model.FieldEventBookingID, eventIDs))
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if len(res.Services) == 0 {
		return res, nil
	}

	serviceIDs := make([]string, len(res.Services))
	for i, service := range res.Services {
		serviceIDs[i] = service.ID
	}

	res.VendorPayments, err = r.vendorPayments.GetAll(ctx, byPaymentDate(), in(model.VendorPaymentTableName, model.FieldEventServiceID, serviceIDs))
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func child(table, parentField, parentID, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
			gDto.Filter{
				Field:    parentField,
				Value:    parentID,
				Operator: gDto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func in(table, field string, ids []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

func oldestFirst() gDto.QueryParams {
	return gDto.QueryParams{SortBy: "created_at", SortDir: gDto.SortDirAsc}
}

func byPaymentDate() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldPaymentDate, SortDir: gDto.SortDirAsc}
}
