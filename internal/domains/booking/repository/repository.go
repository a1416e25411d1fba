package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/internal/domains/booking/model"
	"slate/shared"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/failure"
	gRepo "slate/shared/repository"
)

type Booking interface {
	CreateWithLog(ctx context.Context, booking model.Booking, logEntry model.BookingLog) error
	UpdateWithLog(ctx context.Context, fields map[string]any, id string, logEntry model.BookingLog) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ListActiveOnDate(ctx context.Context, date time.Time, excludeID string) ([]model.Booking, error)
	ListLogs(ctx context.Context, bookingID string) ([]model.BookingLog, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	logs gRepo.Repository[model.BookingLog]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		logs:       gRepo.NewRepository[model.BookingLog](model.LogEntityName, model.LogTableName, model.LogFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateWithLog persists the booking and its audit entry in one transaction,
// so a failed write never leaves a partial log trail. The room-overlap
// exclusion constraint is the backstop for two creates racing past the
// advisory conflict check; tripping it surfaces as a conflict.
func (repo *repositoryImpl) CreateWithLog(ctx context.Context, booking model.Booking, logEntry model.BookingLog) error {
	err := repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		return repo.logs.InsertTx(ctx, tx, logEntry)
	})
	if err != nil {
		if postgres.IsExclusionViolation(err) {
			return failure.Conflict("the room is already booked for an overlapping time slot") //nolint:wrapcheck
		}

		return err
	}

	return nil
}

// UpdateWithLog applies the field patch and appends the audit entry
// atomically.
func (repo *repositoryImpl) UpdateWithLog(ctx context.Context, fields map[string]any, id string, logEntry model.BookingLog) error {
	err := repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		return repo.logs.InsertTx(ctx, tx, logEntry)
	})
	if err != nil {
		if postgres.IsExclusionViolation(err) {
			return failure.Conflict("the room is already booked for an overlapping time slot") //nolint:wrapcheck
		}

		return err
	}

	return nil
}

// ListActiveOnDate returns every non-cancelled booking on the given calendar
// date, optionally excluding one booking id so edits do not conflict with
// themselves.
func (repo *repositoryImpl) ListActiveOnDate(ctx context.Context, date time.Time, excludeID string) ([]model.Booking, error) {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorNotEq,
			Value:    constant.BookingStatusCancelled,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
	params := gDto.QueryParams{SortBy: model.FieldFromTime, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// ListLogs returns the audit trail for a booking in chronological order.
func (repo *repositoryImpl) ListLogs(ctx context.Context, bookingID string) ([]model.BookingLog, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.LogFieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.LogTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return repo.logs.GetAll(ctx, params, filter) //nolint:wrapcheck
}
