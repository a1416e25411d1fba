package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/internal/domains/chalan/model"
	projectRepo "slate/internal/domains/project/repository"
	"slate/shared"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	"slate/shared/failure"
	gRepo "slate/shared/repository"
)

// maxRevisionRetry bounds the recompute loop absorbing concurrent revision
// number allocation for the same chalan.
const maxRevisionRetry = 3

type Chalan interface {
	CreateWithItems(ctx context.Context, chalan model.Chalan, items []model.ChalanItem) error
	UpdateWithItems(ctx context.Context, fields map[string]any, id string, items []model.ChalanItem, replaceItems bool, revision model.ChalanRevision) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Chalan, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Chalan, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
	FindByBooking(ctx context.Context, bookingID string) (model.Chalan, error)
	ListItems(ctx context.Context, chalanID string) ([]model.ChalanItem, error)
	AppendRevision(ctx context.Context, revision model.ChalanRevision) (int, error)
	ListRevisions(ctx context.Context, chalanID string) ([]model.ChalanRevision, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Chalan]
	items     gRepo.Repository[model.ChalanItem]
	revisions gRepo.Repository[model.ChalanRevision]
	projects  projectRepo.Project
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, projects projectRepo.Project, otel otel.Otel) Chalan {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Chalan](model.EntityName, model.TableName, model.FieldID, db, otel),
		items:      gRepo.NewRepository[model.ChalanItem](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otel),
		revisions:  gRepo.NewRepository[model.ChalanRevision](model.RevisionEntityName, model.RevisionTableName, model.RevisionFieldID, db, otel),
		projects:   projects,
		db:         db,
		otel:       otel,
	}
}

// CreateWithItems persists the chalan, its lines, and the owning project's
// has_chalan_created flag in one transaction. A lost race on the document
// number surfaces as a numbering failure for the service to recompute and
// retry; a lost race on the booking reference surfaces as a duplicate.
func (repo *repositoryImpl) CreateWithItems(ctx context.Context, chalan model.Chalan, items []model.ChalanItem) error {
	err := repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, chalan); err != nil {
			return err
		}

		if len(items) > 0 {
			if err := repo.items.InsertBulkTx(ctx, tx, items); err != nil {
				return err
			}
		}

		return repo.projects.MarkChalanCreatedTx(ctx, tx, chalan.ProjectID, chalan.CreatedBy)
	})

	return repo.mapUniqueViolation(err)
}

// UpdateWithItems applies the patch, optionally replaces the whole line set,
// and appends the revision entry, all in one transaction. Items are replaced
// wholesale (delete-all, insert-all), never diffed. A revision number
// collision aborts the transaction and is retried with a fresh number.
func (repo *repositoryImpl) UpdateWithItems(ctx context.Context, fields map[string]any, id string, items []model.ChalanItem, replaceItems bool, revision model.ChalanRevision) error {
	var err error

	for attempt := 0; attempt < maxRevisionRetry; attempt++ {
		err = repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
			if err := repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
				return err
			}

			if replaceItems {
				if err := repo.items.DeleteTx(ctx, tx, repo.byChalan(model.ItemFieldChalanID, model.ItemTableName, id)); err != nil {
					return err
				}

				if len(items) > 0 {
					if err := repo.items.InsertBulkTx(ctx, tx, items); err != nil {
						return err
					}
				}
			}

			next, err := repo.nextRevisionNumber(ctx, revision.ChalanID)
			if err != nil {
				return err
			}

			revision.RevisionNumber = next

			return repo.revisions.InsertTx(ctx, tx, revision)
		})

		if postgres.UniqueConstraint(err) != model.ConstraintRevisionNumber {
			break
		}

		log.Warn().Str("chalan_id", revision.ChalanID).Int("attempt", attempt+1).Msg("revision number collision, recomputing")
	}

	return repo.mapUniqueViolation(err)
}

// NumbersWithPrefix returns every stored chalan number sharing the given
// month prefix. The numbering computation parses the suffixes itself.
func (repo *repositoryImpl) NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldChalanNumber,
				Operator: gDto.FilterOperatorLike,
				Value:    prefix,
				Table:    model.TableName,
			},
		},
	}

	chalans, err := repo.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldChalanNumber)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, len(chalans))
	for i, chalan := range chalans {
		numbers[i] = chalan.ChalanNumber
	}

	return numbers, nil
}

// FindByBooking returns the live (non-cancelled) chalan referencing the
// booking, or a zero chalan when none exists.
func (repo *repositoryImpl) FindByBooking(ctx context.Context, bookingID string) (model.Chalan, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldIsCancelled,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
				Table:    model.TableName,
			},
		},
	}

	return repo.Get(ctx, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) ListItems(ctx context.Context, chalanID string) ([]model.ChalanItem, error) {
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	return repo.items.GetAll(ctx, params, repo.byChalan(model.ItemFieldChalanID, model.ItemTableName, chalanID)) //nolint:wrapcheck
}

// AppendRevision inserts the next ledger entry for the chalan: read the
// current maximum, insert max+1, and recompute on a number collision. The
// unique constraint keeps the ledger gapless and duplicate-free under
// concurrency.
func (repo *repositoryImpl) AppendRevision(ctx context.Context, revision model.ChalanRevision) (int, error) {
	var err error

	for attempt := 0; attempt < maxRevisionRetry; attempt++ {
		var next int

		next, err = repo.nextRevisionNumber(ctx, revision.ChalanID)
		if err != nil {
			return 0, err
		}

		revision.RevisionNumber = next

		err = repo.revisions.Insert(ctx, revision)
		if err == nil {
			return next, nil
		}

		if postgres.UniqueConstraint(err) != model.ConstraintRevisionNumber {
			return 0, err
		}

		log.Warn().Str("chalan_id", revision.ChalanID).Int("attempt", attempt+1).Msg("revision number collision, recomputing")
	}

	return 0, failure.NumberingRace(model.RevisionEntityName) //nolint:wrapcheck
}

func (repo *repositoryImpl) ListRevisions(ctx context.Context, chalanID string) ([]model.ChalanRevision, error) {
	params := gDto.QueryParams{SortBy: model.RevisionFieldNumber, SortDir: gDto.SortDirAsc}

	return repo.revisions.GetAll(ctx, params, repo.byChalan(model.RevisionFieldChalanID, model.RevisionTableName, chalanID)) //nolint:wrapcheck
}

func (repo *repositoryImpl) nextRevisionNumber(ctx context.Context, chalanID string) (int, error) {
	params := gDto.QueryParams{Limit: 1, SortBy: model.RevisionFieldNumber, SortDir: gDto.SortDirDesc}

	latest, err := repo.revisions.GetAll(ctx, params, repo.byChalan(model.RevisionFieldChalanID, model.RevisionTableName, chalanID))
	if err != nil {
		return 0, err
	}

	if len(latest) == 0 {
		return 1, nil
	}

	return latest[0].RevisionNumber + 1, nil
}

func (repo *repositoryImpl) byChalan(field, table, chalanID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    chalanID,
				Table:    table,
			},
		},
	}
}

func (repo *repositoryImpl) mapUniqueViolation(err error) error {
	switch postgres.UniqueConstraint(err) {
	case model.ConstraintChalanNumber:
		return failure.NumberingRace(model.EntityName) //nolint:wrapcheck
	case model.ConstraintBookingLive:
		return failure.DuplicateChalanForBooking("") //nolint:wrapcheck
	case model.ConstraintRevisionNumber:
		return failure.NumberingRace(model.RevisionEntityName) //nolint:wrapcheck
	default:
		return err
	}
}
