package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/internal/domains/project/model"
	"slate/shared/constant"
	gDto "slate/shared/dto"
	gRepo "slate/shared/repository"
	"slate/shared/timezone"
)

type Project interface {
	Insert(ctx context.Context, model model.Project) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Project, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Project, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	MarkChalanCreatedTx(ctx context.Context, tx *sqlx.Tx, projectID, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Project]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Project {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Project](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// MarkChalanCreatedTx flips the project's has_chalan_created marker inside
// the chalan creation transaction. The flag is one-way; it is never cleared.
func (repo *repositoryImpl) MarkChalanCreatedTx(ctx context.Context, tx *sqlx.Tx, projectID, user string) error {
	fields := map[string]any{
		model.FieldHasChalanCreated: true,
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    user,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    projectID,
				Table:    model.TableName,
			},
		},
	}

	return repo.UpdateTx(ctx, tx, fields, filter) //nolint:wrapcheck
}
