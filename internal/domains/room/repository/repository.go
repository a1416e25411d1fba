package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/internal/domains/room/model"
	gDto "slate/shared/dto"
	gRepo "slate/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Room, error)
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

// GetByIDs loads rooms keyed by id. The conflict detector uses it to read the
// ignore_conflict flag of every room involved in a candidate set in one query.
func (repo *repositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]model.Room, error) {
	if len(ids) == 0 {
		return map[string]model.Room{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    model.TableName,
			},
		},
	}

	rooms, err := repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	return byID, nil
}
