package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"slate/infras/otel"
	"slate/infras/postgres"
	"slate/internal/domains/editor/model"
	gDto "slate/shared/dto"
	gRepo "slate/shared/repository"
)

type Editor interface {
	Insert(ctx context.Context, model model.Editor) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Editor, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Editor, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Editor, error)
	InsertLeave(ctx context.Context, leave model.EditorLeave) error
	ListLeaves(ctx context.Context, editorID string) ([]model.EditorLeave, error)
	DeleteLeave(ctx context.Context, editorID, leaveID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Editor]
	leaves gRepo.Repository[model.EditorLeave]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Editor {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Editor](model.EntityName, model.TableName, model.FieldID, db, otel),
		leaves:     gRepo.NewRepository[model.EditorLeave](model.LeaveEntityName, model.LeaveTableName, model.LeaveFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetByIDs(ctx context.Context, ids []string) (map[string]model.Editor, error) {
	if len(ids) == 0 {
		return map[string]model.Editor{}, nil
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

	editors, err := repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Editor, len(editors))
	for _, editor := range editors {
		byID[editor.ID] = editor
	}

	return byID, nil
}

func (repo *repositoryImpl) InsertLeave(ctx context.Context, leave model.EditorLeave) error {
	return repo.leaves.Insert(ctx, leave) //nolint:wrapcheck
}

func (repo *repositoryImpl) ListLeaves(ctx context.Context, editorID string) ([]model.EditorLeave, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.LeaveFieldEditorID,
				Operator: gDto.FilterOperatorEq,
				Value:    editorID,
				Table:    model.LeaveTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.LeaveFieldFromDate, SortDir: gDto.SortDirAsc}

	return repo.leaves.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) DeleteLeave(ctx context.Context, editorID, leaveID string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.LeaveFieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    leaveID,
				Table:    model.LeaveTableName,
			},
			gDto.Filter{
				ArgName:  "leave_editor_id",
				Field:    model.LeaveFieldEditorID,
				Operator: gDto.FilterOperatorEq,
				Value:    editorID,
				Table:    model.LeaveTableName,
			},
		},
	}

	return repo.leaves.Delete(ctx, filter) //nolint:wrapcheck
}
