package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/oakside/todo-api/internal/database"
	"github.com/oakside/todo-api/internal/errs"
	"github.com/oakside/todo-api/internal/model"
	"github.com/oakside/todo-api/internal/sqlerr"
)

// TodosRepository owns all SQL against the todos table.
type TodosRepository struct {
	db  database.Querier
	log *zerolog.Logger
}

func NewTodosRepository(db database.Querier, logger *zerolog.Logger) *TodosRepository {
	return &TodosRepository{db: db, log: logger}
}

const selectTodoByID = `SELECT id, title, done, user_id FROM todos WHERE id = $1`

func fetchTodo(ctx context.Context, q rowQuerier, id int64) (*model.Todo, error) {
	var todo model.Todo
	err := q.QueryRow(ctx, selectTodoByID, id).
		Scan(&todo.ID, &todo.Title, &todo.Done, &todo.UserID)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Create inserts a todo (done defaults to false) and returns the stored
// row, using the same transactional sequence as users: insert with
// RETURNING id, then re-fetch on the same session. A user_id that
// references no user aborts with the foreign key violation mapped to a
// Bad Request.
func (r *TodosRepository) Create(ctx context.Context, title string, userID int64) (*model.Todo, error) {
	var todo *model.Todo

	err := database.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO todos (title, done, user_id) VALUES ($1, FALSE, $2) RETURNING id`,
			title, userID,
		).Scan(&id)
		if err != nil {
			return err
		}

		todo, err = fetchTodo(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return todo, nil
}

// List returns todos ordered by id descending, optionally restricted to
// a single owner.
func (r *TodosRepository) List(ctx context.Context, userID *int64) ([]model.Todo, error) {
	builder := psql.Select("id", "title", "done", "user_id").
		From("todos").
		OrderBy("id DESC")

	if userID != nil {
		builder = builder.Where(sq.Eq{"user_id": *userID})
	}

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var todo model.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Done, &todo.UserID); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return todos, nil
}

// Get returns a single todo by id.
func (r *TodosRepository) Get(ctx context.Context, id int64) (*model.Todo, error) {
	todo, err := fetchTodo(ctx, r.db, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Todo not found", true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}
	return todo, nil
}

// TodoPatch carries the optional fields of a partial update.
type TodoPatch struct {
	Title *string
	Done  *bool
}

// IsZero reports whether no field is supplied.
func (p TodoPatch) IsZero() bool {
	return p.Title == nil && p.Done == nil
}

// Update applies the supplied fields and returns the fresh row,
// checking existence by re-fetch rather than affected-row count.
func (r *TodosRepository) Update(ctx context.Context, id int64, patch TodoPatch) (*model.Todo, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Done != nil {
		updates["done"] = *patch.Done
	}

	var todo *model.Todo

	err := database.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		sqlText, args, err := psql.Update("todos").
			SetMap(updates).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, sqlText, args...); err != nil {
			return err
		}

		todo, err = fetchTodo(ctx, tx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError("Todo not found", true, nil)
		}
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return todo, nil
}

// Delete removes a todo by id.
func (r *TodosRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("Todo not found", true, nil)
	}
	return nil
}
