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
	"github.com/oakside/todo-api/internal/query"
	"github.com/oakside/todo-api/internal/sqlerr"
)

// rowQuerier is the single-row surface shared by the pool and an open
// transaction, so re-fetch helpers work in both contexts.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UsersRepository owns all SQL against the users table.
type UsersRepository struct {
	db  database.Querier
	log *zerolog.Logger
}

func NewUsersRepository(db database.Querier, logger *zerolog.Logger) *UsersRepository {
	return &UsersRepository{db: db, log: logger}
}

const selectUserByID = `SELECT id, name, email, created_at FROM users WHERE id = $1`

func fetchUser(ctx context.Context, q rowQuerier, id int64) (*model.User, error) {
	var user model.User
	err := q.QueryRow(ctx, selectUserByID, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a user and returns the stored row.
//
// The insert, the generated-key retrieval (RETURNING id), and the
// re-fetch all run on the same transactional session; identifier
// retrieval on a separate connection would race with concurrent
// inserts. A duplicate email aborts the transaction and surfaces as a
// Conflict.
func (r *UsersRepository) Create(ctx context.Context, name, email string) (*model.User, error) {
	var user *model.User

	err := database.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
			name, email,
		).Scan(&id)
		if err != nil {
			return err
		}

		user, err = fetchUser(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return user, nil
}

// List returns all users ordered by id ascending.
func (r *UsersRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, created_at FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Search returns users matching the filter, ordered by id ascending.
// The predicate and its parameters are both supplied to the executed
// statement; when no condition is active the WHERE clause is omitted
// entirely.
func (r *UsersRepository) Search(ctx context.Context, f query.Filter) ([]model.User, error) {
	builder := psql.Select("id", "name", "email", "created_at").
		From("users").
		OrderBy("id ASC")

	if pred := f.Predicate(); len(pred) > 0 {
		builder = builder.Where(pred)
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

	return scanUsers(rows)
}

// Get returns a single user by id.
func (r *UsersRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := fetchUser(ctx, r.db, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("User not found", true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// UserPatch carries the optional fields of a partial update. Nil means
// "leave untouched".
type UserPatch struct {
	Name  *string
	Email *string
}

// IsZero reports whether no field is supplied.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Email == nil
}

// Update applies the supplied fields and returns the fresh row.
//
// Existence is checked by re-fetching inside the same transaction, not
// by trusting affected-row counts: a no-op update on an existing row
// and an update on a missing row are only distinguishable by presence.
func (r *UsersRepository) Update(ctx context.Context, id int64, patch UserPatch) (*model.User, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}

	var user *model.User

	err := database.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		sqlText, args, err := psql.Update("users").
			SetMap(updates).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, sqlText, args...); err != nil {
			return err
		}

		user, err = fetchUser(ctx, tx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError("User not found", true, nil)
		}
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return user, nil
}

// Delete removes a user by id. Deleting a user cascades to its todos at
// the store level.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("User not found", true, nil)
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}
