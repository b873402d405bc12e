// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fitsyy/gym-backend/internal/core"
)

type Repository interface {
	// Upsert inserts the user unless the email is already registered and
	// returns the stored row either way. A soft-deleted account is restored.
	Upsert(ctx context.Context, user *User) (created bool, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	IncrementTokenVersion(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, name, token_version, created_at, updated_at, deleted_at`

func (r *repository) Upsert(ctx context.Context, user *User) (bool, error) {
	// xmax = 0 only for a freshly inserted row.
	query := `
		INSERT INTO users (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET deleted_at = NULL,
		    updated_at = CASE
		        WHEN users.deleted_at IS NULL THEN users.updated_at
		        ELSE NOW()
		    END
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted`

	var row struct {
		User
		Inserted bool `db:"inserted"`
	}
	err := r.db.GetContext(ctx, &row, query, user.ID, user.Email, user.Name)
	if err != nil {
		return false, core.WrapStoreError("upsert user", err)
	}

	*user = row.User
	return row.Inserted, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError("get user", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.WrapStoreError("get user by email", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query, user.ID, user.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WrapStoreError("update user", err)
	}

	return nil
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "increment token version", query, id)
}

// SoftDelete also drops the user's tenant memberships, except that an owner
// cannot disappear from under a tenant.
func (r *repository) SoftDelete(ctx context.Context, id string) error {
	var owns bool
	if err := r.db.GetContext(ctx, &owns,
		`SELECT EXISTS(SELECT 1 FROM user_tenants WHERE user_id = $1 AND role = 'OWNER')`,
		id,
	); err != nil {
		return core.WrapStoreError("delete user", err)
	}
	if owns {
		return fmt.Errorf(
			"delete user: transfer or delete owned tenants first: %w",
			core.ErrInvalidInput,
		)
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM user_tenants WHERE user_id = $1`, id,
	); err != nil {
		return core.WrapStoreError("delete user memberships", err)
	}

	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "delete user", query, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM users WHERE "+whereClause, args...,
	); err != nil {
		return nil, 0, core.WrapStoreError("count users", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, core.WrapStoreError("list users", err)
	}

	return users, total, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return core.WrapStoreError(op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return core.WrapStoreError(op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
