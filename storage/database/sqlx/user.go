package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/chuo/core/user"
)

// uniqueViolation is the pq error code raised on unique index conflicts.
const uniqueViolation = pq.ErrorCode("23505")

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

type userRow struct {
	ID           int        `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Role         string     `db:"role"`
	PasswordHash null.Bytes `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (r userRow) unpack() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		PasswordHash: r.PasswordHash.Bytes,
		CreatedAt:    r.CreatedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// CreateUser inserts usr in a single statement; the unique index on email
// turns concurrent duplicate signups into ErrEmailExists (no check-then-insert gap).
func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	const q = `
		INSERT INTO "user" (name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, role, password_hash, created_at`

	var row userRow
	err := repo.db.QueryRowxContext(
		ctx, q, usr.Name, usr.Email, usr.Role, null.BytesFrom(usr.PasswordHash), usr.CreatedAt,
	).StructScan(&row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.unpack(), nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	const q = `SELECT id, name, email, role, password_hash, created_at FROM "user" WHERE id = $1`

	var row userRow
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return row.unpack(), nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	const q = `SELECT id, name, email, role, password_hash, created_at FROM "user" WHERE LOWER(email) = LOWER($1)`

	var row userRow
	if err := repo.db.GetContext(ctx, &row, q, email); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by email")
	}
	return row.unpack(), nil
}

func (repo userRepository) SetUserPassword(ctx context.Context, id int, hash []byte) error {
	const q = `UPDATE "user" SET password_hash = $2 WHERE id = $1 RETURNING id`

	var updated int
	if err := repo.db.QueryRowxContext(ctx, q, id, null.BytesFrom(hash)).Scan(&updated); err != nil {
		return repo.trapNoRowsErr(err, "updating user password")
	}
	return nil
}
