package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-auth-api/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		pool: pool,
	}
}

// Create returns ErrorConflict when the username or email is already taken.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Username, u.Email, u.PasswordHash, string(u.Role)).Scan(&u.ID)
	return u, mapError(err)
}

// CreateMany inserts all users in one transaction: either every user is stored or none.
func (r *UserRepo) CreateMany(ctx context.Context, users []model.User) ([]model.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // после Commit ничего не делает

	created := make([]model.User, 0, len(users))
	for _, u := range users {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, email, password, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.Username, u.Email, u.PasswordHash, string(u.Role)).Scan(&u.ID)
		if err != nil {
			return nil, fmt.Errorf("insert user %s: %w", u.Username, mapError(err))
		}
		created = append(created, u)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return created, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var (
		u    model.User
		role string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password, role
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role)
	if err != nil {
		return model.User{}, mapError(err)
	}
	u.Role = model.Role(role)
	return u, nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}
