package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockroom/backoffice/domain/entity"
)

const userColumns = `id, name, email, password, role, last_login_at, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	user, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, readError("find user by email", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readError("find user by id", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if user.Email == "" || user.Password == "" {
		return fmt.Errorf("user email and password are required")
	}

	query := `
		INSERT INTO users (name, email, password, role, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.LastLoginAt,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return writeError("create user", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password = $3, role = $4, last_login_at = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.LastLoginAt,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return writeError("update user", err)
	}
	return expectOneRow(result, "update user")
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		user        entity.User
		lastLoginAt sql.NullTime
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&lastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		user.LastLoginAt = &t
	}
	return &user, nil
}
