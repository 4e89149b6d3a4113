package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

const pgUniqueViolation = "23505"

// UserPgRepository — Postgres хранилище учетных записей
type UserPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewUserPgRepository создает новый репозиторий
func NewUserPgRepository(pool *pgxpool.Pool, log *logger.Logger) *UserPgRepository {
	return &UserPgRepository{
		pool: pool,
		log:  log,
	}
}

// Create сохраняет пользователя; для водителя одной транзакцией
// заводит и профиль delivery_boy
func (r *UserPgRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Откатываем, если не закоммитили
	}()

	userQuery := `
		INSERT INTO users (id, name, phone, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, userQuery,
		user.ID, user.Name, user.Phone, user.Email, user.PasswordHash,
		user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", domain.ErrPhoneExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	var profileID string
	if user.Role == domain.RoleDriver {
		profileQuery := `
			INSERT INTO delivery_boys (user_id, name, phone, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, profileQuery, user.ID, user.Name, user.Phone, user.Status).Scan(&profileID); err != nil {
			return "", fmt.Errorf("insert delivery boy profile: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	return profileID, nil
}

// FindByID находит пользователя
func (r *UserPgRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id, name, phone, email, password_hash, role, status, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Name, &user.Phone, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}

	return user, nil
}

// List возвращает пользователей по фильтру
func (r *UserPgRepository) List(ctx context.Context, filter out.UserListFilter) ([]*domain.User, int, error) {
	where := `WHERE true`
	args := []any{}

	if filter.Role != "" {
		args = append(args, filter.Role)
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `
		SELECT id, name, phone, email, password_hash, role, status, created_at, updated_at
		FROM users ` + where + ` ORDER BY created_at DESC`
	if filter.PageLimit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageLimit, (page-1)*filter.PageLimit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(
			&user.ID, &user.Name, &user.Phone, &user.Email, &user.PasswordHash,
			&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

// Delete удаляет пользователя; профиль водителя уходит каскадом (FK)
func (r *UserPgRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
