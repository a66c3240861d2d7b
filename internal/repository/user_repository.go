package repository

import (
	"context"
	"database/sql"

	"github.com/realmcrm/backend/internal/entities"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.db.QueryRowContext(ctx,
		"INSERT INTO users (tenant_id, name, email, password_hash, role, status) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		user.TenantID, user.Name, user.Email, user.PasswordHash, user.Role, user.Status).Scan(&user.ID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, tenant_id, name, email, password_hash, role, status FROM users WHERE email = $1",
		email).Scan(&user.ID, &user.TenantID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Status)

	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, tenant_id, name, email, password_hash, role, status FROM users WHERE id = $1",
		id).Scan(&user.ID, &user.TenantID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByTenant returns the tenant's users for assignment pickers. Password
// hashes are selected but never serialized (json:"-").
func (r *UserRepository) ListByTenant(ctx context.Context, tenantID string) ([]entities.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, tenant_id, name, email, role, status FROM users WHERE tenant_id = $1 ORDER BY name",
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []entities.User{}
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Role, &u.Status); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
