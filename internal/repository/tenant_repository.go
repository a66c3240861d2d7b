package repository

import (
	"context"
	"database/sql"

	"github.com/realmcrm/backend/internal/entities"
)

type TenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *entities.Tenant) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tenants (id, name, subscription_status) VALUES ($1, $2, $3)",
		tenant.ID, tenant.Name, tenant.SubscriptionStatus)
	return err
}
