package repository

import (
	"context"
	"database/sql"

	"github.com/realmcrm/backend/internal/entities"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `a.id, a.tenant_id, a.lead_id, a.user_id, a.type, a.result, a.comment, a.created_at`

// ListByLead returns a lead's activities newest first, with the authoring
// user's display name joined in.
func (r *ActivityRepository) ListByLead(ctx context.Context, tenantID string, leadID int) ([]entities.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+activityColumns+", u.name AS user_name FROM activities a LEFT JOIN users u ON a.user_id = u.id "+
			"WHERE a.lead_id = $1 AND a.tenant_id = $2 ORDER BY a.created_at DESC",
		leadID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []entities.Activity{}
	for rows.Next() {
		var a entities.Activity
		err := rows.Scan(&a.ID, &a.TenantID, &a.LeadID, &a.UserID, &a.Type,
			&a.Result, &a.Comment, &a.CreatedAt, &a.UserName)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entities.Activity) error {
	return r.db.QueryRowContext(ctx,
		"INSERT INTO activities (tenant_id, lead_id, user_id, type, result, comment) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		activity.TenantID, activity.LeadID, activity.UserID, activity.Type,
		activity.Result, activity.Comment).Scan(&activity.ID)
}

// GetByID re-reads a created activity with the author name joined, so the
// create response reflects database-computed defaults.
func (r *ActivityRepository) GetByID(ctx context.Context, tenantID string, id int) (*entities.Activity, error) {
	var a entities.Activity
	err := r.db.QueryRowContext(ctx,
		"SELECT "+activityColumns+", u.name AS user_name FROM activities a LEFT JOIN users u ON a.user_id = u.id "+
			"WHERE a.id = $1 AND a.tenant_id = $2",
		id, tenantID).Scan(&a.ID, &a.TenantID, &a.LeadID, &a.UserID, &a.Type,
		&a.Result, &a.Comment, &a.CreatedAt, &a.UserName)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
