package repository

import (
	"context"
	"database/sql"

	"github.com/realmcrm/backend/internal/entities"
)

type DashboardRepository struct {
	db *sql.DB
}

// DashboardStats are the four headline counters. Field names match the JSON
// the frontend consumes.
type DashboardStats struct {
	TotalLeads       int `json:"totalLeads"`
	NewLeadsWeek     int `json:"newLeadsWeek"`
	WonDeals         int `json:"wonDeals"`
	OverdueFollowups int `json:"overdueFollowups"`
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats runs four independent tenant-scoped counts. They are separate
// statements, not a snapshot: a lead created between two counts can appear in
// one and not another.
func (r *DashboardRepository) Stats(ctx context.Context, tenantID string) (*DashboardStats, error) {
	var stats DashboardStats

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE tenant_id = $1",
		tenantID).Scan(&stats.TotalLeads)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE tenant_id = $1 AND created_at >= CURRENT_TIMESTAMP - INTERVAL '7 days'",
		tenantID).Scan(&stats.NewLeadsWeek)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE tenant_id = $1 AND status = $2 AND updated_at >= CURRENT_TIMESTAMP - INTERVAL '30 days'",
		tenantID, entities.StatusWon).Scan(&stats.WonDeals)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE tenant_id = $1 AND next_followup_at < CURRENT_TIMESTAMP AND status NOT IN ($2, $3, $4)",
		tenantID, entities.StatusWon, entities.StatusLost, entities.StatusDisqualified).Scan(&stats.OverdueFollowups)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
