package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/realmcrm/backend/internal/entities"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `l.id, l.tenant_id, l.created_by, l.assigned_to, l.full_name, l.phone, l.email, l.source, l.interest_type, l.status, l.budget_min, l.budget_max, l.preferred_location, l.notes, l.next_followup_at, l.created_at, l.updated_at`

// LeadFilter holds the optional list filters. Zero values mean "no filter".
type LeadFilter struct {
	Status     string
	AssignedTo int
	Search     string
}

// LeadPatch is a partial update: only non-nil fields reach the UPDATE
// statement. Budget fills both budget_min and budget_max.
type LeadPatch struct {
	FullName          *string
	Phone             *string
	Email             *string
	Status            *string
	AssignedTo        *int
	Notes             *string
	NextFollowupAt    *time.Time
	Budget            *float64
	PreferredLocation *string
}

func (p LeadPatch) Empty() bool {
	return p.FullName == nil && p.Phone == nil && p.Email == nil &&
		p.Status == nil && p.AssignedTo == nil && p.Notes == nil &&
		p.NextFollowupAt == nil && p.Budget == nil && p.PreferredLocation == nil
}

// List returns the tenant's leads newest first. Filters are appended as
// predicate+parameter pairs; values never enter the query text.
func (r *LeadRepository) List(ctx context.Context, tenantID string, filter LeadFilter) ([]entities.Lead, error) {
	conds := []string{"l.tenant_id = $1"}
	args := []any{tenantID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("l.status = $%d", len(args)))
	}
	if filter.AssignedTo != 0 {
		args = append(args, filter.AssignedTo)
		conds = append(conds, fmt.Sprintf("l.assigned_to = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(l.full_name ILIKE $%d OR l.phone ILIKE $%d OR l.email ILIKE $%d)", n, n, n))
	}

	query := "SELECT " + leadColumns + ", u.name AS assigned_name " +
		"FROM leads l LEFT JOIN users u ON l.assigned_to = u.id " +
		"WHERE " + strings.Join(conds, " AND ") + " ORDER BY l.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entities.Lead{}
	for rows.Next() {
		var l entities.Lead
		err := rows.Scan(&l.ID, &l.TenantID, &l.CreatedBy, &l.AssignedTo, &l.FullName,
			&l.Phone, &l.Email, &l.Source, &l.InterestType, &l.Status,
			&l.BudgetMin, &l.BudgetMax, &l.PreferredLocation, &l.Notes,
			&l.NextFollowupAt, &l.CreatedAt, &l.UpdatedAt, &l.AssignedName)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// GetByID is tenant-scoped: a lead that exists under another tenant reads as
// ErrNotFound.
func (r *LeadRepository) GetByID(ctx context.Context, tenantID string, id int) (*entities.Lead, error) {
	var l entities.Lead
	err := r.db.QueryRowContext(ctx,
		"SELECT "+leadColumns+" FROM leads l WHERE l.id = $1 AND l.tenant_id = $2",
		id, tenantID).Scan(&l.ID, &l.TenantID, &l.CreatedBy, &l.AssignedTo, &l.FullName,
		&l.Phone, &l.Email, &l.Source, &l.InterestType, &l.Status,
		&l.BudgetMin, &l.BudgetMax, &l.PreferredLocation, &l.Notes,
		&l.NextFollowupAt, &l.CreatedAt, &l.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO leads (tenant_id, created_by, assigned_to, full_name, phone, email, source, interest_type, status, budget_min, budget_max, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		lead.TenantID, lead.CreatedBy, lead.AssignedTo, lead.FullName, lead.Phone,
		lead.Email, lead.Source, lead.InterestType, lead.Status,
		lead.BudgetMin, lead.BudgetMax, lead.Notes).Scan(&lead.ID)
}

// Update applies a partial patch. Callers must verify tenant ownership first;
// the WHERE clause still carries the tenant id so a concurrent cross-tenant
// write can never land.
func (r *LeadRepository) Update(ctx context.Context, tenantID string, id int, patch LeadPatch) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.AssignedTo != nil {
		add("assigned_to", *patch.AssignedTo)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.NextFollowupAt != nil {
		add("next_followup_at", *patch.NextFollowupAt)
	}
	if patch.Budget != nil {
		add("budget_min", *patch.Budget)
		add("budget_max", *patch.Budget)
	}
	if patch.PreferredLocation != nil {
		add("preferred_location", *patch.PreferredLocation)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id, tenantID)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d AND tenant_id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
