package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresClient struct {
	DB *sql.DB
}

// NewPostgresClient opens a long-lived pooled connection shared across
// requests. Statements acquire and release connections per operation.
func NewPostgresClient(connString string) (*PostgresClient, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Pool configuration
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{DB: db}

	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate() error {
	ctx := context.Background()

	// Tenants Table
	_, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tenants (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			subscription_status VARCHAR(20) DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create tenants table: %w", err)
	}

	// Users Table
	_, err = p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			tenant_id VARCHAR(36) NOT NULL REFERENCES tenants(id),
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'employee',
			status VARCHAR(20) DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	// Leads Table
	_, err = p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS leads (
			id SERIAL PRIMARY KEY,
			tenant_id VARCHAR(36) NOT NULL REFERENCES tenants(id),
			created_by INT NOT NULL REFERENCES users(id),
			assigned_to INT REFERENCES users(id),
			full_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			email VARCHAR(255),
			source VARCHAR(50),
			interest_type VARCHAR(50),
			status VARCHAR(30) NOT NULL DEFAULT 'New',
			budget_min NUMERIC(15, 2) DEFAULT 0,
			budget_max NUMERIC(15, 2) DEFAULT 0,
			preferred_location VARCHAR(255),
			notes TEXT,
			next_followup_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create leads table: %w", err)
	}

	// Activities Table (append-only)
	_, err = p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activities (
			id SERIAL PRIMARY KEY,
			tenant_id VARCHAR(36) NOT NULL REFERENCES tenants(id),
			lead_id INT NOT NULL REFERENCES leads(id),
			user_id INT NOT NULL REFERENCES users(id),
			type VARCHAR(20) NOT NULL,
			result VARCHAR(100),
			comment TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create activities table: %w", err)
	}

	// Every read path filters by tenant_id first
	p.DB.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_users_tenant ON users (tenant_id);")
	p.DB.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_leads_tenant_status ON leads (tenant_id, status);")
	p.DB.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_leads_tenant_created ON leads (tenant_id, created_at DESC);")
	p.DB.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_activities_lead_created ON activities (lead_id, created_at DESC);")

	return nil
}

func (p *PostgresClient) Close() {
	p.DB.Close()
}
