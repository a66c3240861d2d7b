package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/realmcrm/backend/internal/entities"
)

func newActivityRepo(t *testing.T) (*ActivityRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewActivityRepository(db), mock
}

func activityRowColumns() []string {
	return []string{"id", "tenant_id", "lead_id", "user_id", "type", "result", "comment", "created_at", "user_name"}
}

func TestListByLeadJoinsAuthorNewestFirst(t *testing.T) {
	repo, mock := newActivityRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(activityRowColumns()).
		AddRow(2, "t1", 9, 7, "call", "Answered", nil, now, "Agent One").
		AddRow(1, "t1", 9, 7, "note", nil, "first touch", now.Add(-time.Hour), "Agent One")

	mock.ExpectQuery(`FROM activities a LEFT JOIN users u ON a\.user_id = u\.id WHERE a\.lead_id = \$1 AND a\.tenant_id = \$2 ORDER BY a\.created_at DESC`).
		WithArgs(9, "t1").
		WillReturnRows(rows)

	activities, err := repo.ListByLead(context.Background(), "t1", 9)
	if err != nil {
		t.Fatalf("ListByLead: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}
	if activities[0].ID != 2 {
		t.Fatalf("expected newest first, got id %d", activities[0].ID)
	}
	if activities[0].UserName == nil || *activities[0].UserName != "Agent One" {
		t.Fatalf("user_name not joined: %+v", activities[0].UserName)
	}
	if activities[1].Result != nil {
		t.Fatalf("null result should scan to nil, got %v", *activities[1].Result)
	}
}

func TestCreateActivityReturnsGeneratedID(t *testing.T) {
	repo, mock := newActivityRepo(t)

	result := "Answered"
	mock.ExpectQuery(`INSERT INTO activities`).
		WithArgs("t1", 9, 7, "call", "Answered", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	activity := &entities.Activity{
		TenantID: "t1",
		LeadID:   9,
		UserID:   7,
		Type:     entities.ActivityCall,
		Result:   &result,
	}
	if err := repo.Create(context.Background(), activity); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if activity.ID != 12 {
		t.Fatalf("expected generated id 12, got %d", activity.ID)
	}
}

func TestGetActivityByIDMissingIsNotFound(t *testing.T) {
	repo, mock := newActivityRepo(t)

	mock.ExpectQuery(`FROM activities a LEFT JOIN users u`).
		WithArgs(99, "t1").
		WillReturnRows(sqlmock.NewRows(activityRowColumns()))

	_, err := repo.GetByID(context.Background(), "t1", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
