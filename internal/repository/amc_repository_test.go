package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func contractRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "contract_number", "client_name", "client_email", "client_phone", "service_type",
		"frequency", "amount_cents", "start_date", "next_billing_date", "property_address",
		"services_included", "notes", "status", "visits_completed", "created_by", "created_at", "updated_at",
	})
}

func TestAdvanceBillingRollsForward(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM amc_contracts WHERE id=").
		WithArgs("amc-1").
		WillReturnRows(contractRows().AddRow(
			"amc-1", "AMC-20250101-AAAA", "ACME", "ops@acme.test", "", "garden care",
			"monthly", 25000, "2025-01-15", "2025-02-15", "1 Main St",
			[]byte(`["mowing","pruning"]`), "", "active", 0, "admin-1", now, now))
	mock.ExpectExec("UPDATE amc_contracts SET next_billing_date=").
		WithArgs("2025-03-15", "amc-1", "2025-02-15").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM amc_contracts WHERE id=").
		WithArgs("amc-1").
		WillReturnRows(contractRows().AddRow(
			"amc-1", "AMC-20250101-AAAA", "ACME", "ops@acme.test", "", "garden care",
			"monthly", 25000, "2025-01-15", "2025-03-15", "1 Main St",
			[]byte(`["mowing","pruning"]`), "", "active", 1, "admin-1", now, now))

	repo := NewAMCRepo(db)
	c, err := repo.AdvanceBilling(context.Background(), "amc-1")
	if err != nil {
		t.Fatalf("AdvanceBilling: %v", err)
	}
	if c.NextBillingDate != "2025-03-15" {
		t.Fatalf("expected next billing 2025-03-15, got %s", c.NextBillingDate)
	}
	if c.VisitsCompleted != 1 {
		t.Fatalf("expected 1 visit, got %d", c.VisitsCompleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvanceBillingPausedContract(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM amc_contracts WHERE id=").
		WithArgs("amc-1").
		WillReturnRows(contractRows().AddRow(
			"amc-1", "AMC-20250101-AAAA", "ACME", "", "", "garden care",
			"monthly", 25000, "2025-01-15", "2025-02-15", "",
			[]byte(`[]`), "", "paused", 0, "admin-1", now, now))

	repo := NewAMCRepo(db)
	if _, err := repo.AdvanceBilling(context.Background(), "amc-1"); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
