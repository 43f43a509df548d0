package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCommissionCents(t *testing.T) {
	cases := []struct {
		value int64
		rate  float64
		want  int64
	}{
		{100000, 10, 10000}, // $1000 at 10% -> $100
		{999, 10, 100},      // rounds 99.9 up
		{50, 3.3, 2},        // rounds 1.65 up
		{100, 12.5, 13},     // rounds 12.5 up
		{1, 10, 0},          // rounds 0.1 down
	}
	for _, c := range cases {
		if got := CommissionCents(c.value, c.rate); got != c.want {
			t.Fatalf("CommissionCents(%d, %v) = %d, want %d", c.value, c.rate, got, c.want)
		}
	}
}

func TestRecordDeal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT commission_rate FROM partners").
		WithArgs("partner-1").
		WillReturnRows(sqlmock.NewRows([]string{"commission_rate"}).AddRow(10.0))
	mock.ExpectExec("INSERT INTO deals").
		WithArgs(sqlmock.AnyArg(), "partner-1", "Garden revamp", "ACME", int64(100000), 10.0, int64(10000), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE partners SET pending_commission_cents=pending_commission_cents").
		WithArgs(int64(10000), int64(100000), "partner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewDealRepo(db)
	d, err := repo.Record(context.Background(), "partner-1", "Garden revamp", "ACME", 100000)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if d.CommissionCents != 10000 || d.CommissionRate != 10 || d.Status != "pending" {
		t.Fatalf("unexpected deal: %+v", d)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordDealDefaultsRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT commission_rate FROM partners").
		WithArgs("partner-1").
		WillReturnRows(sqlmock.NewRows([]string{"commission_rate"}).AddRow(0.0))
	mock.ExpectExec("INSERT INTO deals").
		WithArgs(sqlmock.AnyArg(), "partner-1", "Deal", "", int64(5000), 10.0, int64(500), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE partners SET pending_commission_cents=pending_commission_cents").
		WithArgs(int64(500), int64(5000), "partner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewDealRepo(db)
	d, err := repo.Record(context.Background(), "partner-1", "Deal", "", 5000)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if d.CommissionRate != 10 {
		t.Fatalf("expected default rate 10, got %v", d.CommissionRate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordDealUnknownPartner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT commission_rate FROM partners").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"commission_rate"}))
	mock.ExpectRollback()

	repo := NewDealRepo(db)
	if _, err := repo.Record(context.Background(), "missing", "Deal", "", 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteDeal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE deals SET status=").
		WithArgs("completed", "admin-1", "deal-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM deals WHERE id=").
		WithArgs("deal-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "partner_id", "title", "client_name", "value_cents", "commission_rate",
			"commission_cents", "status", "completed_by", "completed_at", "created_at", "updated_at",
		}).AddRow("deal-1", "partner-1", "Garden revamp", "ACME", 100000, 10.0,
			10000, "completed", "admin-1", now, now, now))
	mock.ExpectExec("UPDATE partners SET pending_commission_cents=pending_commission_cents-").
		WithArgs(int64(10000), int64(10000), "partner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewDealRepo(db)
	d, err := repo.Complete(context.Background(), "deal-1", "admin-1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if d.Status != "completed" {
		t.Fatalf("expected completed, got %s", d.Status)
	}
	if d.CompletedBy == nil || *d.CompletedBy != "admin-1" {
		t.Fatalf("expected completed_by admin-1, got %v", d.CompletedBy)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteDealTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The deal exists but is no longer pending: the CAS matches nothing and
	// no balance moves.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE deals SET status=").
		WithArgs("completed", "admin-1", "deal-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM deals").
		WithArgs("deal-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))
	mock.ExpectRollback()

	repo := NewDealRepo(db)
	if _, err := repo.Complete(context.Background(), "deal-1", "admin-1"); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteDealMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE deals SET status=").
		WithArgs("completed", "admin-1", "missing", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM deals").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	repo := NewDealRepo(db)
	if _, err := repo.Complete(context.Background(), "missing", "admin-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
