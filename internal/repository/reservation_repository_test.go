package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReserveSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plants SET reserved=reserved").
		WithArgs(int64(15), "plant-1", int64(15)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(sqlmock.AnyArg(), "plant-1", int64(15), "active", "order GA-20250101-0001", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	rec, err := repo.Reserve(context.Background(), "plant-1", 15, "order GA-20250101-0001", "user-1")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if rec.Quantity != 15 || rec.Status != "active" || rec.PlantID != "plant-1" {
		t.Fatalf("unexpected reservation: %+v", rec)
	}
	if rec.ID == "" {
		t.Fatal("expected generated reservation id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveInsufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// 20 on hand, 15 already reserved: a hold of 10 must fail and report the
	// 5 still bookable.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plants SET reserved=reserved").
		WithArgs(int64(10), "plant-1", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT quantity, reserved FROM plants").
		WithArgs("plant-1").
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "reserved"}).AddRow(20, 15))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	_, err = repo.Reserve(context.Background(), "plant-1", 10, "", "user-1")
	available, ok := IsInsufficientStock(err)
	if !ok {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if available != 5 {
		t.Fatalf("expected 5 available, got %d", available)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveUnknownPlant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plants SET reserved=reserved").
		WithArgs(int64(1), "missing", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT quantity, reserved FROM plants").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "reserved"}))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	if _, err := repo.Reserve(context.Background(), "missing", 1, "", "user-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelReleasesHold(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT plant_id, quantity FROM reservations").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"plant_id", "quantity"}).AddRow("plant-1", 15))
	mock.ExpectExec("UPDATE reservations SET status=").
		WithArgs("cancelled", "res-1", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE plants SET reserved=GREATEST\(reserved-\?, 0\)`).
		WithArgs(int64(15), "plant-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewReservationRepo(db)
	if err := repo.Cancel(context.Background(), "res-1"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Second cancel: the row still exists but is no longer active, so the
	// conditional update matches nothing and the plant counter stays put.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT plant_id, quantity FROM reservations").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"plant_id", "quantity"}).AddRow("plant-1", 15))
	mock.ExpectExec("UPDATE reservations SET status=").
		WithArgs("cancelled", "res-1", "active").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewReservationRepo(db)
	if err := repo.Cancel(context.Background(), "res-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double cancel, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
