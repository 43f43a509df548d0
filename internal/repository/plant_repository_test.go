package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAdjustStockAppendsMovement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plants SET quantity=quantity").
		WithArgs(int64(-3), "plant-1", int64(-3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT quantity FROM plants").
		WithArgs("plant-1").
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(17))
	mock.ExpectExec("INSERT INTO stock_movements").
		WithArgs(sqlmock.AnyArg(), "plant-1", int64(-3), int64(17), "damaged in transit", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPlantRepo(db)
	mv, err := repo.AdjustStock(context.Background(), "plant-1", -3, "damaged in transit", "user-1")
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if mv.ResultingQuantity != 17 || mv.Delta != -3 {
		t.Fatalf("unexpected movement: %+v", mv)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStockOverdraw(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// 10 on hand with 8 reserved: a -5 adjustment would strand reservations.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plants SET quantity=quantity").
		WithArgs(int64(-5), "plant-1", int64(-5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT quantity, reserved FROM plants").
		WithArgs("plant-1").
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "reserved"}).AddRow(10, 8))
	mock.ExpectRollback()

	repo := NewPlantRepo(db)
	_, err = repo.AdjustStock(context.Background(), "plant-1", -5, "shrinkage", "user-1")
	available, ok := IsInsufficientStock(err)
	if !ok {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if available != 2 {
		t.Fatalf("expected 2 available, got %d", available)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStockUnknownPlant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plants SET quantity=quantity").
		WithArgs(int64(5), "missing", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT quantity, reserved FROM plants").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "reserved"}))
	mock.ExpectRollback()

	repo := NewPlantRepo(db)
	if _, err := repo.AdjustStock(context.Background(), "missing", 5, "restock", "user-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
