package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

func orderRow(status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "order_number", "customer_name", "customer_email", "customer_phone",
		"customer_address", "items", "subtotal_cents", "shipping_cents", "total_cents",
		"notes", "order_type", "status", "created_at", "updated_at",
	}).AddRow("order-1", "GA-20260110-AB12", "Jane", "jane@nursery.test", "",
		"", []byte(`[]`), int64(5000), int64(0), int64(5000),
		"", "retail", status, now, now)
}

func TestCompleteCreditsCustomerOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepo(db)

	// First completion flips the credited flag and bumps the customer.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status=(.+) customer_credited=1").
		WithArgs(model.OrderCompleted, "order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT customer_email, total_cents FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"customer_email", "total_cents"}).
			AddRow("jane@nursery.test", int64(5000)))
	mock.ExpectExec("UPDATE customers SET total_orders=total_orders").
		WithArgs(int64(5000), "jane@nursery.test").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(orderRow(model.OrderCompleted))

	if _, err := repo.Complete(context.Background(), "order-1"); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	// Ship it back out.
	mock.ExpectExec("UPDATE orders SET status=").
		WithArgs(model.OrderShipped, "order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(orderRow(model.OrderShipped))

	if _, err := repo.UpdateStatus(context.Background(), "order-1", model.OrderShipped); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	// Second completion matches zero rows on the guarded update, so only
	// the status moves and the customer aggregates stay untouched.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status=(.+) customer_credited=1").
		WithArgs(model.OrderCompleted, "order-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE orders SET status=").
		WithArgs(model.OrderCompleted, "order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(orderRow(model.OrderCompleted))

	o, err := repo.Complete(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if o.Status != model.OrderCompleted {
		t.Fatalf("expected completed, got %s", o.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteOrderWithoutEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status=(.+) customer_credited=1").
		WithArgs(model.OrderCompleted, "order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT customer_email, total_cents FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"customer_email", "total_cents"}).
			AddRow("", int64(5000)))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs("order-1").
		WillReturnRows(orderRow(model.OrderCompleted))

	repo := NewOrderRepo(db)
	if _, err := repo.Complete(context.Background(), "order-1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCompleteUnknownOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status=(.+) customer_credited=1").
		WithArgs(model.OrderCompleted, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE orders SET status=").
		WithArgs(model.OrderCompleted, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM orders WHERE id=").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectRollback()

	repo := NewOrderRepo(db)
	if _, err := repo.Complete(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
