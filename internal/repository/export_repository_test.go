package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"
)

func exportRow(status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "doc_number", "order_id", "doc_type", "customer_name", "destination_country",
		"items", "total_weight", "total_boxes", "shipping_method", "notes", "status",
		"created_by", "created_at", "updated_at",
	}).AddRow("export-1", "EXP-20260110-AB12", "", "phytosanitary", "ACME Gardens",
		"Netherlands", []byte(`[{"name":"Roses","quantity":1000}]`), 250.5, int64(50),
		"air", "", status, "admin-1", now, now)
}

func TestCreateExportDocDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO export_docs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "", "phytosanitary", "ACME Gardens",
			"Netherlands", []byte(`[{"name":"Roses","quantity":1000}]`), 250.5, int64(50),
			"air", "", "draft", "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc := model.ExportDoc{
		DocNumber:          utils.DocNumber("EXP"),
		DocType:            "phytosanitary",
		CustomerName:       "ACME Gardens",
		DestinationCountry: "Netherlands",
		Items:              []model.ExportItem{{Name: "Roses", Quantity: 1000}},
		TotalWeight:        250.5,
		TotalBoxes:         50,
		ShippingMethod:     "air",
		CreatedBy:          "admin-1",
	}
	repo := NewExportRepo(db)
	if err := repo.Create(context.Background(), &doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.Status != model.ExportDraft {
		t.Fatalf("expected draft status, got %s", doc.Status)
	}
	if !strings.HasPrefix(doc.DocNumber, "EXP-") {
		t.Fatalf("unexpected doc number %s", doc.DocNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateExportStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE export_docs SET status=").
		WithArgs("approved", "export-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM export_docs WHERE id=").
		WithArgs("export-1").
		WillReturnRows(exportRow("approved"))

	repo := NewExportRepo(db)
	d, err := repo.UpdateStatus(context.Background(), "export-1", "approved")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if d.Status != "approved" {
		t.Fatalf("expected approved, got %s", d.Status)
	}
	if len(d.Items) != 1 || d.Items[0].Quantity != 1000 {
		t.Fatalf("manifest not decoded: %+v", d.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateExportStatusMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE export_docs SET status=").
		WithArgs("shipped", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM export_docs WHERE id=").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewExportRepo(db)
	if _, err := repo.UpdateStatus(context.Background(), "ghost", "shipped"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
