package model

import "time"

// Export document statuses.  Draft is the initial state; the rest mirror
// the shipment paperwork workflow.
const (
	ExportDraft    = "draft"
	ExportPending  = "pending"
	ExportApproved = "approved"
	ExportShipped  = "shipped"
)

// ValidExportStatus reports whether the given string names a known export
// document status.
func ValidExportStatus(s string) bool {
	switch s {
	case ExportDraft, ExportPending, ExportApproved, ExportShipped:
		return true
	}
	return false
}

// ExportItem is one line of an export shipment manifest.
type ExportItem struct {
	Name     string `json:"name"`     // plant or product name
	Quantity int64  `json:"quantity"` // units in the shipment
}

// ExportDoc is a customs/compliance document for an outbound shipment,
// e.g. a packing list, phytosanitary certificate or commercial invoice.
type ExportDoc struct {
	ID                 string       `json:"id"`                  // export_docs.id
	DocNumber          string       `json:"doc_number"`          // export_docs.doc_number (EXP-YYYYMMDD-XXXX)
	OrderID            string       `json:"order_id"`            // export_docs.order_id (optional link to an order)
	DocType            string       `json:"doc_type"`            // export_docs.doc_type
	CustomerName       string       `json:"customer_name"`       // export_docs.customer_name
	DestinationCountry string       `json:"destination_country"` // export_docs.destination_country
	Items              []ExportItem `json:"items"`               // export_docs.items (JSON)
	TotalWeight        float64      `json:"total_weight"`        // export_docs.total_weight (kg)
	TotalBoxes         int64        `json:"total_boxes"`         // export_docs.total_boxes
	ShippingMethod     string       `json:"shipping_method"`     // export_docs.shipping_method (air/sea/road)
	Notes              string       `json:"notes"`               // export_docs.notes
	Status             string       `json:"status"`              // export_docs.status
	CreatedBy          string       `json:"created_by"`          // export_docs.created_by
	CreatedAt          time.Time    `json:"created_at"`          // export_docs.created_at
	UpdatedAt          time.Time    `json:"updated_at"`          // export_docs.updated_at
}
