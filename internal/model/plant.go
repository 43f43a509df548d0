package model

import "time"

// Plant describes a stock item in the nursery inventory.  Quantity is the
// on-hand count; Reserved is the committed-but-unfulfilled count held by
// active reservations.  The bookable amount exposed to reservation requests
// is Quantity - Reserved, and 0 <= Reserved <= Quantity must hold after
// every mutation.
//
// Fields:
//  ID             – uuid primary key.
//  SKU            – generated stock keeping unit (GA-CAT-XXXXXX).
//  Name           – display name of the plant.
//  ScientificName – botanical name.
//  Category       – catalog category (e.g. "Indoor Plants").
//  GrowthStage    – seedling, juvenile, mature.
//  PriceCents     – retail price in cents.
//  CostCents      – acquisition cost in cents.
//  Quantity       – units on hand.
//  Reserved       – units held by active reservations.
//  MinStock       – low-stock alert threshold.
//  Location       – physical location (greenhouse, lot).
//  Unit           – sale unit (piece, tray, pot).
//  IsFeatured     – highlighted on the public catalog.
//  IsAvailable    – visible on the public catalog.
type Plant struct {
	ID             string    `json:"id"`              // plants.id
	SKU            string    `json:"sku"`             // plants.sku
	Name           string    `json:"name"`            // plants.name
	ScientificName string    `json:"scientific_name"` // plants.scientific_name
	Category       string    `json:"category"`        // plants.category
	GrowthStage    string    `json:"growth_stage"`    // plants.growth_stage
	Description    string    `json:"description"`     // plants.description
	PriceCents     int64     `json:"price_cents"`     // plants.price_cents
	CostCents      int64     `json:"cost_cents"`      // plants.cost_cents
	Quantity       int64     `json:"quantity"`        // plants.quantity
	Reserved       int64     `json:"reserved"`        // plants.reserved
	MinStock       int64     `json:"min_stock"`       // plants.min_stock
	Location       string    `json:"location"`        // plants.location
	Unit           string    `json:"unit"`            // plants.unit
	IsFeatured     bool      `json:"is_featured"`     // plants.is_featured
	IsAvailable    bool      `json:"is_available"`    // plants.is_available
	CreatedAt      time.Time `json:"created_at"`      // plants.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // plants.updated_at
}

// Available returns the bookable quantity.
func (p Plant) Available() int64 { return p.Quantity - p.Reserved }

// Reservation statuses.
const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

// Reservation is a hold against a plant's available quantity.  It weakly
// references the plant by id; cancelling a reservation releases the held
// units back to the plant's bookable pool.
type Reservation struct {
	ID        string    `json:"id"`         // reservations.id
	PlantID   string    `json:"plant_id"`   // reservations.plant_id
	Quantity  int64     `json:"quantity"`   // reservations.quantity
	Status    string    `json:"status"`     // reservations.status
	Reference string    `json:"reference"`  // reservations.reference (free-form: order, project)
	CreatedBy string    `json:"created_by"` // reservations.created_by
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
	UpdatedAt time.Time `json:"updated_at"` // reservations.updated_at
}

// StockMovement is an immutable audit record appended for every direct stock
// adjustment.  Rows are never edited or deleted.
type StockMovement struct {
	ID                string    `json:"id"`                 // stock_movements.id
	PlantID           string    `json:"plant_id"`           // stock_movements.plant_id
	Delta             int64     `json:"delta"`              // stock_movements.delta
	ResultingQuantity int64     `json:"resulting_quantity"` // stock_movements.resulting_quantity
	Reason            string    `json:"reason"`             // stock_movements.reason
	ActorID           string    `json:"actor_id"`           // stock_movements.actor_id
	CreatedAt         time.Time `json:"created_at"`         // stock_movements.created_at
}
