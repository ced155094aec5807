package garage

import (
	"time"

	"github.com/uptrace/bun"
)

// Customer is one identity record. Phone and Email are optional and left
// empty when the contact step could not extract them.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,notnull"`
	Phone string `bun:"phone,nullzero"`
	Email string `bun:"email,nullzero"`
}

// Vehicle belongs to exactly one customer. VIN is unique across all
// vehicles; dialogue-created vehicles carry a synthetic placeholder VIN.
type Vehicle struct {
	bun.BaseModel `bun:"table:vehicles,alias:v"`

	ID         int64  `bun:"id,pk,autoincrement"`
	VIN        string `bun:"vin,notnull,unique"`
	Make       string `bun:"make"`
	Model      string `bun:"model"`
	Year       int    `bun:"year"`
	CustomerID int64  `bun:"customer_id,notnull"`
}

// ServiceRecord is one scheduled or completed service event. The date is
// stamped by the store at insert time, never by the caller.
type ServiceRecord struct {
	bun.BaseModel `bun:"table:service_history,alias:sh"`

	ID          int64     `bun:"id,pk,autoincrement"`
	VehicleID   int64     `bun:"vehicle_id,notnull"`
	ServiceDate time.Time `bun:"service_date,notnull"`
	ServiceType string    `bun:"service_type"`
	Description string    `bun:"description"`
}
