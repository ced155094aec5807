// Package garage is the persistent store for customers, vehicles and
// their service history. It is the single owner and mutator of all three
// tables; dialogue code holds only conversation-scoped references.
package garage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var (
	ErrNotFound         = errors.New("no record for this vin")
	ErrDuplicateVIN     = errors.New("vin already registered")
	ErrCustomerNotFound = errors.New("customer does not exist")
	ErrVehicleNotFound  = errors.New("vehicle does not exist")
	ErrEmptyName        = errors.New("customer name is empty")
)

// Store wraps a bun SQLite handle. All operations are single-statement
// atomic; VIN uniqueness is enforced by the unique constraint, not by a
// check-then-insert.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp service records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (or creates) the SQLite database at dsn and prepares the
// schema. Use "file::memory:?cache=shared" for an in-memory store.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database dsn is required")
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := NewStore(bun.NewDB(sqldb, sqlitedialect.New()), opts...)
	if err := store.Init(ctx); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an existing bun handle. Init must be called before use
// unless the schema already exists.
func NewStore(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Init enables foreign keys and creates the three tables if absent.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := s.db.NewCreateTable().
		Model((*Customer)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create customers table: %w", err)
	}

	if _, err := s.db.NewCreateTable().
		Model((*Vehicle)(nil)).
		IfNotExists().
		ForeignKey(`("customer_id") REFERENCES "customers" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("create vehicles table: %w", err)
	}

	if _, err := s.db.NewCreateTable().
		Model((*ServiceRecord)(nil)).
		IfNotExists().
		ForeignKey(`("vehicle_id") REFERENCES "vehicles" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("create service_history table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LookupByVIN returns the vehicle with this exact VIN together with its
// owning customer; the rest of the system always needs them as a pair.
func (s *Store) LookupByVIN(ctx context.Context, vin string) (*Vehicle, *Customer, error) {
	vehicle := new(Vehicle)
	err := s.db.NewSelect().
		Model(vehicle).
		Where("vin = ?", vin).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("select vehicle by vin: %w", err)
	}

	customer := new(Customer)
	err = s.db.NewSelect().
		Model(customer).
		Where("id = ?", vehicle.CustomerID).
		Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("select owner of vehicle id=%d: %w", vehicle.ID, err)
	}

	return vehicle, customer, nil
}

// CreateCustomer inserts a customer and returns the assigned id. Phone
// and email may be empty.
func (s *Store) CreateCustomer(ctx context.Context, name, phone, email string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}

	customer := &Customer{
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if _, err := s.db.NewInsert().Model(customer).Exec(ctx); err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return customer.ID, nil
}

// CreateVehicle inserts a vehicle owned by customerID and returns the
// assigned id. A duplicate VIN yields ErrDuplicateVIN; an unknown
// customer yields ErrCustomerNotFound. Customers are never deleted, so
// the existence check cannot race with a delete.
func (s *Store) CreateVehicle(ctx context.Context, vin, make, model string, year int, customerID int64) (int64, error) {
	ok, err := s.db.NewSelect().
		Model((*Customer)(nil)).
		Where("id = ?", customerID).
		Exists(ctx)
	if err != nil {
		return 0, fmt.Errorf("check customer id=%d: %w", customerID, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: id=%d", ErrCustomerNotFound, customerID)
	}

	vehicle := &Vehicle{
		VIN:        vin,
		Make:       make,
		Model:      model,
		Year:       year,
		CustomerID: customerID,
	}
	if _, err := s.db.NewInsert().Model(vehicle).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateVIN, vin)
		}
		return 0, fmt.Errorf("insert vehicle: %w", err)
	}
	return vehicle.ID, nil
}

// AddServiceRecord schedules a service for vehicleID, stamped with the
// store's current date.
func (s *Store) AddServiceRecord(ctx context.Context, vehicleID int64, serviceType, description string) error {
	ok, err := s.db.NewSelect().
		Model((*Vehicle)(nil)).
		Where("id = ?", vehicleID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("check vehicle id=%d: %w", vehicleID, err)
	}
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrVehicleNotFound, vehicleID)
	}

	record := &ServiceRecord{
		VehicleID:   vehicleID,
		ServiceDate: s.serviceDate(),
		ServiceType: serviceType,
		Description: description,
	}
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return fmt.Errorf("insert service record: %w", err)
	}
	return nil
}

// ServiceHistory returns the vehicle's records in descending date order.
// A vehicle with no records yields an empty slice, not an error.
func (s *Store) ServiceHistory(ctx context.Context, vehicleID int64) ([]ServiceRecord, error) {
	records := make([]ServiceRecord, 0)
	err := s.db.NewSelect().
		Model(&records).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select service history: %w", err)
	}
	return records, nil
}

// serviceDate stamps records at day precision, matching the schema's
// date-only semantics.
func (s *Store) serviceDate() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
