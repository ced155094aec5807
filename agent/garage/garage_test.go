package garage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := Open(context.Background(), "file:"+name+"?mode=memory&cache=shared", opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndLookupRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	customerID, err := store.CreateCustomer(ctx, "Ayşe Yılmaz", "05321234567", "ayse@example.com")
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if customerID <= 0 {
		t.Fatalf("customer id = %d, want > 0", customerID)
	}

	vehicleID, err := store.CreateVehicle(ctx, "1HGCM82633A004352", "Toyota", "Corolla", 2019, customerID)
	if err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}
	if vehicleID <= 0 {
		t.Fatalf("vehicle id = %d, want > 0", vehicleID)
	}

	vehicle, customer, err := store.LookupByVIN(ctx, "1HGCM82633A004352")
	if err != nil {
		t.Fatalf("LookupByVIN() error = %v", err)
	}
	if vehicle.Make != "Toyota" || vehicle.Model != "Corolla" || vehicle.Year != 2019 {
		t.Fatalf("vehicle = %+v", vehicle)
	}
	if customer.Name != "Ayşe Yılmaz" || customer.Email != "ayse@example.com" {
		t.Fatalf("customer = %+v", customer)
	}
}

func TestLookupUnknownVIN(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, _, err := store.LookupByVIN(context.Background(), "WVWZZZ1JZXW000001")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("LookupByVIN() error = %v, want ErrNotFound", err)
	}
}

func TestCreateCustomerRequiresName(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.CreateCustomer(context.Background(), "   ", "", "")
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("CreateCustomer() error = %v, want ErrEmptyName", err)
	}
}

func TestCreateVehicleDuplicateVIN(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	customerID, err := store.CreateCustomer(ctx, "Mehmet Demir", "", "")
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	if _, err := store.CreateVehicle(ctx, "TEMP0000000002019", "Toyota", "Corolla", 2019, customerID); err != nil {
		t.Fatalf("first CreateVehicle() error = %v", err)
	}

	_, err = store.CreateVehicle(ctx, "TEMP0000000002019", "Honda", "Civic", 2019, customerID)
	if !errors.Is(err, ErrDuplicateVIN) {
		t.Fatalf("second CreateVehicle() error = %v, want ErrDuplicateVIN", err)
	}

	// The first record must have survived untouched.
	vehicle, _, err := store.LookupByVIN(ctx, "TEMP0000000002019")
	if err != nil {
		t.Fatalf("LookupByVIN() error = %v", err)
	}
	if vehicle.Make != "Toyota" {
		t.Fatalf("surviving vehicle make = %q, want Toyota", vehicle.Make)
	}
}

func TestCreateVehicleUnknownCustomer(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.CreateVehicle(context.Background(), "1HGCM82633A004352", "Toyota", "Corolla", 2019, 999)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("CreateVehicle() error = %v, want ErrCustomerNotFound", err)
	}
}

func TestServiceHistoryOrderingAndEmpty(t *testing.T) {
	t.Parallel()

	current := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store := newTestStore(t, WithClock(func() time.Time { return current }))
	ctx := context.Background()

	customerID, err := store.CreateCustomer(ctx, "Ayşe Yılmaz", "", "")
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	vehicleID, err := store.CreateVehicle(ctx, "1HGCM82633A004352", "Toyota", "Corolla", 2019, customerID)
	if err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}

	history, err := store.ServiceHistory(ctx, vehicleID)
	if err != nil {
		t.Fatalf("ServiceHistory() on empty error = %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d records", len(history))
	}

	for _, serviceType := range []string{"Yağ Değişimi", "Fren Bakımı", "Genel Bakım"} {
		if err := store.AddServiceRecord(ctx, vehicleID, serviceType, "randevu"); err != nil {
			t.Fatalf("AddServiceRecord(%s) error = %v", serviceType, err)
		}
		current = current.AddDate(0, 0, 7)
	}

	history, err = store.ServiceHistory(ctx, vehicleID)
	if err != nil {
		t.Fatalf("ServiceHistory() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].ServiceDate.After(history[i-1].ServiceDate) {
			t.Fatalf("history not descending: %v before %v",
				history[i-1].ServiceDate, history[i].ServiceDate)
		}
	}
	if history[0].ServiceType != "Genel Bakım" {
		t.Fatalf("newest record = %q, want Genel Bakım", history[0].ServiceType)
	}
}

func TestAddServiceRecordUnknownVehicle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.AddServiceRecord(context.Background(), 42, "Yağ Değişimi", "x")
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("AddServiceRecord() error = %v, want ErrVehicleNotFound", err)
	}
}
