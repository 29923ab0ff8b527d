package service

import (
	"testing"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

func driverIn(sector uuid.UUID) model.Employee {
	return model.Employee{
		ID:       uuid.New(),
		FullName: "driver",
		CanDrive: true,
		SectorID: sector,
		Status:   model.EmployeeStatusAvailable,
	}
}

func vehicleIn(sector uuid.UUID) model.Vehicle {
	return model.Vehicle{
		ID:       uuid.New(),
		Model:    "truck",
		SectorID: sector,
		Status:   model.VehicleStatusAvailable,
	}
}

func TestFirstFitPolicy(t *testing.T) {
	sectorA := uuid.New()
	sectorB := uuid.New()
	req := model.VehicleRequest{ID: uuid.New(), SectorID: sectorB}

	drivers := []model.Employee{driverIn(sectorA), driverIn(sectorB)}
	vehicles := []model.Vehicle{vehicleIn(sectorA), vehicleIn(sectorB)}

	driver, vehicle, ok, reason := FirstFitPolicy{}.Pick(req, drivers, vehicles)
	if !ok {
		t.Fatalf("expected assignment, got deferral: %s", reason)
	}
	// First fit is sector-blind: store order wins.
	if driver.ID != drivers[0].ID {
		t.Errorf("expected first driver, got %s", driver.ID)
	}
	if vehicle.ID != vehicles[0].ID {
		t.Errorf("expected first vehicle, got %s", vehicle.ID)
	}
}

func TestFirstFitPolicyDefers(t *testing.T) {
	req := model.VehicleRequest{ID: uuid.New(), SectorID: uuid.New()}
	vehicles := []model.Vehicle{vehicleIn(req.SectorID)}

	_, _, ok, reason := FirstFitPolicy{}.Pick(req, nil, vehicles)
	if ok {
		t.Fatalf("expected deferral with no drivers")
	}
	if reason != DeferredNoDriver {
		t.Errorf("expected %q, got %q", DeferredNoDriver, reason)
	}

	drivers := []model.Employee{driverIn(req.SectorID)}
	_, _, ok, reason = FirstFitPolicy{}.Pick(req, drivers, nil)
	if ok {
		t.Fatalf("expected deferral with no vehicles")
	}
	if reason != DeferredNoVehicle {
		t.Errorf("expected %q, got %q", DeferredNoVehicle, reason)
	}
}

func TestSectorAffinityPolicy(t *testing.T) {
	sectorA := uuid.New()
	sectorB := uuid.New()
	req := model.VehicleRequest{ID: uuid.New(), SectorID: sectorB}

	drivers := []model.Employee{driverIn(sectorA), driverIn(sectorB)}
	vehicles := []model.Vehicle{vehicleIn(sectorA), vehicleIn(sectorB)}

	driver, vehicle, ok, _ := SectorAffinityPolicy{}.Pick(req, drivers, vehicles)
	if !ok {
		t.Fatalf("expected assignment")
	}
	if driver.SectorID != sectorB {
		t.Errorf("expected driver from request sector")
	}
	if vehicle.SectorID != sectorB {
		t.Errorf("expected vehicle from request sector")
	}
}

func TestSectorAffinityFallsBack(t *testing.T) {
	sectorA := uuid.New()
	req := model.VehicleRequest{ID: uuid.New(), SectorID: uuid.New()}

	drivers := []model.Employee{driverIn(sectorA)}
	vehicles := []model.Vehicle{vehicleIn(sectorA)}

	driver, vehicle, ok, _ := SectorAffinityPolicy{}.Pick(req, drivers, vehicles)
	if !ok {
		t.Fatalf("expected fallback assignment")
	}
	if driver.ID != drivers[0].ID || vehicle.ID != vehicles[0].ID {
		t.Errorf("expected first-fit fallback when sector has no candidates")
	}
}

func TestPolicyFromName(t *testing.T) {
	if got := PolicyFromName("sector_affinity").Name(); got != "sector_affinity" {
		t.Errorf("expected sector_affinity, got %s", got)
	}
	if got := PolicyFromName("first_fit").Name(); got != "first_fit" {
		t.Errorf("expected first_fit, got %s", got)
	}
	if got := PolicyFromName("").Name(); got != "first_fit" {
		t.Errorf("expected default first_fit, got %s", got)
	}
}
