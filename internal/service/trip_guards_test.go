package service

import (
	"errors"
	"testing"

	"fleet-service/internal/model"
)

func mileage(v int64) *int64 { return &v }

func TestValidateStart(t *testing.T) {
	tests := []struct {
		name          string
		tripStatus    model.TripStatus
		driverStatus  model.EmployeeStatus
		vehicleStatus model.VehicleStatus
		vehicleKM     int64
		input         StartTripInput
		want          error
	}{
		{
			name:          "scheduled trip departs",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			vehicleKM:     1000,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          nil,
		},
		{
			name:          "already in progress",
			tripStatus:    model.TripStatusInProgress,
			driverStatus:  model.EmployeeStatusOnTrip,
			vehicleStatus: model.VehicleStatusOnTrip,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          ErrInvalidStatus,
		},
		{
			name:          "canceled trip cannot depart",
			tripStatus:    model.TripStatusCanceled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          ErrInvalidStatus,
		},
		{
			name:          "checklist short one item",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist[:3]},
			want:          ErrChecklistIncomplete,
		},
		{
			name:          "post-trip items do not satisfy the pre-trip list",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PostTripChecklist},
			want:          ErrChecklistIncomplete,
		},
		{
			name:          "mileage missing",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Checklist: model.PreTripChecklist},
			want:          ErrMissingMileage,
		},
		{
			name:          "negative mileage",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Mileage: mileage(-5), Checklist: model.PreTripChecklist},
			want:          ErrInvalidInput,
		},
		{
			name:          "vehicle parked for maintenance",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusMaintenance,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          ErrConflict,
		},
		{
			name:          "vehicle out on another trip",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusOnTrip,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          ErrConflict,
		},
		{
			name:          "driver out on another trip",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusOnTrip,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          ErrConflict,
		},
		{
			name:          "driver on leave",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusOnLeave,
			vehicleStatus: model.VehicleStatusAvailable,
			input:         StartTripInput{Mileage: mileage(1000), Checklist: model.PreTripChecklist},
			want:          ErrConflict,
		},
		{
			name:          "start mileage below odometer",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			vehicleKM:     1200,
			input:         StartTripInput{Mileage: mileage(1100), Checklist: model.PreTripChecklist},
			want:          ErrMileageDecreased,
		},
		{
			name:          "start mileage above odometer is fine",
			tripStatus:    model.TripStatusScheduled,
			driverStatus:  model.EmployeeStatusAvailable,
			vehicleStatus: model.VehicleStatusAvailable,
			vehicleKM:     1200,
			input:         StartTripInput{Mileage: mileage(1250), Checklist: model.PreTripChecklist},
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := &model.Trip{Status: tt.tripStatus}
			driver := &model.Employee{Status: tt.driverStatus}
			vehicle := &model.Vehicle{Status: tt.vehicleStatus, Mileage: tt.vehicleKM}

			got := validateStart(trip, driver, vehicle, tt.input)
			if !errors.Is(got, tt.want) {
				t.Errorf("validateStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateRefueling(t *testing.T) {
	tests := []struct {
		status model.TripStatus
		want   error
	}{
		{model.TripStatusInProgress, nil},
		{model.TripStatusScheduled, ErrInvalidStatus},
		{model.TripStatusCompleted, ErrInvalidStatus},
		{model.TripStatusCanceled, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := validateRefueling(&model.Trip{Status: tt.status})
			if !errors.Is(got, tt.want) {
				t.Errorf("validateRefueling(%s) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestValidateFinish(t *testing.T) {
	tests := []struct {
		name         string
		tripStatus   model.TripStatus
		startMileage *int64
		input        FinishTripInput
		want         error
	}{
		{
			name:         "trip in progress completes",
			tripStatus:   model.TripStatusInProgress,
			startMileage: mileage(1000),
			input:        FinishTripInput{Mileage: mileage(1040), Checklist: model.PostTripChecklist},
			want:         nil,
		},
		{
			name:         "zero distance is allowed",
			tripStatus:   model.TripStatusInProgress,
			startMileage: mileage(1000),
			input:        FinishTripInput{Mileage: mileage(1000), Checklist: model.PostTripChecklist},
			want:         nil,
		},
		{
			name:       "scheduled trip cannot finish",
			tripStatus: model.TripStatusScheduled,
			input:      FinishTripInput{Mileage: mileage(1040), Checklist: model.PostTripChecklist},
			want:       ErrInvalidStatus,
		},
		{
			name:       "completed trip cannot finish twice",
			tripStatus: model.TripStatusCompleted,
			input:      FinishTripInput{Mileage: mileage(1040), Checklist: model.PostTripChecklist},
			want:       ErrInvalidStatus,
		},
		{
			name:         "checklist short one item",
			tripStatus:   model.TripStatusInProgress,
			startMileage: mileage(1000),
			input:        FinishTripInput{Mileage: mileage(1040), Checklist: model.PostTripChecklist[:3]},
			want:         ErrChecklistIncomplete,
		},
		{
			name:         "mileage missing",
			tripStatus:   model.TripStatusInProgress,
			startMileage: mileage(1000),
			input:        FinishTripInput{Checklist: model.PostTripChecklist},
			want:         ErrMissingMileage,
		},
		{
			name:         "end mileage below start",
			tripStatus:   model.TripStatusInProgress,
			startMileage: mileage(1000),
			input:        FinishTripInput{Mileage: mileage(990), Checklist: model.PostTripChecklist},
			want:         ErrMileageDecreased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := &model.Trip{Status: tt.tripStatus, StartMileage: tt.startMileage}

			got := validateFinish(trip, tt.input)
			if !errors.Is(got, tt.want) {
				t.Errorf("validateFinish() = %v, want %v", got, tt.want)
			}
		})
	}
}
