package lifecycle

import (
	"testing"

	"fleet-service/internal/model"
)

func TestTripTransitions(t *testing.T) {
	cases := []struct {
		from    model.TripStatus
		event   string
		want    model.TripStatus
		allowed bool
	}{
		{model.TripStatusScheduled, EventStart, model.TripStatusInProgress, true},
		{model.TripStatusScheduled, EventCancel, model.TripStatusCanceled, true},
		{model.TripStatusScheduled, EventFinish, model.TripStatusScheduled, false},
		{model.TripStatusInProgress, EventFinish, model.TripStatusCompleted, true},
		{model.TripStatusInProgress, EventStart, model.TripStatusInProgress, false},
		{model.TripStatusInProgress, EventCancel, model.TripStatusInProgress, false},
		{model.TripStatusCompleted, EventStart, model.TripStatusCompleted, false},
		{model.TripStatusCompleted, EventCancel, model.TripStatusCompleted, false},
		{model.TripStatusCanceled, EventStart, model.TripStatusCanceled, false},
	}

	for _, tc := range cases {
		if got := CanTrip(tc.from, tc.event); got != tc.allowed {
			t.Errorf("CanTrip(%s, %s) = %v, want %v", tc.from, tc.event, got, tc.allowed)
		}
		got, err := TripTransition(tc.from, tc.event)
		if tc.allowed {
			if err != nil {
				t.Errorf("TripTransition(%s, %s): %v", tc.from, tc.event, err)
			}
			if got != tc.want {
				t.Errorf("TripTransition(%s, %s) = %s, want %s", tc.from, tc.event, got, tc.want)
			}
		} else if err == nil {
			t.Errorf("TripTransition(%s, %s): expected error", tc.from, tc.event)
		}
	}
}

func TestMaintenanceTransitions(t *testing.T) {
	cases := []struct {
		from    model.MaintenanceStatus
		event   string
		want    model.MaintenanceStatus
		allowed bool
	}{
		{model.MaintenanceStatusPending, EventBegin, model.MaintenanceStatusInProgress, true},
		{model.MaintenanceStatusPending, EventComplete, model.MaintenanceStatusPending, false},
		{model.MaintenanceStatusPending, EventReopen, model.MaintenanceStatusPending, false},
		{model.MaintenanceStatusInProgress, EventComplete, model.MaintenanceStatusCompleted, true},
		{model.MaintenanceStatusInProgress, EventReopen, model.MaintenanceStatusPending, true},
		{model.MaintenanceStatusInProgress, EventBegin, model.MaintenanceStatusInProgress, false},
		{model.MaintenanceStatusCompleted, EventBegin, model.MaintenanceStatusInProgress, true},
		{model.MaintenanceStatusCompleted, EventReopen, model.MaintenanceStatusPending, true},
		{model.MaintenanceStatusCompleted, EventComplete, model.MaintenanceStatusCompleted, false},
	}

	for _, tc := range cases {
		if got := CanMaintenance(tc.from, tc.event); got != tc.allowed {
			t.Errorf("CanMaintenance(%s, %s) = %v, want %v", tc.from, tc.event, got, tc.allowed)
		}
		got, err := MaintenanceTransition(tc.from, tc.event)
		if tc.allowed {
			if err != nil {
				t.Errorf("MaintenanceTransition(%s, %s): %v", tc.from, tc.event, err)
			}
			if got != tc.want {
				t.Errorf("MaintenanceTransition(%s, %s) = %s, want %s", tc.from, tc.event, got, tc.want)
			}
		} else if err == nil {
			t.Errorf("MaintenanceTransition(%s, %s): expected error", tc.from, tc.event)
		}
	}
}

func TestMaintenanceEventFor(t *testing.T) {
	if event, ok := MaintenanceEventFor(model.MaintenanceStatusInProgress); !ok || event != EventBegin {
		t.Errorf("expected begin event, got %q (ok=%v)", event, ok)
	}
	if event, ok := MaintenanceEventFor(model.MaintenanceStatusCompleted); !ok || event != EventComplete {
		t.Errorf("expected complete event, got %q (ok=%v)", event, ok)
	}
	if event, ok := MaintenanceEventFor(model.MaintenanceStatusPending); !ok || event != EventReopen {
		t.Errorf("expected reopen event, got %q (ok=%v)", event, ok)
	}
	if _, ok := MaintenanceEventFor(model.MaintenanceStatus("UNKNOWN")); ok {
		t.Errorf("expected unknown status to map to no event")
	}
}
