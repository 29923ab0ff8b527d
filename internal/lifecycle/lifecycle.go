// Package lifecycle declares the trip and maintenance state machines as
// fsm transition tables. Services consult these before mutating anything;
// the guards (checklists, mileage) live with the services.
package lifecycle

import (
	"context"

	"github.com/looplab/fsm"

	"fleet-service/internal/model"
)

// Trip events.
const (
	EventStart  = "start"
	EventFinish = "finish"
	EventCancel = "cancel"
)

// Maintenance events.
const (
	EventBegin    = "begin"
	EventComplete = "complete"
	EventReopen   = "reopen"
)

func newTripFSM(current model.TripStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: EventStart, Src: []string{string(model.TripStatusScheduled)}, Dst: string(model.TripStatusInProgress)},
			{Name: EventFinish, Src: []string{string(model.TripStatusInProgress)}, Dst: string(model.TripStatusCompleted)},
			{Name: EventCancel, Src: []string{string(model.TripStatusScheduled)}, Dst: string(model.TripStatusCanceled)},
		},
		fsm.Callbacks{},
	)
}

func newMaintenanceFSM(current model.MaintenanceStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: EventBegin, Src: []string{
				string(model.MaintenanceStatusPending),
				string(model.MaintenanceStatusCompleted),
			}, Dst: string(model.MaintenanceStatusInProgress)},
			{Name: EventComplete, Src: []string{
				string(model.MaintenanceStatusInProgress),
			}, Dst: string(model.MaintenanceStatusCompleted)},
			{Name: EventReopen, Src: []string{
				string(model.MaintenanceStatusInProgress),
				string(model.MaintenanceStatusCompleted),
			}, Dst: string(model.MaintenanceStatusPending)},
		},
		fsm.Callbacks{},
	)
}

// CanTrip reports whether event is allowed from the given trip status.
func CanTrip(current model.TripStatus, event string) bool {
	return newTripFSM(current).Can(event)
}

// TripTransition applies event to the given status and returns the
// resulting status.
func TripTransition(current model.TripStatus, event string) (model.TripStatus, error) {
	machine := newTripFSM(current)
	if err := machine.Event(context.Background(), event); err != nil {
		return current, err
	}
	return model.TripStatus(machine.Current()), nil
}

// MaintenanceEventFor maps a requested target status to the machine event
// that reaches it. The API works in target statuses, the machine in events.
func MaintenanceEventFor(target model.MaintenanceStatus) (string, bool) {
	switch target {
	case model.MaintenanceStatusInProgress:
		return EventBegin, true
	case model.MaintenanceStatusCompleted:
		return EventComplete, true
	case model.MaintenanceStatusPending:
		return EventReopen, true
	}
	return "", false
}

// CanMaintenance reports whether event is allowed from the given
// maintenance status.
func CanMaintenance(current model.MaintenanceStatus, event string) bool {
	return newMaintenanceFSM(current).Can(event)
}

// MaintenanceTransition applies event to the given status and returns the
// resulting status.
func MaintenanceTransition(current model.MaintenanceStatus, event string) (model.MaintenanceStatus, error) {
	machine := newMaintenanceFSM(current)
	if err := machine.Event(context.Background(), event); err != nil {
		return current, err
	}
	return model.MaintenanceStatus(machine.Current()), nil
}
