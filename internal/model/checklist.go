package model

type ChecklistItem string

// Pre-trip items.
const (
	ChecklistTires     ChecklistItem = "TIRES"
	ChecklistLights    ChecklistItem = "LIGHTS"
	ChecklistOilLevel  ChecklistItem = "OIL_LEVEL"
	ChecklistDocuments ChecklistItem = "DOCUMENTS"
)

// Post-trip items.
const (
	ChecklistBodywork  ChecklistItem = "BODYWORK"
	ChecklistFuelLevel ChecklistItem = "FUEL_LEVEL"
	ChecklistInterior  ChecklistItem = "INTERIOR"
	ChecklistEquipment ChecklistItem = "EQUIPMENT"
)

// PreTripChecklist and PostTripChecklist are the fixed item sets a driver
// must acknowledge before a trip may start or finish.
var PreTripChecklist = []ChecklistItem{
	ChecklistTires,
	ChecklistLights,
	ChecklistOilLevel,
	ChecklistDocuments,
}

var PostTripChecklist = []ChecklistItem{
	ChecklistBodywork,
	ChecklistFuelLevel,
	ChecklistInterior,
	ChecklistEquipment,
}

// ChecklistComplete reports whether every required item appears in checked.
// Order is irrelevant and duplicates are idempotent.
func ChecklistComplete(required, checked []ChecklistItem) bool {
	seen := make(map[ChecklistItem]struct{}, len(checked))
	for _, item := range checked {
		seen[item] = struct{}{}
	}
	for _, item := range required {
		if _, ok := seen[item]; !ok {
			return false
		}
	}
	return true
}

// NormalizeChecklist drops duplicates while keeping first-seen order.
func NormalizeChecklist(items []ChecklistItem) []ChecklistItem {
	seen := make(map[ChecklistItem]struct{}, len(items))
	out := make([]ChecklistItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
