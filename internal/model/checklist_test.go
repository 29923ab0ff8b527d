package model

import "testing"

func TestChecklistComplete(t *testing.T) {
	if !ChecklistComplete(PreTripChecklist, PreTripChecklist) {
		t.Fatalf("full pre-trip set should be complete")
	}

	// Order is irrelevant.
	shuffled := []ChecklistItem{ChecklistDocuments, ChecklistOilLevel, ChecklistTires, ChecklistLights}
	if !ChecklistComplete(PreTripChecklist, shuffled) {
		t.Fatalf("order should not matter")
	}

	// Duplicates are idempotent.
	withDupes := append([]ChecklistItem{ChecklistTires, ChecklistTires}, shuffled...)
	if !ChecklistComplete(PreTripChecklist, withDupes) {
		t.Fatalf("duplicates should not matter")
	}

	// Extra items do not substitute for missing required ones.
	partial := []ChecklistItem{ChecklistTires, ChecklistLights, ChecklistOilLevel, ChecklistBodywork}
	if ChecklistComplete(PreTripChecklist, partial) {
		t.Fatalf("missing DOCUMENTS should be incomplete")
	}

	if ChecklistComplete(PreTripChecklist, nil) {
		t.Fatalf("empty set should be incomplete")
	}

	if ChecklistComplete(PostTripChecklist, PreTripChecklist) {
		t.Fatalf("pre-trip items should not satisfy post-trip set")
	}
}

func TestNormalizeChecklist(t *testing.T) {
	items := []ChecklistItem{ChecklistTires, ChecklistLights, ChecklistTires, ChecklistDocuments, ChecklistLights}
	got := NormalizeChecklist(items)

	want := []ChecklistItem{ChecklistTires, ChecklistLights, ChecklistDocuments}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
