package ui

import (
	"testing"
	"time"

	"github.com/wayfarerhq/wayfarer/tour"
)

func testTours() []tour.Tour {
	now := time.Now()
	return []tour.Tour{
		{ID: "1", Title: "Old Town Walk", Summary: "medieval center", UpdatedAt: now},
		{ID: "2", Title: "Harbor Loop", Summary: "along the waterfront", UpdatedAt: now},
		{ID: "3", Title: "Castle Hill", Summary: "fortress ruins", UpdatedAt: now},
	}
}

func TestTourListSelection(t *testing.T) {
	common := &commonModel{width: 80}
	m := newTourListModel(common)

	if _, ok := m.selected(); ok {
		t.Error("empty list should have no selection")
	}

	m.setTours(testTours())
	sel, ok := m.selected()
	if !ok || sel.Title != "Old Town Walk" {
		t.Errorf("initial selection = %+v, want first tour", sel)
	}
}

func TestTourListFuzzyFilter(t *testing.T) {
	common := &commonModel{width: 80}
	m := newTourListModel(common)
	m.setTours(testTours())

	m.filterInput.SetValue("harbr")
	m.applyFilter()

	if len(m.visible) != 1 {
		t.Fatalf("visible = %d tours, want 1", len(m.visible))
	}
	sel, ok := m.selected()
	if !ok || sel.Title != "Harbor Loop" {
		t.Errorf("filtered selection = %+v, want Harbor Loop", sel)
	}

	// Clearing the filter restores everything.
	m.filterInput.SetValue("")
	m.applyFilter()
	if len(m.visible) != 3 {
		t.Errorf("visible = %d tours after clearing filter, want 3", len(m.visible))
	}
}

func TestTourListCursorClampedByFilter(t *testing.T) {
	common := &commonModel{width: 80}
	m := newTourListModel(common)
	m.setTours(testTours())
	m.cursor = 2

	m.filterInput.SetValue("harbor")
	m.applyFilter()

	if m.cursor >= len(m.visible) {
		t.Errorf("cursor %d out of range for %d visible tours", m.cursor, len(m.visible))
	}
}
