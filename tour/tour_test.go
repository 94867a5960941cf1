package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTourValidates(t *testing.T) {
	tr := NewTour("Old Town Walk", "Two hours through the medieval center.")
	require.NoError(t, tr.Validate())
	assert.NotEmpty(t, tr.ID)
	assert.False(t, tr.CreatedAt.IsZero())
}

func TestTourValidateRejectsBadFields(t *testing.T) {
	tr := NewTour("Old Town Walk", "")

	bad := tr
	bad.ID = "not-a-uuid"
	assert.Error(t, bad.Validate())

	bad = tr
	bad.Title = ""
	assert.Error(t, bad.Validate())

	bad = tr
	bad.CoverURL = "://broken"
	assert.Error(t, bad.Validate())
}

func TestStopValidateRejectsBadCoordinates(t *testing.T) {
	tr := NewTour("Harbor Loop", "")
	s := NewStop(tr.ID, "Lighthouse", "Built in 1848.", 57.7, 11.9, 0)
	require.NoError(t, s.Validate())

	bad := s
	bad.Lat = 91
	assert.Error(t, bad.Validate())

	bad = s
	bad.Lng = -181
	assert.Error(t, bad.Validate())

	bad = s
	bad.OrderIndex = -1
	assert.Error(t, bad.Validate())
}

func TestSortStops(t *testing.T) {
	stops := []Stop{
		{Title: "B", OrderIndex: 2},
		{Title: "A", OrderIndex: 0},
		{Title: "C", OrderIndex: 2},
		{Title: "D", OrderIndex: 1},
	}
	SortStops(stops)

	titles := make([]string, len(stops))
	for i, s := range stops {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"A", "D", "B", "C"}, titles)
}

func TestRenumberMakesIndexesDense(t *testing.T) {
	stops := []Stop{
		{Title: "C", OrderIndex: 7},
		{Title: "A", OrderIndex: 1},
		{Title: "B", OrderIndex: 4},
	}
	Renumber(stops)

	for i, s := range stops {
		assert.Equal(t, i, s.OrderIndex, "stop %q", s.Title)
	}
	assert.Equal(t, "A", stops[0].Title)
	assert.Equal(t, "C", stops[2].Title)
}
