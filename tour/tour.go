// Package tour defines the itinerary records the client browses and authors:
// tours, and the ordered geographic stops inside them.
package tour

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Tour is an itinerary: an ordered sequence of stops with a title page.
type Tour struct {
	ID        string    `json:"id" yaml:"id" validate:"required,uuid4"`
	Title     string    `json:"title" yaml:"title" validate:"required,max=200"`
	Summary   string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	CoverURL  string    `json:"cover_url,omitempty" yaml:"cover_url,omitempty" validate:"omitempty,url"`
	CreatedBy string    `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Stop is a point of interest within a tour. Description is free markdown
// text; it is what the narration sequencer segments and speaks.
type Stop struct {
	ID          string  `json:"id" yaml:"id" validate:"required,uuid4"`
	TourID      string  `json:"tour_id" yaml:"tour_id" validate:"required,uuid4"`
	Title       string  `json:"title" yaml:"title" validate:"required,max=200"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Lat         float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
	OrderIndex  int     `json:"order_index" yaml:"order_index" validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty" validate:"omitempty,url"`
}

var validate = validator.New()

// NewTour creates a tour with a fresh id and timestamps.
func NewTour(title, summary string) Tour {
	now := time.Now().UTC()
	return Tour{
		ID:        uuid.NewString(),
		Title:     title,
		Summary:   summary,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewStop creates a stop with a fresh id, appended at the given order index.
func NewStop(tourID, title, description string, lat, lng float64, order int) Stop {
	return Stop{
		ID:          uuid.NewString(),
		TourID:      tourID,
		Title:       title,
		Description: description,
		Lat:         lat,
		Lng:         lng,
		OrderIndex:  order,
	}
}

// Validate checks the tour's fields.
func (t Tour) Validate() error {
	return validate.Struct(t)
}

// Validate checks the stop's fields.
func (s Stop) Validate() error {
	return validate.Struct(s)
}

// SortStops orders stops in place by OrderIndex, ties broken by title so the
// ordering is stable across fetches.
func SortStops(stops []Stop) {
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].OrderIndex != stops[j].OrderIndex {
			return stops[i].OrderIndex < stops[j].OrderIndex
		}
		return stops[i].Title < stops[j].Title
	})
}

// Renumber rewrites OrderIndex to a dense 0..n-1 sequence after inserts or
// deletes. Stops are sorted first.
func Renumber(stops []Stop) {
	SortStops(stops)
	for i := range stops {
		stops[i].OrderIndex = i
	}
}
