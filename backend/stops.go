package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/wayfarerhq/wayfarer/tour"
)

// ListStops fetches the stops of one tour in itinerary order.
func (c *Client) ListStops(ctx context.Context, tourID string) ([]tour.Stop, error) {
	query := url.Values{
		"select":  {"*"},
		"tour_id": {"eq." + tourID},
		"order":   {"order_index.asc"},
	}
	var stops []tour.Stop
	if err := c.do(ctx, http.MethodGet, "/rest/v1/stops", query, nil, &stops); err != nil {
		return nil, errors.Wrapf(err, "failed to list stops of tour %s", tourID)
	}
	tour.SortStops(stops)
	return stops, nil
}

// CreateStop inserts a stop and returns the stored record.
func (c *Client) CreateStop(ctx context.Context, s tour.Stop) (tour.Stop, error) {
	if err := s.Validate(); err != nil {
		return tour.Stop{}, errors.Wrap(err, "invalid stop")
	}
	var created []tour.Stop
	if err := c.do(ctx, http.MethodPost, "/rest/v1/stops", nil, s, &created); err != nil {
		return tour.Stop{}, errors.Wrap(err, "failed to create stop")
	}
	if len(created) == 0 {
		return s, nil
	}
	return created[0], nil
}

// UpdateStop updates a stop by id and returns the stored record.
func (c *Client) UpdateStop(ctx context.Context, s tour.Stop) (tour.Stop, error) {
	if err := s.Validate(); err != nil {
		return tour.Stop{}, errors.Wrap(err, "invalid stop")
	}
	query := url.Values{"id": {"eq." + s.ID}}
	var updated []tour.Stop
	if err := c.do(ctx, http.MethodPatch, "/rest/v1/stops", query, s, &updated); err != nil {
		return tour.Stop{}, errors.Wrapf(err, "failed to update stop %s", s.ID)
	}
	if len(updated) == 0 {
		return s, nil
	}
	return updated[0], nil
}

// DeleteStop removes a stop by id.
func (c *Client) DeleteStop(ctx context.Context, id string) error {
	query := url.Values{"id": {"eq." + id}}
	if err := c.do(ctx, http.MethodDelete, "/rest/v1/stops", query, nil, nil); err != nil {
		return errors.Wrapf(err, "failed to delete stop %s", id)
	}
	return nil
}

// ReorderStops persists a new dense ordering for a tour's stops.
func (c *Client) ReorderStops(ctx context.Context, stops []tour.Stop) error {
	tour.Renumber(stops)
	for _, s := range stops {
		if _, err := c.UpdateStop(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
