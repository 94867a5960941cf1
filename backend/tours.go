package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/wayfarerhq/wayfarer/tour"
)

// ListTours fetches all tours visible to the signed-in user, newest first.
func (c *Client) ListTours(ctx context.Context) ([]tour.Tour, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"updated_at.desc"},
	}
	var tours []tour.Tour
	if err := c.do(ctx, http.MethodGet, "/rest/v1/tours", query, nil, &tours); err != nil {
		return nil, errors.Wrap(err, "failed to list tours")
	}
	return tours, nil
}

// GetTour fetches a single tour by id.
func (c *Client) GetTour(ctx context.Context, id string) (tour.Tour, error) {
	query := url.Values{
		"select": {"*"},
		"id":     {"eq." + id},
	}
	var tours []tour.Tour
	if err := c.do(ctx, http.MethodGet, "/rest/v1/tours", query, nil, &tours); err != nil {
		return tour.Tour{}, errors.Wrapf(err, "failed to fetch tour %s", id)
	}
	if len(tours) == 0 {
		return tour.Tour{}, &APIError{StatusCode: http.StatusNotFound, Message: "tour not found"}
	}
	return tours[0], nil
}

// CreateTour inserts a tour and returns the stored record.
func (c *Client) CreateTour(ctx context.Context, t tour.Tour) (tour.Tour, error) {
	if err := t.Validate(); err != nil {
		return tour.Tour{}, errors.Wrap(err, "invalid tour")
	}
	var created []tour.Tour
	if err := c.do(ctx, http.MethodPost, "/rest/v1/tours", nil, t, &created); err != nil {
		return tour.Tour{}, errors.Wrap(err, "failed to create tour")
	}
	if len(created) == 0 {
		return t, nil
	}
	return created[0], nil
}

// UpdateTour updates a tour by id and returns the stored record.
func (c *Client) UpdateTour(ctx context.Context, t tour.Tour) (tour.Tour, error) {
	if err := t.Validate(); err != nil {
		return tour.Tour{}, errors.Wrap(err, "invalid tour")
	}
	query := url.Values{"id": {"eq." + t.ID}}
	var updated []tour.Tour
	if err := c.do(ctx, http.MethodPatch, "/rest/v1/tours", query, t, &updated); err != nil {
		return tour.Tour{}, errors.Wrapf(err, "failed to update tour %s", t.ID)
	}
	if len(updated) == 0 {
		return t, nil
	}
	return updated[0], nil
}

// DeleteTour removes a tour by id. The backend cascades to its stops.
func (c *Client) DeleteTour(ctx context.Context, id string) error {
	query := url.Values{"id": {"eq." + id}}
	if err := c.do(ctx, http.MethodDelete, "/rest/v1/tours", query, nil, nil); err != nil {
		return errors.Wrapf(err, "failed to delete tour %s", id)
	}
	return nil
}
