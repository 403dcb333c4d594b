package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medrec/medrec/internal/model"
)

// Doctors lists all doctors.
func (c *Client) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return fetchCached[[]model.Doctor](ctx, c, TagDoctor, "/doctors")
}

// Doctor fetches a single doctor by id.
func (c *Client) Doctor(ctx context.Context, id int64) (model.Doctor, error) {
	return fetchCached[model.Doctor](ctx, c, TagDoctor, fmt.Sprintf("/doctors/%d", id))
}

// FamilyDoctors lists doctors flagged as eligible family doctors.
func (c *Client) FamilyDoctors(ctx context.Context) ([]model.Doctor, error) {
	return fetchCached[[]model.Doctor](ctx, c, TagDoctor, "/doctors/family")
}

// DoctorsBySpecialty lists doctors with the given specialty.
func (c *Client) DoctorsBySpecialty(ctx context.Context, specialty string) ([]model.Doctor, error) {
	return fetchCached[[]model.Doctor](ctx, c, TagDoctor, "/doctors/specialty/"+url.PathEscape(specialty))
}

// CreateDoctor creates a doctor and invalidates doctor reads.
func (c *Client) CreateDoctor(ctx context.Context, payload model.Doctor) (model.Doctor, error) {
	if err := payload.Validate(); err != nil {
		return model.Doctor{}, err
	}
	var out model.Doctor
	err := c.mutate(ctx, http.MethodPost, "/doctors", payload, &out, TagDoctor)
	return out, err
}

// UpdateDoctor updates a doctor and invalidates doctor reads.
func (c *Client) UpdateDoctor(ctx context.Context, id int64, payload model.Doctor) (model.Doctor, error) {
	if err := payload.Validate(); err != nil {
		return model.Doctor{}, err
	}
	var out model.Doctor
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/doctors/%d", id), payload, &out, TagDoctor)
	return out, err
}

// DeleteDoctor deletes a doctor. The backend rejects deleting a doctor
// still referenced as someone's family doctor; that failure surfaces
// unchanged and nothing is removed locally.
func (c *Client) DeleteDoctor(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/doctors/%d", id), nil, nil, TagDoctor)
}
