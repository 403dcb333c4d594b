package resource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/shared/types"
)

// SickLeaves lists all sick leaves.
func (c *Client) SickLeaves(ctx context.Context) ([]model.SickLeave, error) {
	return fetchCached[[]model.SickLeave](ctx, c, TagSickLeave, "/sick-leaves")
}

// SickLeave fetches a single sick leave by id.
func (c *Client) SickLeave(ctx context.Context, id int64) (model.SickLeave, error) {
	return fetchCached[model.SickLeave](ctx, c, TagSickLeave, fmt.Sprintf("/sick-leaves/%d", id))
}

// SickLeavesByPatient lists a patient's sick leaves.
func (c *Client) SickLeavesByPatient(ctx context.Context, patientID int64) ([]model.SickLeave, error) {
	return fetchCached[[]model.SickLeave](ctx, c, TagSickLeave, fmt.Sprintf("/sick-leaves/patient/%d", patientID))
}

// SickLeavesByDoctor lists the sick leaves issued by a doctor.
func (c *Client) SickLeavesByDoctor(ctx context.Context, doctorID int64) ([]model.SickLeave, error) {
	return fetchCached[[]model.SickLeave](ctx, c, TagSickLeave, fmt.Sprintf("/sick-leaves/doctor/%d", doctorID))
}

// SickLeavesByDateRange lists sick leaves starting within [start, end].
func (c *Client) SickLeavesByDateRange(ctx context.Context, start, end types.Date) ([]model.SickLeave, error) {
	path := datePath("/sick-leaves/date-range", start.String(), end.String())
	return fetchCached[[]model.SickLeave](ctx, c, TagSickLeave, path)
}

// CreateSickLeave creates a sick leave. The owning visit now carries an
// associated sick leave, so visit reads are invalidated too.
func (c *Client) CreateSickLeave(ctx context.Context, payload model.SickLeave) (model.SickLeave, error) {
	if err := payload.Validate(); err != nil {
		return model.SickLeave{}, err
	}
	var out model.SickLeave
	err := c.mutate(ctx, http.MethodPost, "/sick-leaves", payload, &out, TagSickLeave, TagMedicalVisit)
	return out, err
}

// UpdateSickLeave updates a sick leave and invalidates sick leave reads.
func (c *Client) UpdateSickLeave(ctx context.Context, id int64, payload model.SickLeave) (model.SickLeave, error) {
	if err := payload.Validate(); err != nil {
		return model.SickLeave{}, err
	}
	var out model.SickLeave
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/sick-leaves/%d", id), payload, &out, TagSickLeave)
	return out, err
}

// DeleteSickLeave deletes a sick leave and invalidates sick leave reads.
func (c *Client) DeleteSickLeave(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/sick-leaves/%d", id), nil, nil, TagSickLeave)
}
