package resource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/shared/types"
)

// MedicalVisits lists all medical visits.
func (c *Client) MedicalVisits(ctx context.Context) ([]model.MedicalVisit, error) {
	return fetchCached[[]model.MedicalVisit](ctx, c, TagMedicalVisit, "/medical-visits")
}

// MedicalVisit fetches a single visit by id.
func (c *Client) MedicalVisit(ctx context.Context, id int64) (model.MedicalVisit, error) {
	return fetchCached[model.MedicalVisit](ctx, c, TagMedicalVisit, fmt.Sprintf("/medical-visits/%d", id))
}

// MedicalVisitsByPatient lists a patient's visits.
func (c *Client) MedicalVisitsByPatient(ctx context.Context, patientID int64) ([]model.MedicalVisit, error) {
	return fetchCached[[]model.MedicalVisit](ctx, c, TagMedicalVisit, fmt.Sprintf("/medical-visits/patient/%d", patientID))
}

// MedicalVisitsByDoctor lists a doctor's visits.
func (c *Client) MedicalVisitsByDoctor(ctx context.Context, doctorID int64) ([]model.MedicalVisit, error) {
	return fetchCached[[]model.MedicalVisit](ctx, c, TagMedicalVisit, fmt.Sprintf("/medical-visits/doctor/%d", doctorID))
}

// MedicalVisitsByDateRange lists all visits within [start, end].
func (c *Client) MedicalVisitsByDateRange(ctx context.Context, start, end types.Date) ([]model.MedicalVisit, error) {
	path := datePath("/medical-visits/date-range", start.String(), end.String())
	return fetchCached[[]model.MedicalVisit](ctx, c, TagMedicalVisit, path)
}

// MedicalVisitsByDoctorAndDateRange lists one doctor's visits within
// [start, end].
func (c *Client) MedicalVisitsByDoctorAndDateRange(ctx context.Context, doctorID int64, start, end types.Date) ([]model.MedicalVisit, error) {
	path := datePath(fmt.Sprintf("/medical-visits/doctor/%d/date-range", doctorID), start.String(), end.String())
	return fetchCached[[]model.MedicalVisit](ctx, c, TagMedicalVisit, path)
}

// PatientMedicalHistory lists a patient's full visit history.
func (c *Client) PatientMedicalHistory(ctx context.Context, patientID int64) ([]model.MedicalVisit, error) {
	return fetchCached[[]model.MedicalVisit](ctx, c, TagMedicalVisit, fmt.Sprintf("/medical-visits/patient/%d/history", patientID))
}

// CreateMedicalVisit creates a visit. Visit creation changes the derived
// counts on both the patient and the doctor, so all three tags are
// invalidated.
func (c *Client) CreateMedicalVisit(ctx context.Context, payload model.MedicalVisit) (model.MedicalVisit, error) {
	if err := payload.Validate(); err != nil {
		return model.MedicalVisit{}, err
	}
	var out model.MedicalVisit
	err := c.mutate(ctx, http.MethodPost, "/medical-visits", payload, &out, TagMedicalVisit, TagPatient, TagDoctor)
	return out, err
}

// UpdateMedicalVisit updates a visit and invalidates visit reads.
func (c *Client) UpdateMedicalVisit(ctx context.Context, id int64, payload model.MedicalVisit) (model.MedicalVisit, error) {
	if err := payload.Validate(); err != nil {
		return model.MedicalVisit{}, err
	}
	var out model.MedicalVisit
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/medical-visits/%d", id), payload, &out, TagMedicalVisit)
	return out, err
}

// DeleteMedicalVisit deletes a visit and invalidates visit reads.
func (c *Client) DeleteMedicalVisit(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/medical-visits/%d", id), nil, nil, TagMedicalVisit)
}
