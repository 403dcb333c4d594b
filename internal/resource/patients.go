package resource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/shared/types"
)

// Patients lists all patients.
func (c *Client) Patients(ctx context.Context) ([]model.Patient, error) {
	return fetchCached[[]model.Patient](ctx, c, TagPatient, "/patients")
}

// Patient fetches a single patient by id.
func (c *Client) Patient(ctx context.Context, id int64) (model.Patient, error) {
	return fetchCached[model.Patient](ctx, c, TagPatient, fmt.Sprintf("/patients/%d", id))
}

// PatientByEGN fetches a patient by national id.
func (c *Client) PatientByEGN(ctx context.Context, egn types.EGN) (model.Patient, error) {
	return fetchCached[model.Patient](ctx, c, TagPatient, "/patients/egn/"+egn.String())
}

// PatientsByFamilyDoctor lists the patients registered with a family
// doctor.
func (c *Client) PatientsByFamilyDoctor(ctx context.Context, doctorID int64) ([]model.Patient, error) {
	return fetchCached[[]model.Patient](ctx, c, TagPatient, fmt.Sprintf("/patients/family-doctor/%d", doctorID))
}

// PatientsByDiagnosis lists patients diagnosed with the given diagnosis.
func (c *Client) PatientsByDiagnosis(ctx context.Context, diagnosisID int64) ([]model.Patient, error) {
	return fetchCached[[]model.Patient](ctx, c, TagPatient, fmt.Sprintf("/patients/diagnosis/%d", diagnosisID))
}

// CreatePatient creates a patient and invalidates patient reads.
func (c *Client) CreatePatient(ctx context.Context, payload model.Patient) (model.Patient, error) {
	if err := payload.Validate(); err != nil {
		return model.Patient{}, err
	}
	var out model.Patient
	err := c.mutate(ctx, http.MethodPost, "/patients", payload, &out, TagPatient)
	return out, err
}

// UpdatePatient updates a patient and invalidates patient reads.
func (c *Client) UpdatePatient(ctx context.Context, id int64, payload model.Patient) (model.Patient, error) {
	if err := payload.Validate(); err != nil {
		return model.Patient{}, err
	}
	var out model.Patient
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), payload, &out, TagPatient)
	return out, err
}

// DeletePatient deletes a patient and invalidates patient reads.
func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil, TagPatient)
}
