package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medrec/medrec/internal/model"
)

// Diagnoses lists all diagnoses.
func (c *Client) Diagnoses(ctx context.Context) ([]model.Diagnosis, error) {
	return fetchCached[[]model.Diagnosis](ctx, c, TagDiagnosis, "/diagnoses")
}

// Diagnosis fetches a single diagnosis by id.
func (c *Client) Diagnosis(ctx context.Context, id int64) (model.Diagnosis, error) {
	return fetchCached[model.Diagnosis](ctx, c, TagDiagnosis, fmt.Sprintf("/diagnoses/%d", id))
}

// DiagnosisByCode fetches a diagnosis by its code.
func (c *Client) DiagnosisByCode(ctx context.Context, code string) (model.Diagnosis, error) {
	return fetchCached[model.Diagnosis](ctx, c, TagDiagnosis, "/diagnoses/code/"+url.PathEscape(code))
}

// SearchDiagnoses searches diagnoses by name or code fragment.
func (c *Client) SearchDiagnoses(ctx context.Context, term string) ([]model.Diagnosis, error) {
	return fetchCached[[]model.Diagnosis](ctx, c, TagDiagnosis, "/diagnoses/search?term="+url.QueryEscape(term))
}

// CreateDiagnosis creates a diagnosis and invalidates diagnosis reads.
func (c *Client) CreateDiagnosis(ctx context.Context, payload model.Diagnosis) (model.Diagnosis, error) {
	if err := payload.Validate(); err != nil {
		return model.Diagnosis{}, err
	}
	var out model.Diagnosis
	err := c.mutate(ctx, http.MethodPost, "/diagnoses", payload, &out, TagDiagnosis)
	return out, err
}

// UpdateDiagnosis updates a diagnosis and invalidates diagnosis reads.
func (c *Client) UpdateDiagnosis(ctx context.Context, id int64, payload model.Diagnosis) (model.Diagnosis, error) {
	if err := payload.Validate(); err != nil {
		return model.Diagnosis{}, err
	}
	var out model.Diagnosis
	err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/diagnoses/%d", id), payload, &out, TagDiagnosis)
	return out, err
}

// DeleteDiagnosis deletes a diagnosis and invalidates diagnosis reads.
func (c *Client) DeleteDiagnosis(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/diagnoses/%d", id), nil, nil, TagDiagnosis)
}
