package model

import (
	"time"

	apperrors "github.com/medrec/medrec/internal/shared/errors"
)

// Payload validation mirrors the backend's form rules so obviously bad
// input is rejected before a network round trip. The backend remains the
// authority; passing here does not guarantee acceptance.

// Validate checks a doctor payload.
func (d Doctor) Validate() error {
	details := map[string]string{}
	if len(d.IdentificationNumber) < 3 {
		details["identificationNumber"] = "identification number must be at least 3 characters"
	}
	if len(d.Name) < 2 {
		details["name"] = "name must be at least 2 characters"
	}
	if d.Specialty == "" {
		details["specialty"] = "specialty is required"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid doctor", details)
	}
	return nil
}

// Validate checks a patient payload.
func (p Patient) Validate() error {
	details := map[string]string{}
	if len(p.Name) < 2 {
		details["name"] = "name must be at least 2 characters"
	}
	if !p.EGN.IsValid() {
		details["egn"] = "EGN must be exactly 10 digits"
	}
	if p.FamilyDoctorID <= 0 {
		details["familyDoctorId"] = "family doctor is required"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid patient", details)
	}
	return nil
}

// Validate checks a diagnosis payload.
func (d Diagnosis) Validate() error {
	details := map[string]string{}
	if len(d.Code) < 2 {
		details["code"] = "code must be at least 2 characters"
	}
	if len(d.Name) < 2 {
		details["name"] = "name must be at least 2 characters"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid diagnosis", details)
	}
	return nil
}

// Validate checks a medical visit payload. The visit date must not be in
// the future.
func (v MedicalVisit) Validate() error {
	details := map[string]string{}
	if v.VisitDate.IsZero() {
		details["visitDate"] = "visit date is required"
	} else if v.VisitDate.Time.After(time.Now()) {
		details["visitDate"] = "visit date cannot be in the future"
	}
	if v.PatientID <= 0 {
		details["patientId"] = "patient is required"
	}
	if v.DoctorID <= 0 {
		details["doctorId"] = "doctor is required"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid medical visit", details)
	}
	return nil
}

// Validate checks a sick leave payload. Duration is bounded to [1,365].
func (s SickLeave) Validate() error {
	details := map[string]string{}
	if s.StartDate.IsZero() {
		details["startDate"] = "start date is required"
	}
	if s.DurationDays < 1 {
		details["durationDays"] = "duration must be positive"
	} else if s.DurationDays > 365 {
		details["durationDays"] = "duration cannot exceed 365 days"
	}
	if s.MedicalVisitID <= 0 {
		details["medicalVisitId"] = "medical visit is required"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid sick leave", details)
	}
	return nil
}

// Validate checks sign-in credentials.
func (c Credentials) Validate() error {
	details := map[string]string{}
	if len(c.Username) < 3 {
		details["username"] = "username must be at least 3 characters"
	}
	if len(c.Password) < 6 {
		details["password"] = "password must be at least 6 characters"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid credentials", details)
	}
	return nil
}

// Validate checks a signup payload.
func (r SignupRequest) Validate() error {
	details := map[string]string{}
	if len(r.Username) < 3 {
		details["username"] = "username must be at least 3 characters"
	}
	if len(r.Password) < 6 {
		details["password"] = "password must be at least 6 characters"
	}
	if r.Email == "" {
		details["email"] = "email is required"
	}
	if len(r.Roles) == 0 {
		details["role"] = "at least one role is required"
	}
	if !r.EGN.IsZero() && !r.EGN.IsValid() {
		details["egn"] = "EGN must be exactly 10 digits"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid signup request", details)
	}
	return nil
}
