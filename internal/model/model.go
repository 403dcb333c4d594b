// Package model holds the client-side copies of the backend entities.
// All records are transient and refetchable; the backend owns persistence
// and business rules.
package model

import (
	"github.com/medrec/medrec/internal/shared/types"
)

// Doctor represents a physician. IdentificationNumber is immutable after
// creation. PatientCount and VisitCount are server-derived.
type Doctor struct {
	ID                   int64  `json:"id"`
	IdentificationNumber string `json:"identificationNumber"`
	Name                 string `json:"name"`
	Specialty            string `json:"specialty"`
	IsFamilyDoctor       bool   `json:"isFamilyDoctor"`
	PatientCount         int    `json:"patientCount,omitempty"`
	VisitCount           int    `json:"visitCount,omitempty"`
}

// Patient represents a registered patient. EGN is immutable after
// creation. HealthInsuranceValid is server-derived.
type Patient struct {
	ID                       int64       `json:"id"`
	Name                     string      `json:"name"`
	EGN                      types.EGN   `json:"egn"`
	HealthInsurancePaid      bool        `json:"healthInsurancePaid"`
	LastInsurancePaymentDate *types.Date `json:"lastInsurancePaymentDate,omitempty"`
	FamilyDoctorID           int64       `json:"familyDoctorId"`
	FamilyDoctorName         string      `json:"familyDoctorName,omitempty"`
	HealthInsuranceValid     bool        `json:"healthInsuranceValid,omitempty"`
}

// Diagnosis is a coded diagnosis. VisitCount is server-derived.
type Diagnosis struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VisitCount  int    `json:"visitCount,omitempty"`
}

// SickLeave is a certified absence tied to exactly one medical visit.
type SickLeave struct {
	ID             int64      `json:"id"`
	StartDate      types.Date `json:"startDate"`
	DurationDays   int        `json:"durationDays"`
	EndDate        types.Date `json:"endDate,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	MedicalVisitID int64      `json:"medicalVisitId"`
}

// End derives the final covered day: start + duration - 1.
func (s SickLeave) End() types.Date {
	return s.StartDate.AddDays(s.DurationDays - 1)
}

// MedicalVisit represents one visit of a patient to a doctor. At most one
// sick leave is associated with a visit.
type MedicalVisit struct {
	ID                   int64      `json:"id"`
	VisitDate            types.Date `json:"visitDate"`
	VisitTime            string     `json:"visitTime,omitempty"`
	Symptoms             string     `json:"symptoms,omitempty"`
	Treatment            string     `json:"treatment,omitempty"`
	PrescribedMedication string     `json:"prescribedMedication,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	PatientID            int64      `json:"patientId"`
	PatientName          string     `json:"patientName,omitempty"`
	DoctorID             int64      `json:"doctorId"`
	DoctorName           string     `json:"doctorName,omitempty"`
	DiagnosisID          int64      `json:"diagnosisId,omitempty"`
	DiagnosisName        string     `json:"diagnosisName,omitempty"`
	SickLeave            *SickLeave `json:"sickLeave,omitempty"`
}

// User is the backend account record behind a session.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	PatientID int64    `json:"patientId,omitempty"`
	DoctorID  int64    `json:"doctorId,omitempty"`
}

// Credentials is the sign-in request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest carries the account fields plus the role-specific profile
// fields the backend uses to create the linked doctor or patient record.
type SignupRequest struct {
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	Password             string    `json:"password"`
	Roles                []string  `json:"role"`
	Name                 string    `json:"name,omitempty"`
	EGN                  types.EGN `json:"egn,omitempty"`
	IdentificationNumber string    `json:"identificationNumber,omitempty"`
	Specialty            string    `json:"specialty,omitempty"`
	IsFamilyDoctor       bool      `json:"isFamilyDoctor,omitempty"`
	FamilyDoctorID       int64     `json:"familyDoctorId,omitempty"`
}

// AuthResponse is the backend's sign-in response: the bearer token plus
// the role claims and linked profile ids.
type AuthResponse struct {
	Token     string   `json:"token"`
	Type      string   `json:"type"`
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	PatientID int64    `json:"patientId,omitempty"`
	DoctorID  int64    `json:"doctorId,omitempty"`
}

// Message is a plain backend acknowledgement.
type Message struct {
	Message string `json:"message"`
}
