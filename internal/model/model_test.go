package model

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/medrec/medrec/internal/shared/errors"
	"github.com/medrec/medrec/internal/shared/types"
)

func TestSickLeaveEnd(t *testing.T) {
	tests := []struct {
		name     string
		start    types.Date
		duration int
		want     string
	}{
		{"ten days", types.NewDate(2024, time.March, 1), 10, "2024-03-10"},
		{"single day", types.NewDate(2024, time.March, 1), 1, "2024-03-01"},
		{"month boundary", types.NewDate(2024, time.January, 30), 5, "2024-02-03"},
		{"leap year", types.NewDate(2024, time.February, 28), 2, "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SickLeave{StartDate: tt.start, DurationDays: tt.duration}
			if got := s.End().String(); got != tt.want {
				t.Errorf("End() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDoctorValidate(t *testing.T) {
	valid := Doctor{IdentificationNumber: "DOC001", Name: "Dr. Petrova", Specialty: "Cardiology"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid doctor rejected: %v", err)
	}

	bad := Doctor{IdentificationNumber: "D", Name: "X"}
	err := bad.Validate()
	if err == nil {
		t.Fatal("invalid doctor accepted")
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestPatientValidate(t *testing.T) {
	valid := Patient{Name: "Ivan Ivanov", EGN: "9001011234", FamilyDoctorID: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid patient rejected: %v", err)
	}

	tests := []struct {
		name    string
		patient Patient
	}{
		{"short EGN", Patient{Name: "Ivan Ivanov", EGN: "12345", FamilyDoctorID: 1}},
		{"missing family doctor", Patient{Name: "Ivan Ivanov", EGN: "9001011234"}},
		{"short name", Patient{Name: "I", EGN: "9001011234", FamilyDoctorID: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.patient.Validate(); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestMedicalVisitValidate(t *testing.T) {
	valid := MedicalVisit{VisitDate: types.NewDate(2024, time.March, 1), PatientID: 1, DoctorID: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid visit rejected: %v", err)
	}

	future := MedicalVisit{VisitDate: types.Today().AddDays(7), PatientID: 1, DoctorID: 1}
	if err := future.Validate(); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("future visit date accepted: %v", err)
	}

	missing := MedicalVisit{VisitDate: types.NewDate(2024, time.March, 1)}
	if err := missing.Validate(); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("visit without patient and doctor accepted: %v", err)
	}
}

func TestSickLeaveValidate(t *testing.T) {
	valid := SickLeave{StartDate: types.NewDate(2024, time.March, 1), DurationDays: 5, MedicalVisitID: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid sick leave rejected: %v", err)
	}

	tests := []struct {
		name  string
		leave SickLeave
	}{
		{"zero duration", SickLeave{StartDate: types.NewDate(2024, time.March, 1), MedicalVisitID: 1}},
		{"excessive duration", SickLeave{StartDate: types.NewDate(2024, time.March, 1), DurationDays: 366, MedicalVisitID: 1}},
		{"missing start", SickLeave{DurationDays: 5, MedicalVisitID: 1}},
		{"missing visit", SickLeave{StartDate: types.NewDate(2024, time.March, 1), DurationDays: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.leave.Validate(); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestCredentialsValidate(t *testing.T) {
	if err := (Credentials{Username: "ivan", Password: "secret1"}).Validate(); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if err := (Credentials{Username: "iv", Password: "short"}).Validate(); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("weak credentials accepted: %v", err)
	}
}
