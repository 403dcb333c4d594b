package reports

import (
	"github.com/medrec/medrec/internal/resource"
	"github.com/medrec/medrec/internal/shared/types"
)

// Filters is the report filter set. Only the date range changes which
// queries are issued: the range report is skipped unless both bounds are
// set. The remaining fields scope what a view chooses to render.
type Filters struct {
	DateFrom          *types.Date
	DateTo            *types.Date
	SelectedDoctor    int64
	SelectedDiagnosis int64
	PatientEGN        types.EGN
}

// DoctorSummary is the compact doctor row shown in report filters.
type DoctorSummary struct {
	ID        int64
	Name      string
	Specialty string
}

// DiagnosisShare is a diagnosis with its share of the patient base.
type DiagnosisShare struct {
	DiagnosisName string
	Count         int
	// Percentage of all patients carrying this diagnosis, in [0,100];
	// 0 when there are no patients at all
	Percentage float64
}

// DiagnosisPatients pairs a diagnosis name with its patient count.
type DiagnosisPatients struct {
	DiagnosisName string
	PatientCount  int
}

// DoctorStatistics is the combined per-doctor activity row.
type DoctorStatistics struct {
	ID               int64
	DoctorName       string
	Specialty        string
	TotalVisits      int
	TotalPatients    int
	SickLeavesIssued int
	// AverageVisitsPerPatient is TotalVisits / TotalPatients, 0 when the
	// doctor has no patients
	AverageVisitsPerPatient float64
}

// PatientVisits is a patient with their visit count.
type PatientVisits struct {
	PatientName string
	VisitCount  int
}

// MonthlySickLeave is one month of sick leave statistics with a rendered
// label.
type MonthlySickLeave struct {
	Month       string
	Count       int
	TotalDays   int
	AverageDays float64
}

// DoctorSickLeave is one doctor's sick leave statistics.
type DoctorSickLeave struct {
	DoctorName     string
	SickLeaveCount int
	TotalDays      int
	AverageDays    float64
}

// Data is the combined, reshaped report dataset.
type Data struct {
	TotalPatients   int
	TotalVisits     int
	TotalDoctors    int
	TotalSickLeaves int

	Doctors               []DoctorSummary
	MostCommonDiagnoses   []DiagnosisShare
	PatientsByDiagnosis   []DiagnosisPatients
	DoctorStatistics      []DoctorStatistics
	InsuranceStats        resource.InsuranceStats
	PatientsWithMostVisits []PatientVisits
	SickLeaveByMonth      []MonthlySickLeave
	DoctorSickLeaveStats  []DoctorSickLeave
	VisitsByDateRange     []resource.VisitsByDateRow
}
