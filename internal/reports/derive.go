package reports

import (
	"fmt"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/resource"
)

// monthNames is the fixed label table indexed by month-1. Months outside
// 1..12 are a caller error.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthLabel renders "January 2024" style labels for monthly rows.
func MonthLabel(month, year int) string {
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

// DiagnosisPercentage is the share of all patients carrying a diagnosis,
// 0 when there are no patients.
func DiagnosisPercentage(patientCount, totalPatients int) float64 {
	if totalPatients <= 0 {
		return 0
	}
	return float64(patientCount) / float64(totalPatients) * 100
}

// AverageVisitsPerPatient is visits/patients for one doctor, 0 when the
// doctor has no patients.
func AverageVisitsPerPatient(totalVisits, totalPatients int) float64 {
	if totalPatients <= 0 {
		return 0
	}
	return float64(totalVisits) / float64(totalPatients)
}

// derive reshapes the fetched rows into the combined dataset.
func derive(
	stats resource.DashboardStats,
	doctors []model.Doctor,
	diagnoses []resource.DiagnosisCount,
	familyCounts []resource.DoctorPatientCount,
	visitCounts []resource.DoctorVisitCount,
	sickLeaveCounts []resource.DoctorSickLeaveCount,
	insurance resource.InsuranceStats,
	topPatients []resource.PatientVisitCount,
	monthly []resource.MonthlySickLeaveStats,
	doctorSick []resource.DoctorSickLeaveStats,
	rangeRows []resource.VisitsByDateRow,
) *Data {
	d := &Data{
		TotalPatients:   stats.TotalPatients,
		TotalVisits:     stats.TotalVisits,
		TotalDoctors:    stats.TotalDoctors,
		TotalSickLeaves: stats.TotalSickLeaves,
		InsuranceStats:  insurance,
	}

	for _, doc := range doctors {
		d.Doctors = append(d.Doctors, DoctorSummary{
			ID:        doc.ID,
			Name:      doc.Name,
			Specialty: doc.Specialty,
		})
	}

	for _, row := range diagnoses {
		d.MostCommonDiagnoses = append(d.MostCommonDiagnoses, DiagnosisShare{
			DiagnosisName: row.Diagnosis.Name,
			Count:         row.PatientCount,
			Percentage:    DiagnosisPercentage(row.PatientCount, stats.TotalPatients),
		})
		d.PatientsByDiagnosis = append(d.PatientsByDiagnosis, DiagnosisPatients{
			DiagnosisName: row.Diagnosis.Name,
			PatientCount:  row.PatientCount,
		})
	}

	visitsByDoctor := make(map[int64]int, len(visitCounts))
	for _, row := range visitCounts {
		visitsByDoctor[row.Doctor.ID] = row.VisitCount
	}
	patientsByDoctor := make(map[int64]int, len(familyCounts))
	for _, row := range familyCounts {
		patientsByDoctor[row.Doctor.ID] = row.PatientCount
	}
	sickLeavesByDoctor := make(map[int64]int, len(sickLeaveCounts))
	for _, row := range sickLeaveCounts {
		sickLeavesByDoctor[row.Doctor.ID] = row.SickLeaveCount
	}

	for _, doc := range doctors {
		visits := visitsByDoctor[doc.ID]
		patients := patientsByDoctor[doc.ID]
		d.DoctorStatistics = append(d.DoctorStatistics, DoctorStatistics{
			ID:                      doc.ID,
			DoctorName:              doc.Name,
			Specialty:               doc.Specialty,
			TotalVisits:             visits,
			TotalPatients:           patients,
			SickLeavesIssued:        sickLeavesByDoctor[doc.ID],
			AverageVisitsPerPatient: AverageVisitsPerPatient(visits, patients),
		})
	}

	for _, row := range topPatients {
		d.PatientsWithMostVisits = append(d.PatientsWithMostVisits, PatientVisits{
			PatientName: row.Patient.Name,
			VisitCount:  row.VisitCount,
		})
	}

	for _, row := range monthly {
		d.SickLeaveByMonth = append(d.SickLeaveByMonth, MonthlySickLeave{
			Month:       MonthLabel(row.Month, row.Year),
			Count:       row.Count,
			TotalDays:   row.TotalDays,
			AverageDays: row.AverageDays,
		})
	}

	for _, row := range doctorSick {
		d.DoctorSickLeaveStats = append(d.DoctorSickLeaveStats, DoctorSickLeave{
			DoctorName:     row.Doctor.Name,
			SickLeaveCount: row.SickLeaveCount,
			TotalDays:      row.TotalDays,
			AverageDays:    row.AverageDays,
		})
	}

	// Skipped date-range query contributes an empty list, never nil rows
	d.VisitsByDateRange = make([]resource.VisitsByDateRow, 0, len(rangeRows))
	d.VisitsByDateRange = append(d.VisitsByDateRange, rangeRows...)

	return d
}
