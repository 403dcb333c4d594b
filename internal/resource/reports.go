package resource

import (
	"context"
	"fmt"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/shared/types"
)

// Report rows are read-only aggregates; the backend computes them and the
// client never persists them. They all share the Reports tag.

// DashboardStats are the top-level counters.
type DashboardStats struct {
	TotalDoctors    int `json:"totalDoctors"`
	TotalPatients   int `json:"totalPatients"`
	TotalVisits     int `json:"totalVisits"`
	TotalSickLeaves int `json:"totalSickLeaves"`
}

// DiagnosisCount pairs a diagnosis with how many patients carry it.
type DiagnosisCount struct {
	Diagnosis    model.Diagnosis `json:"diagnosis"`
	PatientCount int             `json:"patientCount"`
}

// DoctorPatientCount pairs a doctor with their registered patient count.
type DoctorPatientCount struct {
	Doctor       model.Doctor `json:"doctor"`
	PatientCount int          `json:"patientCount"`
}

// DoctorVisitCount pairs a doctor with their visit count.
type DoctorVisitCount struct {
	Doctor     model.Doctor `json:"doctor"`
	VisitCount int          `json:"visitCount"`
}

// DoctorSickLeaveCount pairs a doctor with their issued sick leave count.
type DoctorSickLeaveCount struct {
	Doctor         model.Doctor `json:"doctor"`
	SickLeaveCount int          `json:"sickLeaveCount"`
}

// MonthlyCount is a per-month counter.
type MonthlyCount struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MonthlySickLeaveStats extends the monthly counter with day totals.
type MonthlySickLeaveStats struct {
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Count       int     `json:"count"`
	TotalDays   int     `json:"totalDays"`
	AverageDays float64 `json:"averageDays"`
}

// DoctorRef is the compact doctor shape used inside report rows.
type DoctorRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// DoctorSickLeaveStats carries per-doctor sick leave day totals.
type DoctorSickLeaveStats struct {
	Doctor         DoctorRef `json:"doctor"`
	SickLeaveCount int       `json:"sickLeaveCount"`
	TotalDays      int       `json:"totalDays"`
	AverageDays    float64   `json:"averageDays"`
}

// PatientRef is the compact patient shape used inside report rows.
type PatientRef struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	EGN  types.EGN `json:"egn"`
}

// PatientVisitCount pairs a patient with their visit count.
type PatientVisitCount struct {
	Patient    PatientRef `json:"patient"`
	VisitCount int        `json:"visitCount"`
}

// InsuranceStats are the health insurance payment counters.
type InsuranceStats struct {
	PaidCount   int     `json:"paidCount"`
	UnpaidCount int     `json:"unpaidCount"`
	PaymentRate float64 `json:"paymentRate"`
}

// VisitsByDateRow is one day of the date-range visit report.
type VisitsByDateRow struct {
	VisitDate        types.Date `json:"visitDate"`
	VisitCount       int        `json:"visitCount"`
	UniquePatients   int        `json:"uniquePatients"`
	UniqueDoctors    int        `json:"uniqueDoctors"`
	SickLeavesIssued int        `json:"sickLeavesIssued"`
}

// DashboardStatsReport fetches the dashboard counters.
func (c *Client) DashboardStatsReport(ctx context.Context) (DashboardStats, error) {
	return fetchCached[DashboardStats](ctx, c, TagReports, "/reports/dashboard-stats")
}

// MostCommonDiagnoses fetches the most frequently diagnosed diagnoses.
func (c *Client) MostCommonDiagnoses(ctx context.Context) ([]DiagnosisCount, error) {
	return fetchCached[[]DiagnosisCount](ctx, c, TagReports, "/reports/most-common-diagnoses")
}

// FamilyDoctorPatientCounts fetches patient counts per family doctor.
func (c *Client) FamilyDoctorPatientCounts(ctx context.Context) ([]DoctorPatientCount, error) {
	return fetchCached[[]DoctorPatientCount](ctx, c, TagReports, "/reports/family-doctor-patient-counts")
}

// DoctorVisitCounts fetches visit counts per doctor.
func (c *Client) DoctorVisitCounts(ctx context.Context) ([]DoctorVisitCount, error) {
	return fetchCached[[]DoctorVisitCount](ctx, c, TagReports, "/reports/doctor-visit-counts")
}

// DoctorsWithMostSickLeaves fetches the doctors who issued the most sick
// leaves.
func (c *Client) DoctorsWithMostSickLeaves(ctx context.Context) ([]DoctorSickLeaveCount, error) {
	return fetchCached[[]DoctorSickLeaveCount](ctx, c, TagReports, "/reports/doctors-most-sick-leaves")
}

// MonthWithMostSickLeaves fetches the month with the most issued sick
// leaves.
func (c *Client) MonthWithMostSickLeaves(ctx context.Context) (MonthlyCount, error) {
	return fetchCached[MonthlyCount](ctx, c, TagReports, "/reports/month-most-sick-leaves")
}

// SickLeavesByMonth fetches the monthly sick leave counts.
func (c *Client) SickLeavesByMonth(ctx context.Context) ([]MonthlyCount, error) {
	return fetchCached[[]MonthlyCount](ctx, c, TagReports, "/reports/sick-leaves-by-month")
}

// DetailedSickLeavesByMonth fetches monthly sick leave rows with day
// totals.
func (c *Client) DetailedSickLeavesByMonth(ctx context.Context) ([]MonthlySickLeaveStats, error) {
	return fetchCached[[]MonthlySickLeaveStats](ctx, c, TagReports, "/reports/sick-leaves-detailed-monthly")
}

// DetailedDoctorSickLeaveStats fetches per-doctor sick leave rows with
// day totals.
func (c *Client) DetailedDoctorSickLeaveStats(ctx context.Context) ([]DoctorSickLeaveStats, error) {
	return fetchCached[[]DoctorSickLeaveStats](ctx, c, TagReports, "/reports/doctors-sick-leaves-detailed")
}

// PatientsWithMostVisits fetches the patients with the most visits.
func (c *Client) PatientsWithMostVisits(ctx context.Context) ([]PatientVisitCount, error) {
	return fetchCached[[]PatientVisitCount](ctx, c, TagReports, "/reports/patients-most-visits")
}

// InsuranceStatsReport fetches the insurance payment counters.
func (c *Client) InsuranceStatsReport(ctx context.Context) (InsuranceStats, error) {
	return fetchCached[InsuranceStats](ctx, c, TagReports, "/reports/insurance-stats")
}

// VisitsByDateRangeReport fetches the per-day visit report for
// [start, end].
func (c *Client) VisitsByDateRangeReport(ctx context.Context, start, end types.Date) ([]VisitsByDateRow, error) {
	path := datePath("/reports/visits-by-date-range", start.String(), end.String())
	return fetchCached[[]VisitsByDateRow](ctx, c, TagReports, path)
}

// VisitsByDoctorAndDateRangeReport fetches one doctor's visits within
// [start, end].
func (c *Client) VisitsByDoctorAndDateRangeReport(ctx context.Context, doctorID int64, start, end types.Date) ([]model.MedicalVisit, error) {
	path := fmt.Sprintf("/reports/visits-by-doctor-and-date-range?doctorId=%d&startDate=%s&endDate=%s", doctorID, start, end)
	return fetchCached[[]model.MedicalVisit](ctx, c, TagReports, path)
}

// ReportPatientsByDiagnosis fetches the patients carrying a diagnosis.
func (c *Client) ReportPatientsByDiagnosis(ctx context.Context, diagnosisID int64) ([]model.Patient, error) {
	return fetchCached[[]model.Patient](ctx, c, TagReports, fmt.Sprintf("/reports/patients-by-diagnosis/%d", diagnosisID))
}

// ReportPatientsByFamilyDoctor fetches the patients of a family doctor.
func (c *Client) ReportPatientsByFamilyDoctor(ctx context.Context, doctorID int64) ([]model.Patient, error) {
	return fetchCached[[]model.Patient](ctx, c, TagReports, fmt.Sprintf("/reports/patients-by-family-doctor/%d", doctorID))
}
