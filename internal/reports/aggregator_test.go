package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/resource"
	"github.com/medrec/medrec/internal/shared/config"
	"github.com/medrec/medrec/internal/shared/types"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// reportsBackend is a fake backend serving every report endpoint with a
// small consistent dataset, counting hits per path.
type reportsBackend struct {
	router *chi.Mux
	hits   map[string]*atomic.Int64

	failDashboard atomic.Bool
}

func newReportsBackend(t *testing.T) *reportsBackend {
	t.Helper()
	b := &reportsBackend{
		router: chi.NewRouter(),
		hits:   make(map[string]*atomic.Int64),
	}

	serve := func(path string, payload func() any) {
		counter := &atomic.Int64{}
		b.hits[path] = counter
		b.router.Get(path, func(w http.ResponseWriter, req *http.Request) {
			counter.Add(1)
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(payload()); err != nil {
				t.Errorf("encode %s: %v", path, err)
			}
		})
	}

	b.router.Get("/reports/dashboard-stats", func(w http.ResponseWriter, req *http.Request) {
		b.hits["/reports/dashboard-stats"].Add(1)
		if b.failDashboard.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resource.DashboardStats{
			TotalDoctors: 2, TotalPatients: 10, TotalVisits: 25, TotalSickLeaves: 4,
		})
	})
	b.hits["/reports/dashboard-stats"] = &atomic.Int64{}

	serve("/doctors", func() any {
		return []model.Doctor{
			{ID: 1, Name: "Dr. Petrova", Specialty: "Cardiology"},
			{ID: 2, Name: "Dr. Georgiev", Specialty: "Neurology"},
		}
	})
	serve("/reports/most-common-diagnoses", func() any {
		return []resource.DiagnosisCount{
			{Diagnosis: model.Diagnosis{ID: 1, Code: "J06", Name: "Acute infection"}, PatientCount: 5},
			{Diagnosis: model.Diagnosis{ID: 2, Code: "I10", Name: "Hypertension"}, PatientCount: 2},
		}
	})
	serve("/reports/family-doctor-patient-counts", func() any {
		return []resource.DoctorPatientCount{
			{Doctor: model.Doctor{ID: 1, Name: "Dr. Petrova"}, PatientCount: 6},
		}
	})
	serve("/reports/doctor-visit-counts", func() any {
		return []resource.DoctorVisitCount{
			{Doctor: model.Doctor{ID: 1, Name: "Dr. Petrova"}, VisitCount: 15},
			{Doctor: model.Doctor{ID: 2, Name: "Dr. Georgiev"}, VisitCount: 10},
		}
	})
	serve("/reports/doctors-most-sick-leaves", func() any {
		return []resource.DoctorSickLeaveCount{
			{Doctor: model.Doctor{ID: 1, Name: "Dr. Petrova"}, SickLeaveCount: 3},
		}
	})
	serve("/reports/insurance-stats", func() any {
		return resource.InsuranceStats{PaidCount: 8, UnpaidCount: 2, PaymentRate: 80}
	})
	serve("/reports/patients-most-visits", func() any {
		return []resource.PatientVisitCount{
			{Patient: resource.PatientRef{ID: 1, Name: "Ivan Ivanov"}, VisitCount: 7},
		}
	})
	serve("/reports/sick-leaves-detailed-monthly", func() any {
		return []resource.MonthlySickLeaveStats{
			{Month: 3, Year: 2024, Count: 2, TotalDays: 12, AverageDays: 6},
		}
	})
	serve("/reports/doctors-sick-leaves-detailed", func() any {
		return []resource.DoctorSickLeaveStats{
			{Doctor: resource.DoctorRef{ID: 1, Name: "Dr. Petrova"}, SickLeaveCount: 3, TotalDays: 15, AverageDays: 5},
		}
	})
	serve("/reports/visits-by-date-range", func() any {
		return []resource.VisitsByDateRow{
			{VisitDate: types.NewDate(2024, time.March, 1), VisitCount: 3, UniquePatients: 3, UniqueDoctors: 2, SickLeavesIssued: 1},
		}
	})

	return b
}

func newTestAggregator(t *testing.T, b *reportsBackend) *Aggregator {
	t.Helper()
	srv := httptest.NewServer(b.router)
	t.Cleanup(srv.Close)
	client := resource.New(config.APIConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, staticToken("tok"), zerolog.Nop())
	return New(client, zerolog.Nop())
}

func TestFetchCombinesAllQueries(t *testing.T) {
	b := newReportsBackend(t)
	agg := newTestAggregator(t, b)

	view := agg.Fetch(context.Background(), Filters{})
	if view.Err != nil {
		t.Fatalf("Fetch: %v", view.Err)
	}
	d := view.Data

	if d.TotalPatients != 10 || d.TotalVisits != 25 || d.TotalDoctors != 2 || d.TotalSickLeaves != 4 {
		t.Errorf("counters = %+v", d)
	}

	if len(d.MostCommonDiagnoses) != 2 {
		t.Fatalf("diagnoses = %d rows, want 2", len(d.MostCommonDiagnoses))
	}
	if d.MostCommonDiagnoses[0].Percentage != 50 {
		t.Errorf("top diagnosis share = %v%%, want 50%%", d.MostCommonDiagnoses[0].Percentage)
	}

	if len(d.DoctorStatistics) != 2 {
		t.Fatalf("doctor statistics = %d rows, want 2", len(d.DoctorStatistics))
	}
	petrova := d.DoctorStatistics[0]
	if petrova.DoctorName != "Dr. Petrova" || petrova.TotalVisits != 15 || petrova.TotalPatients != 6 {
		t.Errorf("joined doctor row = %+v", petrova)
	}
	if petrova.AverageVisitsPerPatient != 2.5 {
		t.Errorf("average visits per patient = %v, want 2.5", petrova.AverageVisitsPerPatient)
	}
	// Dr. Georgiev has visits but no registered patients: average stays 0.
	georgiev := d.DoctorStatistics[1]
	if georgiev.TotalPatients != 0 || georgiev.AverageVisitsPerPatient != 0 {
		t.Errorf("doctor without patients = %+v", georgiev)
	}

	if len(d.SickLeaveByMonth) != 1 || d.SickLeaveByMonth[0].Month != "March 2024" {
		t.Errorf("monthly rows = %+v", d.SickLeaveByMonth)
	}
	if d.InsuranceStats.PaymentRate != 80 {
		t.Errorf("payment rate = %v, want 80", d.InsuranceStats.PaymentRate)
	}
}

// Without both filter dates the date-range query is not issued and its
// contribution is an empty, non-nil list.
func TestDateRangeQuerySkippedWithoutBothBounds(t *testing.T) {
	from := types.NewDate(2024, time.March, 1)

	tests := []struct {
		name    string
		filters Filters
	}{
		{"no dates", Filters{}},
		{"only from", Filters{DateFrom: &from}},
		{"only to", Filters{DateTo: &from}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newReportsBackend(t)
			agg := newTestAggregator(t, b)

			view := agg.Fetch(context.Background(), tt.filters)
			if view.Err != nil {
				t.Fatalf("Fetch: %v", view.Err)
			}
			if hits := b.hits["/reports/visits-by-date-range"].Load(); hits != 0 {
				t.Errorf("date-range endpoint hit %d times, want 0", hits)
			}
			if view.Data.VisitsByDateRange == nil {
				t.Error("skipped range query must contribute an empty list, not nil")
			}
			if len(view.Data.VisitsByDateRange) != 0 {
				t.Errorf("range rows = %d, want 0", len(view.Data.VisitsByDateRange))
			}
		})
	}
}

func TestDateRangeQueryIssuedWithBothBounds(t *testing.T) {
	b := newReportsBackend(t)
	agg := newTestAggregator(t, b)

	from := types.NewDate(2024, time.March, 1)
	to := types.NewDate(2024, time.March, 31)
	view := agg.Fetch(context.Background(), Filters{DateFrom: &from, DateTo: &to})
	if view.Err != nil {
		t.Fatalf("Fetch: %v", view.Err)
	}
	if hits := b.hits["/reports/visits-by-date-range"].Load(); hits != 1 {
		t.Errorf("date-range endpoint hit %d times, want 1", hits)
	}
	if len(view.Data.VisitsByDateRange) != 1 {
		t.Errorf("range rows = %d, want 1", len(view.Data.VisitsByDateRange))
	}
}

// One failing constituent collapses the whole batch into a single error;
// the other queries still run to completion.
func TestSingleFailureCollapsesBatch(t *testing.T) {
	b := newReportsBackend(t)
	b.failDashboard.Store(true)
	agg := newTestAggregator(t, b)

	view := agg.Fetch(context.Background(), Filters{})
	if !errors.Is(view.Err, ErrReportsFailed) {
		t.Fatalf("error = %v, want ErrReportsFailed", view.Err)
	}
	if view.Data != nil {
		t.Error("failed batch must not expose partial data")
	}
	if hits := b.hits["/doctors"].Load(); hits != 1 {
		t.Errorf("sibling query hits = %d, want 1 (siblings are not cancelled)", hits)
	}
}

// Refetch bypasses cached report reads and re-issues the batch.
func TestRefetchReissuesQueries(t *testing.T) {
	b := newReportsBackend(t)
	agg := newTestAggregator(t, b)
	ctx := context.Background()

	view := agg.Fetch(ctx, Filters{})
	if view.Err != nil {
		t.Fatalf("Fetch: %v", view.Err)
	}
	if hits := b.hits["/reports/dashboard-stats"].Load(); hits != 1 {
		t.Fatalf("dashboard hits = %d, want 1", hits)
	}

	again := view.Refetch(ctx)
	if again.Err != nil {
		t.Fatalf("Refetch: %v", again.Err)
	}
	if hits := b.hits["/reports/dashboard-stats"].Load(); hits != 2 {
		t.Errorf("dashboard hits after refetch = %d, want 2", hits)
	}
	if hits := b.hits["/doctors"].Load(); hits != 2 {
		t.Errorf("doctors hits after refetch = %d, want 2", hits)
	}
}

// A second Fetch with unchanged filters is served from the cache.
func TestRepeatedFetchUsesCache(t *testing.T) {
	b := newReportsBackend(t)
	agg := newTestAggregator(t, b)
	ctx := context.Background()

	if view := agg.Fetch(ctx, Filters{}); view.Err != nil {
		t.Fatalf("first Fetch: %v", view.Err)
	}
	if view := agg.Fetch(ctx, Filters{}); view.Err != nil {
		t.Fatalf("second Fetch: %v", view.Err)
	}
	if hits := b.hits["/reports/dashboard-stats"].Load(); hits != 1 {
		t.Errorf("dashboard hits = %d, want 1 (second batch cached)", hits)
	}
}
