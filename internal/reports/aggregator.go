// Package reports fetches the fixed batch of report queries and reshapes
// the rows for presentation.
package reports

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/resource"
	"github.com/medrec/medrec/internal/shared/metrics"
)

// ErrReportsFailed is the collapsed error of a combined fetch: callers
// get one retryable failure, not a per-query breakdown.
var ErrReportsFailed = errors.New("failed to load reports data")

// Aggregator issues the report batch against the resource layer.
type Aggregator struct {
	client *resource.Client
	log    zerolog.Logger
}

// New creates an aggregator.
func New(client *resource.Client, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		client: client,
		log:    log.With().Str("component", "reports").Logger(),
	}
}

// View is the combined result of one batch: the reshaped data, a single
// collapsed error if any constituent query failed, and a refetch action
// that re-issues every constituent query.
type View struct {
	Data *Data
	Err  error

	agg     *Aggregator
	filters Filters
}

// Refetch re-issues every constituent query, bypassing cached results.
func (v *View) Refetch(ctx context.Context) *View {
	v.agg.client.Invalidate(ctx, resource.TagReports, resource.TagDoctor)
	return v.agg.Fetch(ctx, v.filters)
}

// Fetch runs the whole batch concurrently and blocks until every
// constituent query has settled. The date-range query is only issued
// when both filter dates are present; when skipped, its contribution is
// an empty list, not a failure.
func (a *Aggregator) Fetch(ctx context.Context, f Filters) *View {
	start := time.Now()

	var (
		stats           resource.DashboardStats
		doctors         []model.Doctor
		diagnoses       []resource.DiagnosisCount
		familyCounts    []resource.DoctorPatientCount
		visitCounts     []resource.DoctorVisitCount
		sickLeaveCounts []resource.DoctorSickLeaveCount
		insurance       resource.InsuranceStats
		topPatients     []resource.PatientVisitCount
		monthly         []resource.MonthlySickLeaveStats
		doctorSick      []resource.DoctorSickLeaveStats
		rangeRows       []resource.VisitsByDateRow
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures int

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				a.log.Warn().Err(err).Str("query", name).Msg("report query failed")
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}

	run("dashboard-stats", func() error {
		v, err := a.client.DashboardStatsReport(ctx)
		stats = v
		return err
	})
	run("doctors", func() error {
		v, err := a.client.Doctors(ctx)
		doctors = v
		return err
	})
	run("most-common-diagnoses", func() error {
		v, err := a.client.MostCommonDiagnoses(ctx)
		diagnoses = v
		return err
	})
	run("family-doctor-patient-counts", func() error {
		v, err := a.client.FamilyDoctorPatientCounts(ctx)
		familyCounts = v
		return err
	})
	run("doctor-visit-counts", func() error {
		v, err := a.client.DoctorVisitCounts(ctx)
		visitCounts = v
		return err
	})
	run("doctors-most-sick-leaves", func() error {
		v, err := a.client.DoctorsWithMostSickLeaves(ctx)
		sickLeaveCounts = v
		return err
	})
	run("insurance-stats", func() error {
		v, err := a.client.InsuranceStatsReport(ctx)
		insurance = v
		return err
	})
	run("patients-most-visits", func() error {
		v, err := a.client.PatientsWithMostVisits(ctx)
		topPatients = v
		return err
	})
	run("sick-leaves-detailed-monthly", func() error {
		v, err := a.client.DetailedSickLeavesByMonth(ctx)
		monthly = v
		return err
	})
	run("doctors-sick-leaves-detailed", func() error {
		v, err := a.client.DetailedDoctorSickLeaveStats(ctx)
		doctorSick = v
		return err
	})
	if f.DateFrom != nil && f.DateTo != nil {
		run("visits-by-date-range", func() error {
			v, err := a.client.VisitsByDateRangeReport(ctx, *f.DateFrom, *f.DateTo)
			rangeRows = v
			return err
		})
	}

	wg.Wait()
	metrics.RecordReportBatch(time.Since(start), failures > 0)

	view := &View{agg: a, filters: f}
	if failures > 0 {
		view.Err = ErrReportsFailed
	}
	if view.Err == nil {
		view.Data = derive(stats, doctors, diagnoses, familyCounts, visitCounts,
			sickLeaveCounts, insurance, topPatients, monthly, doctorSick, rangeRows)
	}
	return view
}
