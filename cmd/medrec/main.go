// Command medrec is a terminal client for the clinical records backend.
// It signs in, keeps the session across invocations, and renders the
// sections the active role is allowed to see.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medrec/medrec/internal/model"
	"github.com/medrec/medrec/internal/policy"
	"github.com/medrec/medrec/internal/reports"
	"github.com/medrec/medrec/internal/resource"
	"github.com/medrec/medrec/internal/session"
	"github.com/medrec/medrec/internal/shared/config"
	"github.com/medrec/medrec/internal/shared/metrics"
	"github.com/medrec/medrec/internal/shared/types"
)

type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *session.Store
	client *resource.Client
	agg    *reports.Aggregator
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	store := session.NewStore(cfg.Session.File, log)
	store.Restore()

	client := resource.New(cfg.API, store, log)

	if cfg.Metrics.ListenAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				log.Warn().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	return &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		client: client,
		agg:    reports.New(client, log),
	}, nil
}

func main() {
	var a *app

	root := &cobra.Command{
		Use:           "medrec",
		Short:         "Client for the clinical records service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp()
			return err
		},
	}

	root.AddCommand(
		loginCmd(&a),
		logoutCmd(&a),
		whoamiCmd(&a),
		navCmd(&a),
		doctorsCmd(&a),
		patientsCmd(&a),
		visitsCmd(&a),
		reportsCmd(&a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loginCmd(a **app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			app.store.BeginAuthentication()
			resp, err := app.client.SignIn(cmd.Context(), model.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				app.store.Fail()
				return err
			}

			roles := make([]session.Role, 0, len(resp.Roles))
			for _, r := range resp.Roles {
				roles = append(roles, session.Role(r))
			}
			sess := &session.Session{
				ID:        resp.ID,
				Username:  resp.Username,
				Email:     resp.Email,
				Roles:     roles,
				DoctorID:  resp.DoctorID,
				PatientID: resp.PatientID,
				Token:     resp.Token,
			}
			if err := app.store.Establish(sess); err != nil {
				return err
			}
			fmt.Printf("signed in as %s (%s)\n", sess.Username, joinRoles(sess.Roles))
			fmt.Printf("default view: %s\n", policy.DefaultRoute(sess))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).store.Clear(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session and its permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := (*a).store.Current()
			if !s.IsAuthenticated() {
				fmt.Println("not signed in")
				return nil
			}
			fmt.Printf("user: %s <%s>\n", s.Username, s.Email)
			fmt.Printf("roles: %s\n", joinRoles(s.Roles))
			fmt.Printf("view all data: %v\n", s.CanViewAllData())
			fmt.Printf("edit all data: %v\n", s.CanEditAllData())
			fmt.Printf("edit own data: %v\n", s.CanEditOwnData())
			return nil
		},
	}
}

func navCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Show the sections visible to the active role",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := (*a).store.Current()
			entries := policy.Navigation(s)
			if len(entries) == 0 {
				fmt.Println("no session: only the login view is available")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tSCOPE\tCREATE\tEDIT\tDELETE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%v\n", e.Section, e.Scope, e.CanCreate, e.CanEdit, e.CanDelete)
			}
			w.Flush()
			fmt.Printf("default view: %s\n", policy.DefaultRoute(s))
			return nil
		},
	}
}

// requireView guards list commands with the policy table; a denied role
// gets an inline notice, not a hard failure.
func requireView(a *app, section policy.Section) bool {
	if policy.Allowed(a.store.Current(), section, policy.ActionView) {
		return true
	}
	fmt.Printf("no permission to view %s\n", section)
	return false
}

func doctorsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if !requireView(app, policy.SectionDoctors) {
				return nil
			}
			doctors, err := app.client.Doctors(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALTY\tFAMILY DOCTOR")
			for _, d := range doctors {
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", d.ID, d.Name, d.Specialty, d.IsFamilyDoctor)
			}
			return w.Flush()
		},
	}
}

func patientsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "patients",
		Short: "List patients in the role's data scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if !requireView(app, policy.SectionPatients) {
				return nil
			}
			s := app.store.Current()

			var (
				patients []model.Patient
				err      error
			)
			entry, _ := policy.Lookup(s, policy.SectionPatients)
			if entry.Scope == policy.ScopeOwn {
				patients, err = app.client.PatientsByFamilyDoctor(cmd.Context(), s.DoctorID)
			} else {
				patients, err = app.client.Patients(cmd.Context())
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEGN\tINSURED\tFAMILY DOCTOR")
			for _, p := range patients {
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n", p.ID, p.Name, p.EGN.Masked(), p.HealthInsurancePaid, p.FamilyDoctorName)
			}
			return w.Flush()
		},
	}
}

func visitsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "visits",
		Short: "List medical visits in the role's data scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if !requireView(app, policy.SectionVisits) {
				return nil
			}
			s := app.store.Current()

			var (
				visits []model.MedicalVisit
				err    error
			)
			entry, _ := policy.Lookup(s, policy.SectionVisits)
			switch {
			case entry.Scope == policy.ScopeOwn && s.IsDoctor():
				visits, err = app.client.MedicalVisitsByDoctor(cmd.Context(), s.DoctorID)
			case entry.Scope == policy.ScopeOwn && s.IsPatient():
				visits, err = app.client.MedicalVisitsByPatient(cmd.Context(), s.PatientID)
			default:
				visits, err = app.client.MedicalVisits(cmd.Context())
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tPATIENT\tDOCTOR\tDIAGNOSIS\tSICK LEAVE")
			for _, v := range visits {
				leave := "-"
				if v.SickLeave != nil {
					leave = fmt.Sprintf("%s .. %s", v.SickLeave.StartDate, v.SickLeave.End())
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.VisitDate, v.PatientName, v.DoctorName, v.DiagnosisName, leave)
			}
			return w.Flush()
		},
	}
}

func reportsCmd(a **app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Fetch and render the reports dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if !requireView(app, policy.SectionReports) {
				return nil
			}

			var filters reports.Filters
			if from != "" {
				d, err := types.ParseDate(from)
				if err != nil {
					return err
				}
				filters.DateFrom = &d
			}
			if to != "" {
				d, err := types.ParseDate(to)
				if err != nil {
					return err
				}
				filters.DateTo = &d
			}

			view := app.agg.Fetch(cmd.Context(), filters)
			if view.Err != nil {
				return view.Err
			}
			renderReports(view.Data)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "date range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "date range end (YYYY-MM-DD)")
	return cmd
}

func renderReports(d *reports.Data) {
	fmt.Printf("patients: %d  visits: %d  doctors: %d  sick leaves: %d\n\n",
		d.TotalPatients, d.TotalVisits, d.TotalDoctors, d.TotalSickLeaves)

	fmt.Println("most common diagnoses")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DIAGNOSIS\tPATIENTS\tSHARE")
	for _, row := range d.MostCommonDiagnoses {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", row.DiagnosisName, row.Count, row.Percentage)
	}
	w.Flush()

	fmt.Println("\ndoctor statistics")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOCTOR\tSPECIALTY\tVISITS\tPATIENTS\tSICK LEAVES\tAVG VISITS/PATIENT")
	for _, row := range d.DoctorStatistics {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\n",
			row.DoctorName, row.Specialty, row.TotalVisits, row.TotalPatients, row.SickLeavesIssued, row.AverageVisitsPerPatient)
	}
	w.Flush()

	fmt.Println("\nsick leaves by month")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tCOUNT\tTOTAL DAYS\tAVG DAYS")
	for _, row := range d.SickLeaveByMonth {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\n", row.Month, row.Count, row.TotalDays, row.AverageDays)
	}
	w.Flush()

	fmt.Printf("\ninsurance: %d paid, %d unpaid (%.1f%% payment rate)\n",
		d.InsuranceStats.PaidCount, d.InsuranceStats.UnpaidCount, d.InsuranceStats.PaymentRate)

	if len(d.VisitsByDateRange) > 0 {
		fmt.Println("\nvisits in selected range")
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tVISITS\tPATIENTS\tDOCTORS\tSICK LEAVES")
		for _, row := range d.VisitsByDateRange {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
				row.VisitDate, row.VisitCount, row.UniquePatients, row.UniqueDoctors, row.SickLeavesIssued)
		}
		w.Flush()
	}
}

func joinRoles(roles []session.Role) string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return strings.Join(out, ", ")
}
