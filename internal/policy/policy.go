// Package policy is the single source of truth for role-gated view
// composition: which sections a role sees, in what order, with which
// affordances, and where it lands after login.
package policy

import (
	"github.com/medrec/medrec/internal/session"
)

// Section is a navigation destination.
type Section string

const (
	SectionLogin    Section = "login"
	SectionDoctors  Section = "doctors"
	SectionPatients Section = "patients"
	SectionVisits   Section = "visits"
	SectionReports  Section = "reports"
)

// Scope is the data scope a role gets within a section.
type Scope string

const (
	// ScopeAll: every record, read and write per the affordance flags
	ScopeAll Scope = "all"
	// ScopeOwn: records linked to the session's doctor or patient id
	ScopeOwn Scope = "own"
	// ScopeRead: every record, read-only
	ScopeRead Scope = "read"
)

// Action is a mutation affordance.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Entry is one row of the policy table: a visible section and its
// affordances for a role.
type Entry struct {
	Section   Section
	Scope     Scope
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}

// navigation maps each role to its ordered sections and affordances.
var navigation = map[session.Role][]Entry{
	session.RoleAdmin: {
		{Section: SectionDoctors, Scope: ScopeAll, CanCreate: true, CanEdit: true, CanDelete: true},
		{Section: SectionPatients, Scope: ScopeAll, CanCreate: true, CanEdit: true, CanDelete: true},
		{Section: SectionVisits, Scope: ScopeAll, CanCreate: true, CanEdit: true, CanDelete: true},
		{Section: SectionReports, Scope: ScopeAll},
	},
	session.RoleDoctor: {
		{Section: SectionPatients, Scope: ScopeOwn, CanCreate: true, CanEdit: true},
		{Section: SectionVisits, Scope: ScopeOwn, CanCreate: true, CanEdit: true},
		{Section: SectionReports, Scope: ScopeAll},
		{Section: SectionDoctors, Scope: ScopeRead},
	},
	session.RolePatient: {
		{Section: SectionVisits, Scope: ScopeOwn, CanCreate: true},
		{Section: SectionDoctors, Scope: ScopeRead},
	},
}

// rolePrecedence picks the governing role when an account carries more
// than one tag.
var rolePrecedence = []session.Role{
	session.RoleAdmin,
	session.RoleDoctor,
	session.RolePatient,
}

// governingRole returns the effective role of the session, or "" when
// unauthenticated.
func governingRole(s *session.Session) session.Role {
	for _, r := range rolePrecedence {
		if s.HasRole(r) {
			return r
		}
	}
	return ""
}

// Navigation returns the ordered visible sections for the session. An
// absent or roleless session sees nothing.
func Navigation(s *session.Session) []Entry {
	r := governingRole(s)
	if r == "" {
		return nil
	}
	entries := navigation[r]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the policy entry for a section, if the session may see
// it at all.
func Lookup(s *session.Session, section Section) (Entry, bool) {
	for _, e := range Navigation(s) {
		if e.Section == section {
			return e, true
		}
	}
	return Entry{}, false
}

// Allowed reports whether the session may perform the action in the
// section. Unknown sections and absent sessions are denied.
func Allowed(s *session.Session, section Section, action Action) bool {
	e, ok := Lookup(s, section)
	if !ok {
		return false
	}
	switch action {
	case ActionView:
		return true
	case ActionCreate:
		return e.CanCreate
	case ActionEdit:
		return e.CanEdit
	case ActionDelete:
		return e.CanDelete
	default:
		return false
	}
}

// DefaultRoute returns the section shown right after login: visits for
// patients, reports for admins and doctors, the login view otherwise.
func DefaultRoute(s *session.Session) Section {
	switch governingRole(s) {
	case session.RoleAdmin, session.RoleDoctor:
		return SectionReports
	case session.RolePatient:
		return SectionVisits
	default:
		return SectionLogin
	}
}
