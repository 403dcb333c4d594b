// Package session holds the authenticated identity and its role
// predicates. Predicates are pure functions of the role set and fail
// closed: a nil session answers false to everything.
package session

// Role represents a user role tag as issued by the backend.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleDoctor  Role = "ROLE_DOCTOR"
	RolePatient Role = "ROLE_PATIENT"
)

// Session represents the authenticated identity of this client.
type Session struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`

	// Linked profile ids; zero when the account has no such profile
	DoctorID  int64 `json:"doctorId,omitempty"`
	PatientID int64 `json:"patientId,omitempty"`

	Token string `json:"token"`
}

// HasRole reports whether the session carries the given role.
func (s *Session) HasRole(r Role) bool {
	if s == nil {
		return false
	}
	for _, have := range s.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the session carries any of the given roles.
func (s *Session) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if s.HasRole(r) {
			return true
		}
	}
	return false
}

func (s *Session) IsAdmin() bool   { return s.HasRole(RoleAdmin) }
func (s *Session) IsDoctor() bool  { return s.HasRole(RoleDoctor) }
func (s *Session) IsPatient() bool { return s.HasRole(RolePatient) }

// CanViewAllData reports whether the session may read records beyond its
// own: admins and doctors.
func (s *Session) CanViewAllData() bool {
	return s.IsAdmin() || s.IsDoctor()
}

// CanEditAllData reports whether the session may modify any record:
// admins only.
func (s *Session) CanEditAllData() bool {
	return s.IsAdmin()
}

// CanEditOwnData reports whether the session may modify records it owns:
// doctors and patients.
func (s *Session) CanEditOwnData() bool {
	return s.IsDoctor() || s.IsPatient()
}

// IsAuthenticated reports whether this is a usable session. A token
// implies a non-empty role set; a record violating that is not usable.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && len(s.Roles) > 0
}
