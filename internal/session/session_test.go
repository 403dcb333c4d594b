package session

import "testing"

func sessionWith(roles ...Role) *Session {
	return &Session{
		ID:       1,
		Username: "test",
		Email:    "test@example.com",
		Roles:    roles,
		Token:    "tok",
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		name      string
		session   *Session
		isAdmin   bool
		isDoctor  bool
		isPatient bool
	}{
		{"admin", sessionWith(RoleAdmin), true, false, false},
		{"doctor", sessionWith(RoleDoctor), false, true, false},
		{"patient", sessionWith(RolePatient), false, false, true},
		{"admin and doctor", sessionWith(RoleAdmin, RoleDoctor), true, true, false},
		{"no roles", sessionWith(), false, false, false},
		{"nil session", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsAdmin(); got != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.isAdmin)
			}
			if got := tt.session.IsDoctor(); got != tt.isDoctor {
				t.Errorf("IsDoctor() = %v, want %v", got, tt.isDoctor)
			}
			if got := tt.session.IsPatient(); got != tt.isPatient {
				t.Errorf("IsPatient() = %v, want %v", got, tt.isPatient)
			}
		})
	}
}

func TestDataScopePredicates(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		viewAll bool
		editAll bool
		editOwn bool
	}{
		{"admin", sessionWith(RoleAdmin), true, true, false},
		{"doctor", sessionWith(RoleDoctor), true, false, true},
		{"patient", sessionWith(RolePatient), false, false, true},
		{"nil session", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.CanViewAllData(); got != tt.viewAll {
				t.Errorf("CanViewAllData() = %v, want %v", got, tt.viewAll)
			}
			if got := tt.session.CanEditAllData(); got != tt.editAll {
				t.Errorf("CanEditAllData() = %v, want %v", got, tt.editAll)
			}
			if got := tt.session.CanEditOwnData(); got != tt.editOwn {
				t.Errorf("CanEditOwnData() = %v, want %v", got, tt.editOwn)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	s := sessionWith(RoleDoctor)
	if !s.HasAnyRole(RoleAdmin, RoleDoctor) {
		t.Error("expected doctor to match [admin, doctor]")
	}
	if s.HasAnyRole(RoleAdmin, RolePatient) {
		t.Error("expected doctor not to match [admin, patient]")
	}
	var nilSession *Session
	if nilSession.HasAnyRole(RoleAdmin) {
		t.Error("expected nil session to match nothing")
	}
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"complete", sessionWith(RolePatient), true},
		{"missing token", &Session{Roles: []Role{RolePatient}}, false},
		{"missing roles", &Session{Token: "tok"}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsAuthenticated(); got != tt.want {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}
