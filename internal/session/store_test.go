package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewStore(path, zerolog.Nop())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestEstablishThenRestore(t *testing.T) {
	st := testStore(t)
	sess := &Session{
		ID:       7,
		Username: "drwho",
		Email:    "drwho@example.com",
		Roles:    []Role{RoleDoctor},
		DoctorID: 3,
		Token:    signedToken(t, time.Now().Add(time.Hour)),
	}
	if err := st.Establish(sess); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if st.State() != StateAuthenticated {
		t.Errorf("state = %v, want %v", st.State(), StateAuthenticated)
	}

	// A fresh store on the same file resumes the session.
	st2 := NewStore(st.path, zerolog.Nop())
	got := st2.Restore()
	if got == nil {
		t.Fatal("Restore returned nil, want restored session")
	}
	if got.Username != "drwho" || got.DoctorID != 3 {
		t.Errorf("restored %+v, want original session", got)
	}
	if st2.Token() != sess.Token {
		t.Error("restored token does not match")
	}
}

func TestRestoreMissingFile(t *testing.T) {
	st := testStore(t)
	if got := st.Restore(); got != nil {
		t.Errorf("Restore() = %+v, want nil for missing file", got)
	}
	if st.State() != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated", st.State())
	}
}

func TestRestoreDiscardsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"username": `},
		{"missing token", `{"id":1,"username":"x","roles":["ROLE_ADMIN"]}`},
		{"missing roles", `{"id":1,"username":"x","roles":[],"token":"tok"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testStore(t)
			if err := os.WriteFile(st.path, []byte(tt.data), 0o600); err != nil {
				t.Fatal(err)
			}
			if got := st.Restore(); got != nil {
				t.Errorf("Restore() = %+v, want nil", got)
			}
			if _, err := os.Stat(st.path); !os.IsNotExist(err) {
				t.Error("discarded record should have been removed from disk")
			}
		})
	}
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	st := testStore(t)
	sess := &Session{
		ID:       1,
		Username: "old",
		Roles:    []Role{RolePatient},
		Token:    signedToken(t, time.Now().Add(-time.Hour)),
	}
	if err := st.Establish(sess); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	st2 := NewStore(st.path, zerolog.Nop())
	if got := st2.Restore(); got != nil {
		t.Errorf("Restore() = %+v, want nil for expired token", got)
	}
	if _, err := os.Stat(st.path); !os.IsNotExist(err) {
		t.Error("expired record should have been removed from disk")
	}
}

func TestRestoreDiscardsUnparsableToken(t *testing.T) {
	st := testStore(t)
	data := `{"id":1,"username":"x","roles":["ROLE_ADMIN"],"token":"not-a-jwt"}`
	if err := os.WriteFile(st.path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := st.Restore(); got != nil {
		t.Errorf("Restore() = %+v, want nil for unparsable token", got)
	}
}

func TestEstablishRejectsIncompleteSession(t *testing.T) {
	st := testStore(t)
	if err := st.Establish(&Session{Username: "x"}); err == nil {
		t.Fatal("Establish accepted a session without token and roles")
	}
	if st.State() != StateUnauthenticated {
		t.Errorf("state = %v, want unauthenticated", st.State())
	}
}

func TestAuthenticationLifecycle(t *testing.T) {
	st := testStore(t)

	st.BeginAuthentication()
	if st.State() != StateAuthenticating {
		t.Errorf("state = %v, want authenticating", st.State())
	}

	st.Fail()
	if st.State() != StateUnauthenticated || st.Current() != nil {
		t.Error("failed exchange must leave the store unauthenticated")
	}

	sess := &Session{ID: 1, Username: "x", Roles: []Role{RoleAdmin}, Token: "tok"}
	if err := st.Establish(sess); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if st.Current() != nil || st.Token() != "" {
		t.Error("Clear must drop the active session")
	}
	if _, err := os.Stat(st.path); !os.IsNotExist(err) {
		t.Error("Clear must remove the persisted record")
	}
}

func TestTokenWithoutExpClaimIsKept(t *testing.T) {
	tok := jwt.New(jwt.SigningMethodHS256)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if tokenExpired(s) {
		t.Error("token without exp claim must not count as expired")
	}
}
