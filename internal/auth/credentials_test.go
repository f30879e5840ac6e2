package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/internal/auth"
	"github.com/dialpro/apiserver/types"
)

func TestVerifyDemoMode(t *testing.T) {
	verifier := auth.NewVerifier(config.AuthModeDemo)

	tests := map[string]struct {
		email    string
		password string
		role     types.Role
		wantName string
		wantErr  bool
	}{
		"AdminDemoCredential": {
			email:    "admin@company.com",
			password: "demo123",
			role:     types.RoleAdmin,
			wantName: "Admin User",
		},
		"EmployeeDemoCredential": {
			email:    "employee@company.com",
			password: "demo123",
			role:     types.RoleEmployee,
			wantName: "John Smith",
		},
		"EmailIsCaseInsensitive": {
			email:    "Admin@Company.COM",
			password: "demo123",
			role:     types.RoleAdmin,
			wantName: "Admin User",
		},
		"WellFormedEmailFallback": {
			email:    "someone@example.org",
			password: "whatever",
			role:     types.RoleEmployee,
			wantName: "John Smith",
		},
		"FallbackForAdminRole": {
			email:    "boss@example.org",
			password: "whatever",
			role:     types.RoleAdmin,
			wantName: "Admin User",
		},
		"MalformedEmailRejected": {
			email:    "not-an-email",
			password: "demo123",
			role:     types.RoleEmployee,
			wantErr:  true,
		},
		"EmptyPasswordRejected": {
			email:    "admin@company.com",
			password: "",
			role:     types.RoleAdmin,
			wantErr:  true,
		},
		"UnknownRoleRejected": {
			email:    "admin@company.com",
			password: "demo123",
			role:     types.Role("superuser"),
			wantErr:  true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			user, err := verifier.Verify(tc.email, tc.password, tc.role)
			if tc.wantErr {
				assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.role, user.Role)
			assert.Equal(t, tc.wantName, user.Name)
		})
	}
}

func TestVerifyStrictMode(t *testing.T) {
	verifier := auth.NewVerifier(config.AuthModeStrict)

	// Demo table still works.
	user, err := verifier.Verify("admin@company.com", "demo123", types.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Admin User", user.Name)

	// The permissive email fallback is disabled.
	_, err = verifier.Verify("someone@example.org", "whatever", types.RoleEmployee)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Wrong password for a known account no longer falls through.
	_, err = verifier.Verify("admin@company.com", "wrong", types.RoleAdmin)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestVerifyRoleMismatchUsesFallback(t *testing.T) {
	verifier := auth.NewVerifier(config.AuthModeDemo)

	// The demo admin logging in as employee is not in the table for that
	// role, but the address shape still admits it in demo mode.
	user, err := verifier.Verify("admin@company.com", "demo123", types.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, types.RoleEmployee, user.Role)
	assert.Equal(t, "John Smith", user.Name)
}
