// Package auth implements the DialPro login rule.
//
// The rule is intentionally permissive in demo mode, matching the
// behavior shipped with the original dashboard: a recognized demo
// credential for the requested role succeeds, and so does any
// syntactically well-formed email address. Strict mode drops the
// fallback and gates on the credential table only.
package auth

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt does not match
// any acceptance rule. It is user-visible and non-fatal.
var ErrInvalidCredentials = errors.New("invalid credentials")

const demoPassword = "demo123"

type demoCredential struct {
	email string
	role  types.Role
	name  string
}

var demoCredentials = []demoCredential{
	{email: "admin@company.com", role: types.RoleAdmin, name: "Admin User"},
	{email: "employee@company.com", role: types.RoleEmployee, name: "John Smith"},
}

// demoPasswordHash is computed once at startup; the demo table never
// stores the plaintext password.
var demoPasswordHash []byte

func init() {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		panic("auth: hashing demo password: " + err.Error())
	}
	demoPasswordHash = hash
}

// Verifier validates login credentials against the demo table and, in
// demo mode, the permissive email-shape fallback.
type Verifier struct {
	mode string
}

// NewVerifier constructs a Verifier for the given auth mode. Unknown
// modes fall back to demo mode.
func NewVerifier(mode string) *Verifier {
	if mode != config.AuthModeStrict {
		mode = config.AuthModeDemo
	}
	return &Verifier{mode: mode}
}

// Verify checks the supplied credentials for the requested role and
// returns the User identity they establish.
func (v *Verifier) Verify(email, password string, role types.Role) (types.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || !role.Valid() {
		return types.User{}, ErrInvalidCredentials
	}

	for _, cred := range demoCredentials {
		if cred.email != email || cred.role != role {
			continue
		}
		if bcrypt.CompareHashAndPassword(demoPasswordHash, []byte(password)) == nil {
			return types.User{Email: email, Role: role, Name: cred.name}, nil
		}
		// Wrong password for a known demo account still reaches the
		// fallback in demo mode, as the original rule did.
		break
	}

	if v.mode == config.AuthModeDemo && wellFormedEmail(email) {
		return types.User{Email: email, Role: role, Name: defaultName(role)}, nil
	}

	return types.User{}, ErrInvalidCredentials
}

func wellFormedEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func defaultName(role types.Role) string {
	if role == types.RoleAdmin {
		return "Admin User"
	}
	return "John Smith"
}
