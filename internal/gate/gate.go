// Package gate decides, per navigation, whether the current session may
// view a target screen. The decision is a pure function of the session
// and the declared requirement so it stays testable without any
// rendering environment.
package gate

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/session"
)

// Routes the gate redirects to on denial.
const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
)

type requirementKind int

const (
	kindPublic requirementKind = iota
	kindAuthenticatedOnly
	kindRoleRestricted
	kindAnonymousOnly
)

// Requirement declares who may view a screen.
type Requirement struct {
	kind requirementKind
	role models.UserRole
}

// Public screens are always allowed.
func Public() Requirement { return Requirement{kind: kindPublic} }

// AuthenticatedOnly requires a non-anonymous session.
func AuthenticatedOnly() Requirement { return Requirement{kind: kindAuthenticatedOnly} }

// RoleRestricted requires a session whose user holds exactly this role.
func RoleRestricted(role models.UserRole) Requirement {
	return Requirement{kind: kindRoleRestricted, role: role}
}

// AnonymousOnly requires no session, e.g. the login and register
// screens; an already-authenticated user is sent home instead.
func AnonymousOnly() Requirement { return Requirement{kind: kindAnonymousOnly} }

type Outcome int

const (
	// Pending means the session store has not finished restoring; the
	// caller renders nothing instead of guessing, so an authenticated
	// user is never bounced to login by a race.
	Pending Outcome = iota
	Allow
	Redirect
)

type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Decide evaluates the requirement against the session. ready is the
// session store's restore flag.
func Decide(req Requirement, sess session.Session, ready bool) Decision {
	if !ready {
		return Decision{Outcome: Pending}
	}

	switch req.kind {
	case kindPublic:
		return Decision{Outcome: Allow}

	case kindAuthenticatedOnly:
		if sess.Anonymous() {
			return Decision{Outcome: Redirect, RedirectTo: LoginRoute}
		}
		return Decision{Outcome: Allow}

	case kindRoleRestricted:
		if sess.Anonymous() || sess.User.Role != req.role {
			return Decision{Outcome: Redirect, RedirectTo: LoginRoute}
		}
		return Decision{Outcome: Allow}

	case kindAnonymousOnly:
		if sess.Anonymous() {
			return Decision{Outcome: Allow}
		}
		return Decision{Outcome: Redirect, RedirectTo: DashboardRoute}
	}
	return Decision{Outcome: Redirect, RedirectTo: LoginRoute}
}
