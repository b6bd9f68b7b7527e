// Package guard decides, per navigation, whether the current identity may
// view a screen. Decisions are computed on every call and never cached.
package guard

import (
	"strings"

	"github.com/devport/portfolio/internal/core/domain"
)

const (
	LoginPath     = "/login"
	HomePath      = "/"
	DashboardPath = "/dashboard"
	AdminPath     = "/admin"
)

// Outcome is the result of a guard check.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
	// RedirectLanding sends an already authenticated identity away from the
	// login screen to its role's landing screen.
	RedirectLanding
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case RedirectLanding:
		return "redirect_landing"
	default:
		return "unknown"
	}
}

// Decision is an outcome plus the path to navigate to when redirecting.
type Decision struct {
	Outcome  Outcome `json:"-"`
	Redirect string  `json:"redirect,omitempty"`
}

func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Evaluate applies the protected-route rule: no identity redirects to the
// login screen, a role mismatch redirects home, otherwise access is allowed.
// An empty required role accepts any identity.
func Evaluate(identity *domain.Identity, required domain.Role) Decision {
	if identity == nil {
		return Decision{Outcome: RedirectLogin, Redirect: LoginPath}
	}
	if required != "" && identity.Role != required {
		return Decision{Outcome: RedirectHome, Redirect: HomePath}
	}
	return Decision{Outcome: Allow}
}

// LandingPath is where an identity goes after logging in.
func LandingPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return AdminPath
	case domain.RoleUser:
		return DashboardPath
	default:
		return HomePath
	}
}

// Access is what a screen requires.
type Access int

const (
	Public Access = iota
	LoginScreen
	Authenticated
	AdminOnly
)

// Classify maps a screen path onto its access rule. Unknown paths are public
// and render the not-found screen.
func Classify(path string) Access {
	p := "/" + strings.Trim(strings.TrimSpace(path), "/")
	switch {
	case p == LoginPath:
		return LoginScreen
	case p == AdminPath || strings.HasPrefix(p, AdminPath+"/"):
		return AdminOnly
	case p == DashboardPath || strings.HasPrefix(p, DashboardPath+"/"):
		return Authenticated
	default:
		return Public
	}
}

// Resolve evaluates a navigation to path for identity.
func Resolve(path string, identity *domain.Identity) Decision {
	switch Classify(path) {
	case LoginScreen:
		if identity != nil {
			return Decision{Outcome: RedirectLanding, Redirect: LandingPath(identity.Role)}
		}
		return Decision{Outcome: Allow}
	case AdminOnly:
		return Evaluate(identity, domain.RoleAdmin)
	case Authenticated:
		return Evaluate(identity, "")
	default:
		return Decision{Outcome: Allow}
	}
}
