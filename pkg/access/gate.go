package access

// Page paths used by the gate when it has to send a caller somewhere else.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	AnalyticsPath = "/dashboard/analytics"
)

// Outcome is the kind of decision the gate reached.
type Outcome int

const (
	Allow Outcome = iota
	Redirect
	DenyWithFallback
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case DenyWithFallback:
		return "deny"
	default:
		return "unknown"
	}
}

// Decision is the result of Authorize. Target is set for Redirect and
// DenyWithFallback.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Allowed reports whether the decision lets the caller through.
func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Authorize decides whether an identity may open a page guarded by required.
// It never fails and has no side effects.
func Authorize(id *Identity, required RoleSet) Decision {
	if !id.HasRole() {
		return Decision{Outcome: Redirect, Target: LoginPath}
	}
	if required.Contains(id.Role) {
		return Decision{Outcome: Allow}
	}
	return Decision{Outcome: DenyWithFallback, Target: FallbackFor(id.Role)}
}

// FallbackFor returns the landing page for a role that was denied elsewhere.
func FallbackFor(r Role) string {
	switch r {
	case RoleAnalyst:
		return AnalyticsPath
	case RoleAdmin:
		return DashboardPath
	default:
		return LoginPath
	}
}
