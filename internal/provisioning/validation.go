package provisioning

import (
	"fmt"
	"strings"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Manifest or config field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase checks that the manifest can be installed with the
// resolved config and identity. Static manifest rules are enforced when the
// manifest is loaded; this phase covers what depends on the run.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	var errs []string
	for _, ve := range Validate(ctx) {
		if ve.IsError() {
			errs = append(errs, ve.Error())
			continue
		}
		ctx.Observer.Event(Event{
			Type:    EventValidationWarning,
			Phase:   vp.Name(),
			Message: ve.Message,
			Fields:  map[string]string{"field": ve.Field},
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Validate runs all run-time checks and returns any errors or warnings.
func Validate(ctx *Context) []ValidationError {
	var errs []ValidationError
	m := ctx.Manifest
	cfg := ctx.Config

	if m.Count() == 0 {
		errs = append(errs, ValidationError{
			Field:    "manifest",
			Message:  "manifest lists no resources, nothing will be installed",
			Severity: "warning",
		})
	}

	// --- Installer identity ---

	if !ctx.State.Identity().HasUser() {
		for _, r := range m.Roles {
			if r.AssignToInstaller {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("roles[%s].assignToInstaller", r.Name),
					Message:  fmt.Sprintf("no user context, role %q will not be assigned to the installer", r.Name),
					Severity: "warning",
				})
			}
		}
		for _, g := range m.Groups {
			if g.AddInstaller {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("groups[%s].addInstaller", g.Name),
					Message:  fmt.Sprintf("no user context, the installer will not be added to group %q", g.Name),
					Severity: "warning",
				})
			}
		}
	}

	// --- App instances ---

	for _, a := range m.AppInstances {
		url := a.URL
		if url == "" {
			url = cfg.AppURL
		}
		if url == "" {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("appInstances[%s].url", a.Name),
				Message:  "no url in the manifest and app_url is not configured",
				Severity: "error",
			})
			continue
		}
		if !strings.Contains(url, "{{pcEnvironment}}") {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("appInstances[%s].url", a.Name),
				Message:  "url has no {{pcEnvironment}} placeholder, the app cannot tell which region it runs in",
				Severity: "warning",
			})
		}
	}

	// --- OAuth clients used by data actions need a secret ---

	for _, d := range m.DataActions {
		for _, o := range m.OAuthClients {
			if o.Name == d.OAuthClient && o.GrantType != config.DefaultGrantType {
				errs = append(errs, ValidationError{
					Field:    fmt.Sprintf("dataActions[%s].oauthClient", d.Name),
					Message:  fmt.Sprintf("oauth client %q uses grant %s, data actions need %s", o.Name, o.GrantType, config.DefaultGrantType),
					Severity: "error",
				})
			}
		}
	}

	// --- Trunks ---

	for _, t := range m.Trunks {
		if len(t.Properties) == 0 {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("trunks[%s].properties", t.Name),
				Message:  "trunk has no properties, it will be created with metabase defaults",
				Severity: "warning",
			})
		}
	}

	return errs
}
