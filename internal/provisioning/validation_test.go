package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

func validationContext(t *testing.T, cfg *config.Config, m *config.Manifest) (*Context, *MockObserver) {
	t.Helper()
	observer := NewMockObserver()
	ctx := newTestContext(observer)
	ctx.Context = context.Background()
	ctx.Config = cfg
	ctx.Manifest = m
	return ctx, observer
}

func findValidation(errs []ValidationError, field string) (ValidationError, bool) {
	for _, e := range errs {
		if e.Field == field {
			return e, true
		}
	}
	return ValidationError{}, false
}

func TestValidate_DefaultManifest(t *testing.T) {
	t.Parallel()
	m, err := config.DefaultManifest()
	require.NoError(t, err)
	ctx, _ := validationContext(t, &config.Config{AppURL: "https://example.com/app?env={{pcEnvironment}}"}, m)
	ctx.State.SetIdentity(Identity{UserID: "u1", OrgID: "o1"})

	for _, ve := range Validate(ctx) {
		assert.False(t, ve.IsError(), "unexpected error: %s", ve)
	}
}

func TestValidate_NoUserContext(t *testing.T) {
	t.Parallel()
	m := &config.Manifest{
		Roles:  []config.RoleSpec{{Name: "Role", AssignToInstaller: true}, {Name: "Other"}},
		Groups: []config.GroupSpec{{Name: "Supervisors", AddInstaller: true}},
	}
	ctx, _ := validationContext(t, &config.Config{}, m)

	errs := Validate(ctx)

	role, ok := findValidation(errs, "roles[Role].assignToInstaller")
	require.True(t, ok)
	assert.Equal(t, "warning", role.Severity)
	_, ok = findValidation(errs, "groups[Supervisors].addInstaller")
	assert.True(t, ok)
	_, ok = findValidation(errs, "roles[Other].assignToInstaller")
	assert.False(t, ok)
}

func TestValidate_AppInstanceURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		appURL      string
		itemURL     string
		expectError bool
		expectWarn  bool
	}{
		{name: "configured url with placeholder", appURL: "https://app.example.com/?env={{pcEnvironment}}"},
		{name: "item url wins", itemURL: "https://item.example.com/?env={{pcEnvironment}}"},
		{name: "no url anywhere", expectError: true},
		{name: "no environment placeholder", appURL: "https://app.example.com/", expectWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := &config.Manifest{AppInstances: []config.AppInstanceSpec{{Name: "App", URL: tt.itemURL}}}
			ctx, _ := validationContext(t, &config.Config{AppURL: tt.appURL}, m)

			ve, found := findValidation(Validate(ctx), "appInstances[App].url")
			switch {
			case tt.expectError:
				require.True(t, found)
				assert.True(t, ve.IsError())
			case tt.expectWarn:
				require.True(t, found)
				assert.False(t, ve.IsError())
			default:
				assert.False(t, found, "unexpected finding: %s", ve)
			}
		})
	}
}

func TestValidate_DataActionGrant(t *testing.T) {
	t.Parallel()
	m := &config.Manifest{
		OAuthClients: []config.OAuthClientSpec{{Name: "Client", GrantType: "CODE"}},
		DataActions:  []config.DataActionSpec{{Name: "Actions", OAuthClient: "Client"}},
	}
	ctx, _ := validationContext(t, &config.Config{}, m)

	ve, ok := findValidation(Validate(ctx), "dataActions[Actions].oauthClient")
	require.True(t, ok)
	assert.True(t, ve.IsError())
}

func TestValidationPhase_Provision(t *testing.T) {
	t.Parallel()

	t.Run("warnings become events", func(t *testing.T) {
		t.Parallel()
		m := &config.Manifest{Trunks: []config.TrunkSpec{{Name: "Trunk"}}}
		ctx, observer := validationContext(t, &config.Config{}, m)

		require.NoError(t, NewValidationPhase().Provision(ctx))
		assert.Contains(t, observer.eventTypes(), EventValidationWarning)
	})

	t.Run("errors fail the phase", func(t *testing.T) {
		t.Parallel()
		m := &config.Manifest{AppInstances: []config.AppInstanceSpec{{Name: "App"}}}
		ctx, _ := validationContext(t, &config.Config{}, m)

		err := NewValidationPhase().Provision(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "appInstances[App].url")
	})

	t.Run("empty manifest warns", func(t *testing.T) {
		t.Parallel()
		ctx, observer := validationContext(t, &config.Config{}, &config.Manifest{})

		require.NoError(t, NewValidationPhase().Provision(ctx))
		assert.Equal(t, []EventType{EventValidationWarning}, observer.eventTypes())
	})

	assert.Equal(t, "validation", NewValidationPhase().Name())
}
