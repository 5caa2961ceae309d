package testing

import (
	"context"
	"testing"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// PlatformFixture provides a pre-configured in-memory org for common test scenarios.
type PlatformFixture struct {
	fake *purecloud.FakeClient
}

// NewPlatformFixture creates an empty org with an installing user and a home division.
func NewPlatformFixture() *PlatformFixture {
	return &PlatformFixture{fake: purecloud.NewFakeClient()}
}

// Fake returns the underlying FakeClient for custom configuration.
func (f *PlatformFixture) Fake() *purecloud.FakeClient {
	return f.fake
}

// WithProduct grants the org a product.
func (f *PlatformFixture) WithProduct(productID string) *PlatformFixture {
	f.fake.Products = append(f.fake.Products, productID)
	return f
}

// WithoutUser simulates a client credentials token with no user context.
func (f *PlatformFixture) WithoutUser() *PlatformFixture {
	f.fake.Me = nil
	return f
}

// WithError makes a platform method fail.
func (f *PlatformFixture) WithError(method string, err error) *PlatformFixture {
	f.fake.Errors[method] = err
	return f
}

// WithForeign adds unprefixed resources that an installation must never touch.
func (f *PlatformFixture) WithForeign() *PlatformFixture {
	ctx := context.Background()
	_, _, _ = f.fake.EnsureRole(ctx, purecloud.RoleCreateOpts{Name: "Admin"})
	_, _, _ = f.fake.EnsureGroup(ctx, purecloud.GroupCreateOpts{Name: "Everyone"})
	_, _, _ = f.fake.EnsureIntegration(ctx, purecloud.IntegrationCreateOpts{Name: "Other App", TypeID: purecloud.TypeClientApp})
	return f
}

// Context returns a provisioning context bound to the fixture, with test
// timeouts, a recording observer and the installer identity resolved.
func (f *PlatformFixture) Context(t *testing.T, cfg *config.Config, m *config.Manifest) (*provisioning.Context, *RecordingObserver) {
	t.Helper()
	observer := NewRecordingObserver()
	ctx := provisioning.NewContext(TestContext(t), cfg, m, f.fake)
	ctx.Observer = observer
	ctx.Timeouts = config.TestTimeouts()

	id := provisioning.Identity{}
	if f.fake.Me != nil {
		id.UserID, id.UserName = f.fake.Me.ID, f.fake.Me.Name
	}
	if f.fake.Org != nil {
		id.OrgID, id.OrgName = f.fake.Org.ID, f.fake.Org.Name
	}
	if f.fake.HomeDivision != nil {
		id.DivisionID = f.fake.HomeDivision.ID
	}
	ctx.State.SetIdentity(id)
	return ctx, observer
}
