package provisioning

import (
	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Module provisions every manifest item of one category.
//
// Create runs in the create pass, in manifest order, so it may read the
// results of earlier modules from ctx.State. Configure runs in the second
// pass, concurrently with every other module, once all IDs exist.
type Module interface {
	// Category returns the category the module provisions.
	Category() config.Category

	// GetExisting lists the prefixed resources of this category that are
	// currently present, whether or not the manifest names them.
	GetExisting(ctx *Context) ([]Resource, error)

	// Remove deletes one resource returned by GetExisting.
	Remove(ctx *Context, r Resource) error

	// Create ensures every manifest item exists and registers it in ctx.State.
	Create(ctx *Context) ([]Resource, error)

	// Configure applies settings that reference other modules' resources.
	Configure(ctx *Context) error
}

// Resource is a provisioned platform resource.
type Resource struct {
	Category config.Category `yaml:"category"`
	// Name is the manifest item name, without the prefix.
	Name string `yaml:"name"`
	// FullName is the platform name, with the prefix.
	FullName string `yaml:"fullName,omitempty"`
	ID       string `yaml:"id"`
	// Created is false when an existing resource was reused.
	Created bool `yaml:"created"`
	// Extra carries values later modules need, such as an OAuth client secret.
	Extra map[string]string `yaml:"extra,omitempty"`
}

// Secret keys in Resource.Extra that must never be written out.
const (
	ExtraSecret = "secret"
)

// Redacted returns a copy of r with secret values masked.
func (r Resource) Redacted() Resource {
	if len(r.Extra) == 0 {
		return r
	}
	out := r
	out.Extra = make(map[string]string, len(r.Extra))
	for k, v := range r.Extra {
		if k == ExtraSecret && v != "" {
			v = "REDACTED"
		}
		out.Extra[k] = v
	}
	return out
}
