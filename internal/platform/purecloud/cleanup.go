package purecloud

import (
	"context"
	"errors"
	"fmt"
)

// CleanupError represents accumulated errors from cleanup operations.
type CleanupError struct {
	Errors []error
}

func (e *CleanupError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("cleanup encountered %d errors: %v", len(e.Errors), e.Errors)
}

func (e *CleanupError) Unwrap() error {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return errors.Join(e.Errors...)
}

// Add records err unless it is nil.
func (e *CleanupError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any error was recorded.
func (e *CleanupError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ErrEmptyPrefix guards CleanupByPrefix against matching every resource.
var ErrEmptyPrefix = errors.New("refusing to clean up with an empty prefix")

// deleteAll deletes each listed resource, continuing past failures.
func deleteAll[T any](
	ctx context.Context,
	c *RealClient,
	resourceType string,
	listFn func(context.Context) ([]T, error),
	info func(T) (name, id string),
	deleteFn func(context.Context, string) error,
) error {
	resources, err := listFn(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", resourceType, err)
	}

	var deleteErrs []error
	for _, r := range resources {
		name, id := info(r)
		c.log.Info("deleting", "type", resourceType, "name", name, "id", id)
		if err := deleteFn(ctx, id); err != nil {
			c.log.Error(err, "delete failed", "type", resourceType, "name", name)
			deleteErrs = append(deleteErrs, fmt.Errorf("%s %q: %w", resourceType, name, err))
		}
	}
	return errors.Join(deleteErrs...)
}

// CleanupByPrefix deletes every resource whose name starts with prefix,
// regardless of what the current manifest lists. All resource types are
// attempted even if some deletions fail; failures come back as a CleanupError.
func (c *RealClient) CleanupByPrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}
	c.log.Info("starting cleanup", "prefix", prefix)
	cleanupErrs := &CleanupError{}

	// Delete in order to respect dependencies:
	// 1. Data actions (bound to data-action integrations)
	// 2. Integrations (reference credentials and groups)
	// 3. Credentials
	// 4. Trunk base settings
	// 5. Data tables
	// 6. OAuth clients (reference roles)
	// 7. Groups
	// 8. Roles

	integrations, err := c.ListIntegrations(ctx, prefix, TypeDataActions)
	if err != nil {
		cleanupErrs.Add(fmt.Errorf("data actions: %w", err))
	}
	for _, integ := range integrations {
		cleanupErrs.Add(deleteAll(ctx, c, "data action",
			func(ctx context.Context) ([]*DataAction, error) { return c.ListDataActions(ctx, integ.ID) },
			func(a *DataAction) (string, string) { return a.Name, a.ID },
			c.DeleteDataAction))
	}

	steps := []func() error{
		func() error {
			return deleteAll(ctx, c, "integration",
				func(ctx context.Context) ([]*Integration, error) { return c.ListIntegrations(ctx, prefix, "") },
				func(i *Integration) (string, string) { return i.Name, i.ID },
				c.DeleteIntegration)
		},
		func() error {
			return deleteAll(ctx, c, "credential",
				func(ctx context.Context) ([]*Credential, error) { return c.ListCredentials(ctx, prefix) },
				func(cr *Credential) (string, string) { return cr.Name, cr.ID },
				c.DeleteCredential)
		},
		func() error {
			return deleteAll(ctx, c, "trunk base",
				func(ctx context.Context) ([]*TrunkBase, error) { return c.ListTrunkBases(ctx, prefix) },
				func(t *TrunkBase) (string, string) { return t.Name, t.ID },
				c.DeleteTrunkBase)
		},
		func() error {
			return deleteAll(ctx, c, "data table",
				func(ctx context.Context) ([]*DataTable, error) { return c.ListDataTables(ctx, prefix) },
				func(d *DataTable) (string, string) { return d.Name, d.ID },
				c.DeleteDataTable)
		},
		func() error {
			return deleteAll(ctx, c, "oauth client",
				func(ctx context.Context) ([]*OAuthClient, error) { return c.ListOAuthClients(ctx, prefix) },
				func(o *OAuthClient) (string, string) { return o.Name, o.ID },
				c.DeleteOAuthClient)
		},
		func() error {
			return deleteAll(ctx, c, "group",
				func(ctx context.Context) ([]*Group, error) { return c.ListGroups(ctx, prefix) },
				func(g *Group) (string, string) { return g.Name, g.ID },
				c.DeleteGroup)
		},
		func() error {
			return deleteAll(ctx, c, "role",
				func(ctx context.Context) ([]*Role, error) { return c.ListRoles(ctx, prefix) },
				func(r *Role) (string, string) { return r.Name, r.ID },
				c.DeleteRole)
		},
	}
	for _, step := range steps {
		cleanupErrs.Add(step())
	}

	if cleanupErrs.HasErrors() {
		c.log.Info("cleanup completed with errors", "count", len(cleanupErrs.Errors))
		return cleanupErrs
	}

	c.log.Info("cleanup complete", "prefix", prefix)
	return nil
}
