package purecloud

import (
	"context"
	"fmt"
	"reflect"

	"github.com/purecloudlabs/premium-app-installer/internal/util/retry"
)

// DeleteOperation encapsulates deletion logic for any platform resource.
// It provides consistent retry, timeout, and error handling across all resource types.
//
// Usage example:
//
//	func (c *RealClient) DeleteGroup(ctx context.Context, id string) error {
//	    return (&DeleteOperation[*Group]{
//	        ID:           id,
//	        ResourceType: "group",
//	        Get:          c.groups().get,
//	        Delete: func(ctx context.Context, g *Group) error {
//	            return c.groups().remove(ctx, g.ID, nil)
//	        },
//	    }).Execute(ctx, c)
//	}
type DeleteOperation[T any] struct {
	ID           string
	ResourceType string

	// Get retrieves the resource by ID, returning nil when it does not exist
	Get func(ctx context.Context, id string) (T, error)

	// Delete removes the resource
	Delete func(ctx context.Context, resource T) error
}

// Execute performs the delete operation with retry logic and timeout handling.
// The operation is idempotent - it succeeds if the resource doesn't exist.
// Conflicts and rate limits are retried with exponential backoff.
func (op *DeleteOperation[T]) Execute(ctx context.Context, client *RealClient) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		resource, err := op.Get(ctx, op.ID)
		if err != nil {
			return retry.Fatal(fmt.Errorf("failed to get %s: %w", op.ResourceType, err))
		}

		if isNil(resource) {
			return nil
		}

		if err := op.Delete(ctx, resource); err != nil {
			if IsNotFound(err) {
				return nil
			}
			if isRetryable(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.ID, err))
		}
		return nil
	},
		retry.WithMaxRetries(client.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(client.timeouts.RetryInitialDelay))
}

// EnsureOperation encapsulates get-or-create logic for any platform resource.
// It supports optional update and validation logic for existing resources.
//
// Simple ensure:
//
//	(&EnsureOperation[*Group, GroupCreateOpts, any]{
//	    Name:             opts.Name,
//	    ResourceType:     "group",
//	    Get:              c.groupByName,
//	    Create:           c.createGroup,
//	    CreateOptsMapper: func() GroupCreateOpts { return opts },
//	}).Execute(ctx, c)
//
// Ensure with update, used to refresh credential secrets on re-entry:
//
//	EnsureOperation{
//	    // ... other fields
//	    Update: func(ctx context.Context, cred *Credential, opts CredentialCreateOpts) (*Credential, error) {
//	        return c.credentials().update(ctx, cred.ID, credentialBody(opts))
//	    },
//	    UpdateOptsMapper: func(*Credential) CredentialCreateOpts { return opts },
//	}
type EnsureOperation[T any, CreateOpts any, UpdateOpts any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource by name, returning nil when it does not exist
	Get func(ctx context.Context, name string) (T, error)

	// Create creates the resource with the given options
	Create func(ctx context.Context, opts CreateOpts) (T, error)

	// Update updates the resource if it exists (optional)
	Update func(ctx context.Context, resource T, opts UpdateOpts) (T, error)

	// Validate checks if existing resource matches desired state (optional)
	Validate func(resource T) error

	// CreateOptsMapper maps input parameters to create options
	CreateOptsMapper func() CreateOpts

	// UpdateOptsMapper maps input parameters to update options (required if Update is provided)
	UpdateOptsMapper func(resource T) UpdateOpts
}

// Execute gets the existing resource, validating or updating it when
// configured, or creates it. The bool reports whether a new resource was created.
func (op *EnsureOperation[T, CreateOpts, UpdateOpts]) Execute(
	ctx context.Context,
	client *RealClient,
) (T, bool, error) {
	var zero T

	resource, err := op.Get(ctx, op.Name)
	if err != nil {
		return zero, false, fmt.Errorf("failed to get %s: %w", op.ResourceType, err)
	}

	if !isNil(resource) {
		existing, err := op.reconcile(ctx, resource)
		return existing, false, err
	}

	resource, err = op.Create(ctx, op.CreateOptsMapper())
	if err != nil {
		if !IsConflict(err) {
			return zero, false, fmt.Errorf("failed to create %s: %w", op.ResourceType, err)
		}
		// Someone else created it between our get and create.
		raced, getErr := op.Get(ctx, op.Name)
		if getErr != nil || isNil(raced) {
			return zero, false, fmt.Errorf("failed to create %s: %w", op.ResourceType, err)
		}
		existing, err := op.reconcile(ctx, raced)
		return existing, false, err
	}

	client.log.V(1).Info("created resource", "type", op.ResourceType, "name", op.Name)
	return resource, true, nil
}

func (op *EnsureOperation[T, CreateOpts, UpdateOpts]) reconcile(ctx context.Context, resource T) (T, error) {
	var zero T
	if op.Validate != nil {
		if err := op.Validate(resource); err != nil {
			return zero, err
		}
	}

	if op.Update != nil && op.UpdateOptsMapper != nil {
		updated, err := op.Update(ctx, resource, op.UpdateOptsMapper(resource))
		if err != nil {
			return zero, fmt.Errorf("failed to update %s: %w", op.ResourceType, err)
		}
		if !isNil(updated) {
			return updated, nil
		}
	}
	return resource, nil
}

// isNil reports whether v is nil, including typed nil pointers.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
