package purecloud

import (
	"context"
)

func (c *RealClient) credentials() collection[*Credential] {
	return collection[*Credential]{
		client: c,
		path:   "/api/v2/integrations/credentials",
		kind:   "credential",
		name:   func(cr *Credential) string { return cr.Name },
	}
}

func credentialBody(opts CredentialCreateOpts) *Credential {
	return &Credential{
		Name:             opts.Name,
		Type:             CredentialType{Name: opts.Type},
		CredentialFields: opts.Fields,
	}
}

// ListCredentials returns all credentials whose name starts with prefix.
func (c *RealClient) ListCredentials(ctx context.Context, prefix string) ([]*Credential, error) {
	return c.credentials().owned(ctx, prefix, nil)
}

// EnsureCredential creates the credential or rewrites the fields of an
// existing one, so a re-run picks up a rotated client secret.
func (c *RealClient) EnsureCredential(ctx context.Context, opts CredentialCreateOpts) (*Credential, bool, error) {
	return (&EnsureOperation[*Credential, CredentialCreateOpts, CredentialCreateOpts]{
		Name:         opts.Name,
		ResourceType: "credential",
		Get: func(ctx context.Context, name string) (*Credential, error) {
			return c.credentials().byName(ctx, name, nil)
		},
		Create: func(ctx context.Context, o CredentialCreateOpts) (*Credential, error) {
			return c.credentials().create(ctx, credentialBody(o))
		},
		Update: func(ctx context.Context, existing *Credential, o CredentialCreateOpts) (*Credential, error) {
			updated, err := c.credentials().update(ctx, existing.ID, credentialBody(o))
			if err != nil {
				return nil, err
			}
			if updated != nil && updated.ID == "" {
				updated.ID = existing.ID
			}
			return updated, nil
		},
		CreateOptsMapper: func() CredentialCreateOpts { return opts },
		UpdateOptsMapper: func(*Credential) CredentialCreateOpts { return opts },
	}).Execute(ctx, c)
}

// DeleteCredential deletes the credential with id. Missing credentials are not an error.
func (c *RealClient) DeleteCredential(ctx context.Context, id string) error {
	return (&DeleteOperation[*Credential]{
		ID:           id,
		ResourceType: "credential",
		Get:          c.credentials().get,
		Delete: func(ctx context.Context, cr *Credential) error {
			return c.credentials().remove(ctx, cr.ID, nil)
		},
	}).Execute(ctx, c)
}
