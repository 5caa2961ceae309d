package purecloud

import (
	"context"
	"fmt"
	"net/http"
)

// GetMe returns the user the token acts for. Client credentials tokens have
// no user context, in which case GetMe returns nil and no error.
func (c *RealClient) GetMe(ctx context.Context) (*User, error) {
	var me User
	err := c.do(ctx, http.MethodGet, "/api/v2/users/me", nil, nil, &me)
	if hasStatus(err, http.StatusBadRequest, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &me, nil
}

// GetOrganization returns the org the token belongs to.
func (c *RealClient) GetOrganization(ctx context.Context) (*Organization, error) {
	var org Organization
	if err := c.do(ctx, http.MethodGet, "/api/v2/organizations/me", nil, nil, &org); err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

// GetHomeDivision returns the org's home division.
func (c *RealClient) GetHomeDivision(ctx context.Context) (*Division, error) {
	var div Division
	if err := c.do(ctx, http.MethodGet, "/api/v2/authorization/divisions/home", nil, nil, &div); err != nil {
		return nil, fmt.Errorf("failed to get home division: %w", err)
	}
	return &div, nil
}

// HasProduct reports whether the org is entitled to productID.
func (c *RealClient) HasProduct(ctx context.Context, productID string) (bool, error) {
	products, err := collection[*Product]{
		client: c,
		path:   "/api/v2/authorization/products",
		kind:   "product",
		name:   func(p *Product) string { return p.ID },
	}.list(ctx, nil)
	if err != nil {
		return false, err
	}
	for _, p := range products {
		if p.ID == productID {
			return true, nil
		}
	}
	return false, nil
}
