package modules

import (
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// constructors maps every category to its module.
var constructors = map[config.Category]func() provisioning.Module{
	config.CategoryRole:        func() provisioning.Module { return NewRoleModule() },
	config.CategoryGroup:       func() provisioning.Module { return NewGroupModule() },
	config.CategoryOAuthClient: func() provisioning.Module { return NewOAuthClientModule() },
	config.CategoryAppInstance: func() provisioning.Module { return NewAppInstanceModule() },
	config.CategoryDataTable:   func() provisioning.Module { return NewDataTableModule() },
	config.CategoryTrunk:       func() provisioning.Module { return NewTrunkModule() },
	config.CategoryDataAction:  func() provisioning.Module { return NewDataActionModule() },
}

// New returns the module of a category.
func New(c config.Category) (provisioning.Module, error) {
	ctor, ok := constructors[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return ctor(), nil
}

// Build returns the modules of a manifest in provisioning order.
func Build(m *config.Manifest) ([]provisioning.Module, error) {
	return build(m.Order)
}

// BuildReversed returns the modules of a manifest in uninstall order.
func BuildReversed(m *config.Manifest) ([]provisioning.Module, error) {
	return build(m.Reversed())
}

func build(order []config.Category) ([]provisioning.Module, error) {
	out := make([]provisioning.Module, 0, len(order))
	for _, c := range order {
		mod, err := New(c)
		if err != nil {
			return nil, err
		}
		out = append(out, mod)
	}
	return out, nil
}
