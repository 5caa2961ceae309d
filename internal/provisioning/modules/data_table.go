package modules

import (
	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// DataTableModule provisions Architect data tables.
type DataTableModule struct{}

// NewDataTableModule creates the data table module.
func NewDataTableModule() *DataTableModule {
	return &DataTableModule{}
}

// Category implements provisioning.Module.
func (m *DataTableModule) Category() config.Category {
	return config.CategoryDataTable
}

// GetExisting implements provisioning.Module.
func (m *DataTableModule) GetExisting(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	tables, err := ctx.Platform.ListDataTables(ctx, ctx.Manifest.Prefix)
	if err != nil {
		return nil, err
	}
	out := make([]provisioning.Resource, 0, len(tables))
	for _, t := range tables {
		out = append(out, existing(ctx, m.Category(), t.Name, t.ID))
	}
	return out, nil
}

// Remove implements provisioning.Module.
func (m *DataTableModule) Remove(ctx *provisioning.Context, r provisioning.Resource) error {
	return ignoreNotFound(ctx.Platform.DeleteDataTable(ctx, r.ID))
}

// Create implements provisioning.Module.
func (m *DataTableModule) Create(ctx *provisioning.Context) ([]provisioning.Resource, error) {
	return ensureAll(ctx, m.Category(), ctx.Manifest.DataTables,
		func(s config.DataTableSpec) string { return s.Name },
		func(ctx *provisioning.Context, s config.DataTableSpec) (provisioning.Resource, error) {
			name := ctx.FullName(s.Name)
			t, created, err := ctx.Platform.EnsureDataTable(ctx, purecloud.DataTableCreateOpts{
				Name:        name,
				Description: s.Description,
				Schema:      DataTableSchema(s.Fields),
			})
			if err != nil {
				return provisioning.Resource{}, err
			}
			return ensured(name, t.ID, created), nil
		})
}

// Configure implements provisioning.Module. Tables need no second pass.
func (m *DataTableModule) Configure(_ *provisioning.Context) error {
	return nil
}

// DataTableSchema builds the JSON schema of a data table: the mandatory
// string key followed by the custom fields in order.
func DataTableSchema(fields []config.DataTableField) map[string]any {
	properties := map[string]any{
		"key": map[string]any{
			"title":        "key",
			"type":         "string",
			"$id":          "/properties/key",
			"displayOrder": 0,
			"minLength":    1,
			"maxLength":    256,
		},
	}
	for i, f := range fields {
		typ := f.Type
		if typ == "" {
			typ = "string"
		}
		properties[f.Name] = map[string]any{
			"title":        f.Name,
			"type":         typ,
			"$id":          "/properties/" + f.Name,
			"displayOrder": i + 1,
		}
	}
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-04/schema#",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"key"},
		"properties":           properties,
	}
}
