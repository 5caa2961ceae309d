package purecloud

import (
	"context"
	"net/url"
)

func (c *RealClient) dataTables() collection[*DataTable] {
	return collection[*DataTable]{
		client: c,
		path:   "/api/v2/flows/datatables",
		kind:   "data table",
		name:   func(d *DataTable) string { return d.Name },
	}
}

// ListDataTables returns all data tables whose name starts with prefix.
func (c *RealClient) ListDataTables(ctx context.Context, prefix string) ([]*DataTable, error) {
	return c.dataTables().owned(ctx, prefix, nil)
}

// GetDataTable returns the data table with id, or nil.
func (c *RealClient) GetDataTable(ctx context.Context, id string) (*DataTable, error) {
	return c.dataTables().get(ctx, id)
}

// EnsureDataTable creates the data table unless one with the name exists.
// The schema of an existing table is left alone because rows may depend on it.
func (c *RealClient) EnsureDataTable(ctx context.Context, opts DataTableCreateOpts) (*DataTable, bool, error) {
	return (&EnsureOperation[*DataTable, DataTableCreateOpts, any]{
		Name:         opts.Name,
		ResourceType: "data table",
		Get: func(ctx context.Context, name string) (*DataTable, error) {
			return c.dataTables().byName(ctx, name, nil)
		},
		Create: func(ctx context.Context, o DataTableCreateOpts) (*DataTable, error) {
			return c.dataTables().create(ctx, &DataTable{
				Name:        o.Name,
				Description: o.Description,
				Schema:      o.Schema,
			})
		},
		CreateOptsMapper: func() DataTableCreateOpts { return opts },
	}).Execute(ctx, c)
}

// DeleteDataTable force-deletes the data table with id, rows included.
func (c *RealClient) DeleteDataTable(ctx context.Context, id string) error {
	return (&DeleteOperation[*DataTable]{
		ID:           id,
		ResourceType: "data table",
		Get:          c.dataTables().get,
		Delete: func(ctx context.Context, d *DataTable) error {
			return c.dataTables().remove(ctx, d.ID, url.Values{"force": {"true"}})
		},
	}).Execute(ctx, c)
}
