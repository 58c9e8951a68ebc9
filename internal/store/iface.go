package store

import (
	"context"

	"github.com/rribeiro/folio/internal/model"
)

// Stats is the uniform aggregate view over any cached collection.
type Stats struct {
	Total           int
	ActiveCount     int
	InactiveCount   int
	CategoriesCount int
}

// Resource is the uniform operation set every concrete store implements.
// Generic consumers (CLI subcommands, search, export) operate through it
// without knowing which resource they hold.
type Resource interface {
	Name() string
	Loading() bool
	Err() string
	Items() []model.Item
	Stats() Stats
	Fetch(ctx context.Context) error
	CreateItem(ctx context.Context, draft map[string]any) (model.Item, error)
	UpdateItem(ctx context.Context, id string, patch map[string]any) (model.Item, error)
	Remove(ctx context.Context, id string) error
	ClearCache()
}

// ActiveToggler is the optional capability for resources with the soft
// enable/disable flag.
type ActiveToggler interface {
	Toggle(ctx context.Context, id string) (model.Item, error)
}

// ReadToggler is the contacts-only capability for flipping the read flag.
type ReadToggler interface {
	ToggleRead(ctx context.Context, id string) (model.Item, error)
}

// compile-time checks
var (
	_ Resource      = (*Projects)(nil)
	_ Resource      = (*Skills)(nil)
	_ Resource      = (*Certifications)(nil)
	_ Resource      = (*Courses)(nil)
	_ Resource      = (*Contacts)(nil)
	_ ActiveToggler = (*Projects)(nil)
	_ ActiveToggler = (*Skills)(nil)
	_ ActiveToggler = (*Certifications)(nil)
	_ ActiveToggler = (*Courses)(nil)
	_ ReadToggler   = (*Contacts)(nil)
)
