package domain

import "context"

// Category is an independent label with a unique name and a derived unique
// slug, many-to-many with events.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag is a free-form label, also unique by name with a derived slug.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRepository defines storage for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context) ([]*Category, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Category, error)
}

// TagRepository defines storage for tags.
type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	List(ctx context.Context) ([]*Tag, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Tag, error)
}
