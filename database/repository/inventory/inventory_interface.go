package inventoryRepo

import (
	"context"

	"travelhub/models"
)

// Item is satisfied by pointers to inventory documents (packages, plans).
type Item[T any] interface {
	*T
	Meta() *models.InventoryMeta
}

// InventoryRepository stores admin-managed inventory of type T.
type InventoryRepository[T any] interface {
	// Create inserts a new document; the caller assigns its id.
	Create(ctx context.Context, item *T) error
	// Replace overwrites the document with the item's id.
	Replace(ctx context.Context, item *T) error
	// Delete removes a document by id.
	Delete(ctx context.Context, id string) error
	// GetByID retrieves a document by id.
	GetByID(ctx context.Context, id string) (*T, error)
	// List returns documents ordered by creation; query, when set, is a text search.
	List(ctx context.Context, query string) ([]T, error)
	// AddImage appends an image URL to the document.
	AddImage(ctx context.Context, id, url string) error
	EnsureIndexes(ctx context.Context) error
}
