package repository

import (
	"context"

	"docshelf/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record. The caller provides ID and CreatedAt.
	// Returns the stored document as read back from the database.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns exactly one document. It fails with sql.ErrNoRows when nothing matches
	// and with ErrMultipleRows when the id is not unique.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns every document, newest first.
	List(ctx context.Context) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
