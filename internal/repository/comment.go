package repository

import (
	"context"

	"docshelf/internal/model"
)

// CommentRepository defines data access for comments.
type CommentRepository interface {
	// Create inserts a comment as given, including ID and CreatedAt, so it can also restore
	// previously deleted rows.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// ListByDocument returns the comments of a document, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error)

	// DeleteByDocument removes every comment of a document and reports how many rows went away.
	DeleteByDocument(ctx context.Context, documentID string) (int64, error)
}
