package postgres

import (
	"context"
	"database/sql"

	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (id, document_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, document_id, content, created_at
	`
	var out model.Comment
	if err := r.db.QueryRowContext(ctx, q, c.ID, c.DocumentID, c.Content, c.CreatedAt).Scan(
		&out.ID,
		&out.DocumentID,
		&out.Content,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CommentPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error) {
	const q = `
		SELECT id, document_id, content, created_at
		FROM comments
		WHERE document_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentPostgres) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	const q = `DELETE FROM comments WHERE document_id = $1`
	res, err := r.db.ExecContext(ctx, q, documentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
