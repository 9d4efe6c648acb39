package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docshelf/internal/model"
	"docshelf/internal/repository"
)

// CommentService defines the use cases for document comments.
type CommentService interface {
	// List returns a document's comments, oldest first. Any id is accepted; unknown ids yield an empty list.
	List(ctx context.Context, documentID string) ([]model.Comment, error)

	// Add stores a trimmed, non-empty comment. The document id is not checked
	// unless strict mode is on.
	Add(ctx context.Context, documentID, content string) (*model.Comment, error)
}

type commentService struct {
	comments        repository.CommentRepository
	docs            repository.DocumentRepository
	requireDocument bool
}

// NewCommentService constructs a CommentService. With requireDocument set, Add fails with
// ErrNotFound for documents that do not exist.
func NewCommentService(comments repository.CommentRepository, docs repository.DocumentRepository, requireDocument bool) CommentService {
	return &commentService{comments: comments, docs: docs, requireDocument: requireDocument}
}

func (s *commentService) List(ctx context.Context, documentID string) (_ []model.Comment, err error) {
	ctx, span := tracer.Start(ctx, "CommentService.List", trace.WithAttributes(attribute.String("document.id", documentID)))
	defer func() { endSpan(span, err) }()

	items, err := s.comments.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return items, nil
}

func (s *commentService) Add(ctx context.Context, documentID, content string) (_ *model.Comment, err error) {
	ctx, span := tracer.Start(ctx, "CommentService.Add", trace.WithAttributes(attribute.String("document.id", documentID)))
	defer func() { endSpan(span, err) }()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("CONTENT_REQUIRED", ErrContentRequired)
	}
	if s.requireDocument {
		if _, err := s.docs.FindByID(ctx, documentID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}

	c, err := s.comments.Create(ctx, &model.Comment{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}
