package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"docshelf/internal/fetcher"
	"docshelf/internal/model"
	"docshelf/internal/repository"
	"docshelf/internal/storage"
)

// Delete plan step names, reported in PartialDeleteError.Completed/Failed.
const (
	StepDeleteComments = "delete_comments"
	StepDeleteBlob     = "delete_blob"
	StepDeleteDocument = "delete_document"
)

// FilePart is the uploaded file as received from the client.
type FilePart struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadInput carries an upload request. A nil File means no file part was sent.
type UploadInput struct {
	File        *FilePart
	Title       string
	Description string
}

// DownloadResult is a document together with its blob bytes.
type DownloadResult struct {
	Document    *model.Document
	Data        []byte
	ContentType string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// List returns every document, newest first.
	List(ctx context.Context) ([]model.Document, error)

	// Get returns a single document. Every lookup failure is reported as ErrNotFound.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Upload validates the input, stores the file under a fresh key and records its metadata.
	// The stored blob is removed again if the metadata insert fails.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// Download returns the document and the bytes read back from its public URL.
	Download(ctx context.Context, id string) (*DownloadResult, error)

	// Delete removes the document's comments, its blob and its record, in that order.
	Delete(ctx context.Context, id string) error
}

// Option customises a document service.
type Option func(*documentService)

// WithMaxUploadBytes rejects files larger than n bytes. n <= 0 disables the check.
func WithMaxUploadBytes(n int64) Option {
	return func(s *documentService) { s.maxUploadBytes = n }
}

// WithLogger sets the logger used for delete-plan diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *documentService) { s.log = log }
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	comments repository.CommentRepository
	fetch    fetcher.Fetcher

	maxUploadBytes int64
	log            *zap.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	docs repository.DocumentRepository,
	comments repository.CommentRepository,
	fetch fetcher.Fetcher,
	opts ...Option,
) DocumentService {
	s := &documentService{
		store:    store,
		docs:     docs,
		comments: comments,
		fetch:    fetch,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *documentService) List(ctx context.Context) (_ []model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.List")
	defer func() { endSpan(span, err) }()

	items, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return items, nil
}

func (s *documentService) Get(ctx context.Context, id string) (_ *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Get", trace.WithAttributes(attribute.String("document.id", id)))
	defer func() { endSpan(span, err) }()

	return s.lookup(ctx, id)
}

// lookup is the single-match read shared by Get, Download and strict comments.
func (s *documentService) lookup(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, ErrIDRequired)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return doc, nil
}

func (s *documentService) validateUpload(in UploadInput) (string, error) {
	if in.File == nil {
		return "", invalid("FILE_REQUIRED", ErrFileRequired)
	}
	if in.File.Filename == "" {
		return "", invalid("FILENAME_EMPTY", ErrFilenameEmpty)
	}
	if !AllowedExtension(in.File.Filename) {
		return "", invalid("FILE_TYPE_NOT_ALLOWED", ErrFileTypeNotAllowed)
	}
	if strings.TrimSpace(in.Title) == "" {
		return "", invalid("TITLE_REQUIRED", ErrTitleRequired)
	}
	if in.File.Reader == nil {
		return "", ErrReaderNil
	}
	if s.maxUploadBytes > 0 && in.File.Size > s.maxUploadBytes {
		return "", ErrFileTooLarge
	}
	return Extension(in.File.Filename), nil
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (_ *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Upload")
	defer func() { endSpan(span, err) }()

	ext, err := s.validateUpload(in)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("document.file_type", ext), attribute.Int64("document.size", in.File.Size))

	fileName := storedFileName(in.File.Filename, ext)
	key := uuid.NewString() + "." + ext
	contentType := in.File.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	if _, err := s.store.Put(ctx, key, in.File.Reader, storage.PutObjectOptions{
		Size:        in.File.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": fileName,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		FileURL:   s.store.PublicURL(key),
		FileName:  fileName,
		FileType:  ext,
		CreatedAt: time.Now().UTC(),
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		doc.Description = &desc
	}

	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Download(ctx context.Context, id string) (_ *DownloadResult, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Download", trace.WithAttributes(attribute.String("document.id", id)))
	defer func() { endSpan(span, err) }()

	doc, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.fetch.Fetch(ctx, doc.FileURL)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	return &DownloadResult{
		Document:    doc,
		Data:        data,
		ContentType: ContentTypeFor(doc.FileType),
	}, nil
}

// Delete looks the document up and runs the delete plan. A failed lookup is returned as a plain
// error, not ErrNotFound.
func (s *documentService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Delete", trace.WithAttributes(attribute.String("document.id", id)))
	defer func() { endSpan(span, err) }()

	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup document: %w", err)
	}
	key, err := storage.KeyFromURL(doc.FileURL)
	if err != nil {
		return fmt.Errorf("derive blob key: %w", err)
	}

	snapshot, err := s.comments.ListByDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("snapshot comments: %w", err)
	}

	plan := &deletePlan{
		documentID: id,
		log:        s.log,
		steps: []planStep{
			{
				name: StepDeleteComments,
				run: func(ctx context.Context) error {
					_, err := s.comments.DeleteByDocument(ctx, id)
					return err
				},
				compensate: func(ctx context.Context) error {
					return s.restoreComments(ctx, snapshot)
				},
			},
			{
				name: StepDeleteBlob,
				run: func(ctx context.Context) error {
					return s.store.Delete(ctx, key)
				},
			},
			{
				name: StepDeleteDocument,
				run: func(ctx context.Context) error {
					return s.docs.Delete(ctx, id)
				},
			},
		},
	}
	return plan.execute(ctx)
}

func (s *documentService) restoreComments(ctx context.Context, snapshot []model.Comment) error {
	var errs []error
	for i := range snapshot {
		if _, err := s.comments.Create(ctx, &snapshot[i]); err != nil {
			errs = append(errs, fmt.Errorf("restore comment %s: %w", snapshot[i].ID, err))
		}
	}
	return errors.Join(errs...)
}
