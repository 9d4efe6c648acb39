package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"

	fetchMocks "docshelf/internal/fetcher/mocks"
	"docshelf/internal/model"
	"docshelf/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDocs and memComments are map-backed repositories for tests that check state, not calls.
type memDocs struct {
	mu   sync.Mutex
	rows map[string]model.Document
}

func newMemDocs() *memDocs { return &memDocs{rows: make(map[string]model.Document)} }

func (r *memDocs) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[doc.ID] = *doc
	out := *doc
	return &out, nil
}

func (r *memDocs) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &doc, nil
}

func (r *memDocs) List(_ context.Context) ([]model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.Document, 0, len(r.rows))
	for _, doc := range r.rows {
		items = append(items, doc)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *memDocs) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

type memComments struct {
	mu   sync.Mutex
	rows []model.Comment
}

func (r *memComments) Create(_ context.Context, c *model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *c)
	out := *c
	return &out, nil
}

func (r *memComments) ListByDocument(_ context.Context, documentID string) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.Comment, 0)
	for _, c := range r.rows {
		if c.DocumentID == documentID {
			items = append(items, c)
		}
	}
	return items, nil
}

func (r *memComments) DeleteByDocument(_ context.Context, documentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	var n int64
	for _, c := range r.rows {
		if c.DocumentID == documentID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	r.rows = kept
	return n, nil
}

func TestDocumentService_DeleteRemovesEverything(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory("http://localhost:8080/blobs")
	docs := newMemDocs()
	comments := &memComments{}
	fetch := new(fetchMocks.MockFetcher)

	docSvc := NewDocumentService(store, docs, comments, fetch)
	commentSvc := NewCommentService(comments, docs, false)

	doomed, err := docSvc.Upload(ctx, UploadInput{File: filePart("report.pdf", "%PDF-1.4"), Title: "Report"})
	require.NoError(t, err)
	kept, err := docSvc.Upload(ctx, UploadInput{File: filePart("scan.pdf", "%PDF-1.7"), Title: "Scan"})
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	for _, content := range []string{"first", "second"} {
		_, err := commentSvc.Add(ctx, doomed.ID, content)
		require.NoError(t, err)
	}
	_, err = commentSvc.Add(ctx, kept.ID, "stays")
	require.NoError(t, err)

	require.NoError(t, docSvc.Delete(ctx, doomed.ID))

	left, err := commentSvc.List(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = docSvc.Get(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	key, err := storage.KeyFromURL(doomed.FileURL)
	require.NoError(t, err)
	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	assert.Equal(t, 1, store.Len())

	// The other document is untouched.
	got, err := docSvc.Get(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scan", got.Title)
	others, err := commentSvc.List(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, others, 1)

	fetch.AssertExpectations(t)
}
