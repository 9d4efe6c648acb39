package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"docshelf/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commentCols = []string{"id", "document_id", "content", "created_at"}

func TestCommentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCommentPostgres(db)
	now := time.Now().UTC()
	c := &model.Comment{ID: "c1", DocumentID: "d1", Content: "looks good", CreatedAt: now}

	mock.ExpectQuery("INSERT INTO comments").
		WithArgs("c1", "d1", "looks good", now).
		WillReturnRows(sqlmock.NewRows(commentCols).AddRow("c1", "d1", "looks good", now))

	out, err := repo.Create(context.Background(), c)

	assert.NoError(t, err)
	assert.Equal(t, *c, *out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentPostgres_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCommentPostgres(db)
	ctx := context.Background()

	t.Run("oldest first", func(t *testing.T) {
		first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(commentCols).
			AddRow("c1", "d1", "first", first).
			AddRow("c2", "d1", "second", first.Add(time.Minute))

		mock.ExpectQuery("SELECT (.+) FROM comments WHERE document_id = \\$1 ORDER BY created_at ASC, id ASC").
			WithArgs("d1").
			WillReturnRows(rows)

		items, err := repo.ListByDocument(ctx, "d1")

		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "first", items[0].Content)
		assert.Equal(t, "second", items[1].Content)
	})

	t.Run("no comments", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM comments").
			WithArgs("d2").
			WillReturnRows(sqlmock.NewRows(commentCols))

		items, err := repo.ListByDocument(ctx, "d2")

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentPostgres_DeleteByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCommentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM comments WHERE document_id = \\$1").
			WithArgs("d1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := repo.DeleteByDocument(ctx, "d1")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM comments").
			WithArgs("d1").
			WillReturnError(errors.New("lock timeout"))

		n, err := repo.DeleteByDocument(ctx, "d1")

		assert.Error(t, err)
		assert.Zero(t, n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
