package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"docshelf/internal/model"
	repoMocks "docshelf/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mComments := new(repoMocks.MockCommentRepository)
		mComments.On("ListByDocument", mock.Anything, docID).
			Return([]model.Comment{{ID: "c1"}, {ID: "c2"}}, nil)

		items, err := NewCommentService(mComments, nil, false).List(ctx, docID)

		require.NoError(t, err)
		assert.Len(t, items, 2)
		mComments.AssertExpectations(t)
	})

	t.Run("non-uuid id is looked up like any other", func(t *testing.T) {
		mComments := new(repoMocks.MockCommentRepository)
		mComments.On("ListByDocument", mock.Anything, "nope").Return([]model.Comment{}, nil)

		items, err := NewCommentService(mComments, nil, false).List(ctx, "nope")

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		mComments.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mComments := new(repoMocks.MockCommentRepository)
		mComments.On("ListByDocument", mock.Anything, docID).Return(nil, errors.New("db fail"))

		_, err := NewCommentService(mComments, nil, false).List(ctx, docID)

		assert.EqualError(t, err, "list comments: db fail")
	})
}

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		documentID      string
		content         string
		requireDocument bool
		setupMocks      func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository)
		wantErr         error
	}{
		{
			name:       "orphan comment accepted by default",
			documentID: docID,
			content:    "  looks good  ",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, _ *repoMocks.MockDocumentRepository) {
				mComments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
					return c.Content == "looks good" && c.DocumentID == docID && c.ID != "" && !c.CreatedAt.IsZero()
				})).Return(&model.Comment{ID: "c1", DocumentID: docID, Content: "looks good"}, nil)
			},
		},
		{
			name:       "blank content",
			documentID: docID,
			content:    " \n\t ",
			setupMocks: func(*repoMocks.MockCommentRepository, *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrContentRequired,
		},
		{
			name:       "non-uuid document id accepted",
			documentID: "does-not-exist",
			content:    "hi",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, _ *repoMocks.MockDocumentRepository) {
				mComments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
					return c.DocumentID == "does-not-exist"
				})).Return(&model.Comment{ID: "c1", DocumentID: "does-not-exist", Content: "hi"}, nil)
			},
		},
		{
			name:            "strict mode with non-uuid document id",
			documentID:      "abc",
			content:         "hi",
			requireDocument: true,
			setupMocks: func(_ *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", mock.Anything, "abc").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:            "strict mode with existing document",
			documentID:      docID,
			content:         "hi",
			requireDocument: true,
			setupMocks: func(mComments *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", mock.Anything, docID).Return(&model.Document{ID: docID}, nil)
				mComments.On("Create", mock.Anything, mock.Anything).Return(&model.Comment{ID: "c1"}, nil)
			},
		},
		{
			name:            "strict mode with missing document",
			documentID:      docID,
			content:         "hi",
			requireDocument: true,
			setupMocks: func(_ *repoMocks.MockCommentRepository, mDocs *repoMocks.MockDocumentRepository) {
				mDocs.On("FindByID", mock.Anything, docID).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "repository error",
			documentID: docID,
			content:    "hi",
			setupMocks: func(mComments *repoMocks.MockCommentRepository, _ *repoMocks.MockDocumentRepository) {
				mComments.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("create comment: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mComments := new(repoMocks.MockCommentRepository)
			mDocs := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mComments, mDocs)

			c, err := NewCommentService(mComments, mDocs, tt.requireDocument).Add(ctx, tt.documentID, tt.content)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.NotNil(t, c)
			case errors.Is(tt.wantErr, ErrContentRequired), errors.Is(tt.wantErr, ErrNotFound):
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			mComments.AssertExpectations(t)
			mDocs.AssertExpectations(t)
		})
	}
}
