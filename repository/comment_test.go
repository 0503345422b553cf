package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/models"
	"stockfolio/repository"
	"stockfolio/testutil"
)

func TestCommentRepository_CRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormCommentRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "carol")
	stock := createStock(t, db, "IBM", "IBM")

	comment := &models.Comment{Title: "Old but gold", Content: "Dividend keeps coming", StockID: stock.ID, UserID: user.ID}
	require.NoError(t, repo.Create(ctx, comment))
	require.NotZero(t, comment.ID)
	assert.Equal(t, "carol", comment.User.UserName)
	assert.False(t, comment.CreatedOn.IsZero())

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old but gold", got.Title)
	assert.Equal(t, stock.ID, got.StockID)
	assert.Equal(t, "carol", got.User.UserName)

	updated, err := repo.Update(ctx, comment.ID, "New title", "New content here")
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New content here", updated.Content)
	assert.Equal(t, stock.ID, updated.StockID)
	assert.Equal(t, "carol", updated.User.UserName)

	got, err = repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)

	deleted, err := repo.Delete(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", deleted.Title)

	_, err = repo.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCommentRepository_List(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormCommentRepository(db)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	user := createUser(t, db, "dave")
	stock := createStock(t, db, "ORCL", "Oracle")
	for _, title := range []string{"First take", "Second take"} {
		require.NoError(t, repo.Create(ctx, &models.Comment{Title: title, Content: "content!", StockID: stock.ID, UserID: user.ID}))
	}

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "First take", comments[0].Title)
	assert.Equal(t, "Second take", comments[1].Title)
	assert.Equal(t, "dave", comments[1].User.UserName)
}

func TestCommentRepository_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormCommentRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, 7, "title", "content")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Delete(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCommentRepository_Create_UnknownStockFails(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGormCommentRepository(db)

	user := createUser(t, db, "erin")
	err := repo.Create(context.Background(), &models.Comment{Title: "Orphan", Content: "No stock", StockID: 999, UserID: user.ID})
	assert.Error(t, err)
}
