package bookmarks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookmarks/internal/db/memorystorage"
	"github.com/patric-chuzhbe/bookmarks/internal/mockstorage"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

const (
	ownerID    = 1
	strangerID = 2
)

func setupService(t *testing.T) (*Service, *memorystorage.MemoryStorage) {
	t.Helper()

	db, err := memorystorage.New()
	require.NoError(t, err)

	return New(db), db
}

func createTestBookmark(t *testing.T, service *Service) *models.Bookmark {
	t.Helper()

	bookmark, err := service.Create(context.Background(), ownerID, &models.CreateBookmarkRequest{
		Title: "t",
		Link:  "https://x",
	})
	require.NoError(t, err)

	return bookmark
}

func TestCreateBindsOwnerToActingIdentity(t *testing.T) {
	service, _ := setupService(t)

	bookmark := createTestBookmark(t, service)

	assert.Equal(t, ownerID, bookmark.UserID)
	assert.NotZero(t, bookmark.ID)
	assert.Equal(t, "t", bookmark.Title)
	assert.Equal(t, "https://x", bookmark.Link)
}

func TestGetByID(t *testing.T) {
	service, _ := setupService(t)
	bookmark := createTestBookmark(t, service)

	t.Run("owner reads own bookmark", func(t *testing.T) {
		found, err := service.GetByID(context.Background(), ownerID, bookmark.ID)
		require.NoError(t, err)
		assert.Equal(t, bookmark.ID, found.ID)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := service.GetByID(context.Background(), strangerID, bookmark.ID)
		assert.ErrorIs(t, err, models.ErrBookmarkNotFound)
	})

	t.Run("absent bookmark gets the same not found", func(t *testing.T) {
		_, absentErr := service.GetByID(context.Background(), strangerID, 12345)
		_, foreignErr := service.GetByID(context.Background(), strangerID, bookmark.ID)
		assert.Equal(t, absentErr, foreignErr)
	})
}

func TestEdit(t *testing.T) {
	service, _ := setupService(t)
	bookmark := createTestBookmark(t, service)

	t.Run("owner edits partially", func(t *testing.T) {
		newTitle := "edited"
		edited, err := service.Edit(context.Background(), ownerID, bookmark.ID, &models.EditBookmarkRequest{
			Title: &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, "edited", edited.Title)
		assert.Equal(t, "https://x", edited.Link)
	})

	t.Run("stranger gets not found and changes nothing", func(t *testing.T) {
		newTitle := "hacked"
		_, err := service.Edit(context.Background(), strangerID, bookmark.ID, &models.EditBookmarkRequest{
			Title: &newTitle,
		})
		assert.ErrorIs(t, err, models.ErrBookmarkNotFound)

		stored, err := service.GetByID(context.Background(), ownerID, bookmark.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "hacked", stored.Title)
	})
}

func TestDelete(t *testing.T) {
	service, _ := setupService(t)
	bookmark := createTestBookmark(t, service)

	t.Run("stranger gets not found", func(t *testing.T) {
		err := service.Delete(context.Background(), strangerID, bookmark.ID)
		assert.ErrorIs(t, err, models.ErrBookmarkNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := service.Delete(context.Background(), ownerID, bookmark.ID)
		require.NoError(t, err)

		_, err = service.GetByID(context.Background(), ownerID, bookmark.ID)
		assert.ErrorIs(t, err, models.ErrBookmarkNotFound)
	})
}

func TestDeletingAllBookmarksLeavesEmptyListing(t *testing.T) {
	service, _ := setupService(t)

	first := createTestBookmark(t, service)
	second := createTestBookmark(t, service)

	require.NoError(t, service.Delete(context.Background(), ownerID, first.ID))
	require.NoError(t, service.Delete(context.Background(), ownerID, second.ID))

	bookmarks, err := service.List(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestStorageErrorsPropagate(t *testing.T) {
	db := new(mockstorage.StorageMock)
	service := New(db)

	storageErr := errors.New("db error")
	db.On("GetBookmarkByID", mock.Anything, 1).Return(nil, storageErr)

	_, err := service.GetByID(context.Background(), ownerID, 1)
	assert.ErrorIs(t, err, storageErr)
}
