// Package mockstorage provides a testify-based mock implementation
// of the internal storage interfaces used by the router and service packages.
// It is used for unit testing HTTP handlers by simulating storage behavior.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

// StorageMock is a testify mock that implements the full storage interface.
//
// Use it in handler and service tests to simulate database behavior.
type StorageMock struct {
	mock.Mock
}

// CreateUser mocks inserting a user record.
func (m *StorageMock) CreateUser(ctx context.Context, usr *models.User) (int, error) {
	args := m.Called(ctx, usr)
	return args.Int(0), args.Error(1)
}

// GetUserByID mocks fetching a user by id.
func (m *StorageMock) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*models.User)
	return usr, args.Error(1)
}

// GetUserByEmail mocks fetching a user by email.
func (m *StorageMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*models.User)
	return usr, args.Error(1)
}

// UpdateUser mocks rewriting a user's profile fields.
func (m *StorageMock) UpdateUser(ctx context.Context, usr *models.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

// CreateBookmark mocks inserting a bookmark record.
func (m *StorageMock) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (int, error) {
	args := m.Called(ctx, bookmark)
	return args.Int(0), args.Error(1)
}

// GetBookmarkByID mocks fetching a bookmark by id.
func (m *StorageMock) GetBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, error) {
	args := m.Called(ctx, bookmarkID)
	bookmark, _ := args.Get(0).(*models.Bookmark)
	return bookmark, args.Error(1)
}

// GetUserBookmarks mocks listing a user's bookmarks.
func (m *StorageMock) GetUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	args := m.Called(ctx, userID)
	bookmarks, _ := args.Get(0).([]models.Bookmark)
	return bookmarks, args.Error(1)
}

// UpdateBookmark mocks rewriting a bookmark's fields.
func (m *StorageMock) UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

// DeleteBookmark mocks removing a bookmark.
func (m *StorageMock) DeleteBookmark(ctx context.Context, bookmarkID int) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

// Ping mocks the storage health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks releasing storage resources.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
