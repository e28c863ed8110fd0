// Package bookmarks implements ownership-scoped CRUD on bookmark records.
// Every by-id operation follows the lookup-then-authorize pattern: an absent
// record and a record owned by another user both surface as
// models.ErrBookmarkNotFound, so the existence of other users' bookmarks
// is never revealed.
package bookmarks

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

type bookmarkKeeper interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (int, error)
	GetBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, error)
	GetUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error)
	UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, bookmarkID int) error
}

// Service performs bookmark operations scoped to the acting identity.
type Service struct {
	db bookmarkKeeper
}

// New creates a bookmark Service backed by the given storage.
func New(db bookmarkKeeper) *Service {
	return &Service{
		db: db,
	}
}

// Create stores a new bookmark. The owner is always the acting identity;
// a caller-supplied owner is impossible by construction.
func (s *Service) Create(
	ctx context.Context,
	actorID int,
	request *models.CreateBookmarkRequest,
) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{
		Title:       request.Title,
		Description: request.Description,
		Link:        request.Link,
		UserID:      actorID,
	}

	bookmarkID, err := s.db.CreateBookmark(ctx, bookmark)
	if err != nil {
		return nil, err
	}
	bookmark.ID = bookmarkID

	return bookmark, nil
}

// List returns all bookmarks owned by the acting user.
func (s *Service) List(ctx context.Context, actorID int) ([]models.Bookmark, error) {
	return s.db.GetUserBookmarks(ctx, actorID)
}

// GetByID returns the bookmark with the given id if the acting user owns it.
func (s *Service) GetByID(ctx context.Context, actorID int, bookmarkID int) (*models.Bookmark, error) {
	return s.getOwned(ctx, actorID, bookmarkID)
}

// Edit applies a partial update to a bookmark owned by the acting user.
func (s *Service) Edit(
	ctx context.Context,
	actorID int,
	bookmarkID int,
	request *models.EditBookmarkRequest,
) (*models.Bookmark, error) {
	bookmark, err := s.getOwned(ctx, actorID, bookmarkID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		bookmark.Title = *request.Title
	}
	if request.Description != nil {
		bookmark.Description = *request.Description
	}
	if request.Link != nil {
		bookmark.Link = *request.Link
	}

	err = s.db.UpdateBookmark(ctx, bookmark)
	if err != nil {
		return nil, err
	}

	return bookmark, nil
}

// Delete removes a bookmark owned by the acting user.
func (s *Service) Delete(ctx context.Context, actorID int, bookmarkID int) error {
	_, err := s.getOwned(ctx, actorID, bookmarkID)
	if err != nil {
		return err
	}

	return s.db.DeleteBookmark(ctx, bookmarkID)
}

func (s *Service) getOwned(ctx context.Context, actorID int, bookmarkID int) (*models.Bookmark, error) {
	bookmark, err := s.db.GetBookmarkByID(ctx, bookmarkID)
	if err != nil {
		return nil, err
	}

	if bookmark.UserID != actorID {
		return nil, models.ErrBookmarkNotFound
	}

	return bookmark, nil
}
