package storage

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

// Storage is the full persistence contract implemented by the PostgreSQL,
// JSON-file and in-memory backends.
type Storage interface {
	CreateUser(ctx context.Context, usr *models.User) (int, error)

	GetUserByID(ctx context.Context, userID int) (*models.User, error)

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	UpdateUser(ctx context.Context, usr *models.User) error

	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (int, error)

	GetBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, error)

	GetUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error)

	UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) error

	DeleteBookmark(ctx context.Context, bookmarkID int) error

	Ping(ctx context.Context) error

	Close() error
}
