package memorystorage

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/db/jsondb"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

// MemoryStorage is an in-memory storage backend. It reuses the jsondb cache
// without a backing file, so Close is a no-op and nothing is persisted.
type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: jsondb.CacheStruct{
				Users:          map[int]*models.User{},
				EmailToUserID:  map[string]int{},
				Bookmarks:      map[int]*models.Bookmark{},
				NextUserID:     1,
				NextBookmarkID: 1,
			},
		},
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
