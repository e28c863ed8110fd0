// Package jsondb implements the storage interface on top of a single JSON
// file. The whole dataset lives in memory and is flushed to disk on Close.
// It backs both the file storage mode and, via the memorystorage package,
// the purely in-memory mode used in tests.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

type JSONDB struct {
	fileName string
	mu       sync.Mutex
	Cache    CacheStruct
}

type CacheStruct struct {
	Users          map[int]*models.User
	EmailToUserID  map[string]int
	Bookmarks      map[int]*models.Bookmark
	NextUserID     int
	NextBookmarkID int
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Users": {},
	"EmailToUserID": {},
	"Bookmarks": {},
	"NextUserID": 1,
	"NextBookmarkID": 1
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cacheMap *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cacheMap)
	if err != nil {
		return err
	}

	return nil
}

// New loads the database file, creating and initializing it when absent.
func New(fileName string) (*JSONDB, error) {
	theDB := JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{},
	}

	err := parseJSONFile(theDB.fileName, &theDB.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		err := initDBFile(fileName)
		if err != nil {
			return nil, err
		}
		err = parseJSONFile(theDB.fileName, &theDB.Cache)
		if err != nil {
			return nil, err
		}
	}

	return &theDB, nil
}

// CreateUser stores a new user and returns the assigned id.
// A duplicate email surfaces as models.ErrEmailTaken.
func (db *JSONDB) CreateUser(ctx context.Context, usr *models.User) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.Cache.EmailToUserID[usr.Email]; exists {
		return 0, models.ErrEmailTaken
	}

	stored := *usr
	stored.ID = db.Cache.NextUserID
	db.Cache.NextUserID++

	db.Cache.Users[stored.ID] = &stored
	db.Cache.EmailToUserID[stored.Email] = stored.ID

	return stored.ID, nil
}

// GetUserByID fetches a user by id. Absence surfaces as models.ErrUserNotFound.
func (db *JSONDB) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	usr, found := db.Cache.Users[userID]
	if !found {
		return nil, models.ErrUserNotFound
	}

	result := *usr

	return &result, nil
}

// GetUserByEmail fetches a user by email. Absence surfaces as models.ErrUserNotFound.
func (db *JSONDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	userID, found := db.Cache.EmailToUserID[email]
	if !found {
		return nil, models.ErrUserNotFound
	}

	result := *db.Cache.Users[userID]

	return &result, nil
}

// UpdateUser rewrites the editable profile fields of the given user.
func (db *JSONDB) UpdateUser(ctx context.Context, usr *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, found := db.Cache.Users[usr.ID]
	if !found {
		return models.ErrUserNotFound
	}

	if otherID, exists := db.Cache.EmailToUserID[usr.Email]; exists && otherID != usr.ID {
		return models.ErrEmailTaken
	}

	delete(db.Cache.EmailToUserID, stored.Email)
	stored.Email = usr.Email
	stored.FirstName = usr.FirstName
	stored.LastName = usr.LastName
	db.Cache.EmailToUserID[stored.Email] = stored.ID

	return nil
}

// CreateBookmark stores a new bookmark and returns the assigned id.
func (db *JSONDB) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored := *bookmark
	stored.ID = db.Cache.NextBookmarkID
	db.Cache.NextBookmarkID++

	db.Cache.Bookmarks[stored.ID] = &stored

	return stored.ID, nil
}

// GetBookmarkByID fetches a bookmark by id regardless of its owner.
func (db *JSONDB) GetBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	bookmark, found := db.Cache.Bookmarks[bookmarkID]
	if !found {
		return nil, models.ErrBookmarkNotFound
	}

	result := *bookmark

	return &result, nil
}

// GetUserBookmarks returns all bookmarks owned by the given user, ordered by id.
func (db *JSONDB) GetUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []models.Bookmark{}
	for bookmarkID := 1; bookmarkID < db.Cache.NextBookmarkID; bookmarkID++ {
		bookmark, found := db.Cache.Bookmarks[bookmarkID]
		if found && bookmark.UserID == userID {
			result = append(result, *bookmark)
		}
	}

	return result, nil
}

// UpdateBookmark rewrites the editable fields of the given bookmark.
func (db *JSONDB) UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, found := db.Cache.Bookmarks[bookmark.ID]
	if !found {
		return models.ErrBookmarkNotFound
	}

	stored.Title = bookmark.Title
	stored.Description = bookmark.Description
	stored.Link = bookmark.Link

	return nil
}

// DeleteBookmark removes the bookmark with the given id.
func (db *JSONDB) DeleteBookmark(ctx context.Context, bookmarkID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, found := db.Cache.Bookmarks[bookmarkID]; !found {
		return models.ErrBookmarkNotFound
	}

	delete(db.Cache.Bookmarks, bookmarkID)

	return nil
}

func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

// Close flushes the cache to the database file.
func (db *JSONDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := writeToJSONFile(db.fileName, db.Cache)
	if err != nil {
		return err
	}

	return nil
}
