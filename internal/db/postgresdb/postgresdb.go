// Package postgresdb provides a PostgreSQL-based implementation of the storage
// interface for persisting users and their bookmarks. Email uniqueness is
// enforced by a unique constraint; schema migrations run at startup via goose.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// PostgresDB is a PostgreSQL-backed implementation of the storage interface.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

type initOptions struct {
	DBPreReset bool
}

// InitOption defines a functional option for configuring database initialization.
type InitOption func(*initOptions)

// WithDBPreReset enables or disables resetting the database schema before migration.
// It can be used for test setups or development purposes.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// New establishes a connection to the PostgreSQL database,
// runs schema migrations, and returns a configured PostgresDB instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{
		DBPreReset: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			return nil, fmt.Errorf("error while `result.resetDB()` calling: %w", err)
		}
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("error while `goose.SetDialect()` calling: %w", err)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil, fmt.Errorf("error while `goose.Up()` calling: %w", err)
	}

	return result, nil
}

// CreateUser inserts a new user record and returns its assigned id.
// A duplicate email surfaces as models.ErrEmailTaken.
func (db *PostgresDB) CreateUser(ctx context.Context, usr *models.User) (int, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			INSERT INTO users (email, first_name, last_name, password_hash)
				VALUES ($1, $2, $3, $4)
				RETURNING id
		`,
		usr.Email,
		usr.FirstName,
		usr.LastName,
		usr.PasswordHash,
	)

	var userID int
	err := row.Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, models.ErrEmailTaken
		}
		return 0, err
	}

	return userID, nil
}

// GetUserByID fetches a user by id. Absence surfaces as models.ErrUserNotFound.
func (db *PostgresDB) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	return db.scanUser(db.database.QueryRowContext(
		ctx,
		`SELECT id, email, first_name, last_name, password_hash FROM users WHERE id = $1`,
		userID,
	))
}

// GetUserByEmail fetches a user by email. Absence surfaces as models.ErrUserNotFound.
func (db *PostgresDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.scanUser(db.database.QueryRowContext(
		ctx,
		`SELECT id, email, first_name, last_name, password_hash FROM users WHERE email = $1`,
		email,
	))
}

// UpdateUser rewrites the editable profile fields of the given user.
// The password hash is never written through this path.
func (db *PostgresDB) UpdateUser(ctx context.Context, usr *models.User) error {
	result, err := db.database.ExecContext(
		ctx,
		`
			UPDATE users
				SET email = $1, first_name = $2, last_name = $3
				WHERE id = $4
		`,
		usr.Email,
		usr.FirstName,
		usr.LastName,
		usr.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrEmailTaken
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// CreateBookmark inserts a new bookmark and returns its assigned id.
func (db *PostgresDB) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) (int, error) {
	row := db.database.QueryRowContext(
		ctx,
		`
			INSERT INTO bookmarks (title, description, link, user_id)
				VALUES ($1, $2, $3, $4)
				RETURNING id
		`,
		bookmark.Title,
		bookmark.Description,
		bookmark.Link,
		bookmark.UserID,
	)

	var bookmarkID int
	err := row.Scan(&bookmarkID)
	if err != nil {
		return 0, err
	}

	return bookmarkID, nil
}

// GetBookmarkByID fetches a bookmark by id regardless of its owner.
// Ownership checks happen in the bookmark service.
func (db *PostgresDB) GetBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, error) {
	row := db.database.QueryRowContext(
		ctx,
		`SELECT id, title, description, link, user_id FROM bookmarks WHERE id = $1`,
		bookmarkID,
	)

	bookmark := &models.Bookmark{}
	err := row.Scan(&bookmark.ID, &bookmark.Title, &bookmark.Description, &bookmark.Link, &bookmark.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBookmarkNotFound
		}
		return nil, err
	}

	return bookmark, nil
}

// GetUserBookmarks returns all bookmarks owned by the given user.
func (db *PostgresDB) GetUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`SELECT id, title, description, link, user_id FROM bookmarks WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.Bookmark{}
	for rows.Next() {
		var bookmark models.Bookmark
		err = rows.Scan(&bookmark.ID, &bookmark.Title, &bookmark.Description, &bookmark.Link, &bookmark.UserID)
		if err != nil {
			return nil, err
		}

		result = append(result, bookmark)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateBookmark rewrites the editable fields of the given bookmark.
func (db *PostgresDB) UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	result, err := db.database.ExecContext(
		ctx,
		`
			UPDATE bookmarks
				SET title = $1, description = $2, link = $3
				WHERE id = $4
		`,
		bookmark.Title,
		bookmark.Description,
		bookmark.Link,
		bookmark.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrBookmarkNotFound
	}

	return nil
}

// DeleteBookmark removes the bookmark with the given id.
func (db *PostgresDB) DeleteBookmark(ctx context.Context, bookmarkID int) error {
	result, err := db.database.ExecContext(
		ctx,
		`DELETE FROM bookmarks WHERE id = $1`,
		bookmarkID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrBookmarkNotFound
	}

	return nil
}

// Ping verifies connectivity with the PostgreSQL database within the configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

// Close closes the database connection and releases any associated resources.
func (db *PostgresDB) Close() error {
	err := db.database.Close()
	if err != nil {
		return err
	}

	return nil
}

func (db *PostgresDB) scanUser(row *sql.Row) (*models.User, error) {
	usr := &models.User{}
	err := row.Scan(&usr.ID, &usr.Email, &usr.FirstName, &usr.LastName, &usr.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	return usr, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (db *PostgresDB) resetDB(ctx context.Context) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			DO $$
			DECLARE
				r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
					EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`,
	)
	if err != nil {
		return fmt.Errorf("error while `db.database.ExecContext()` calling: %w", err)
	}
	return nil
}
