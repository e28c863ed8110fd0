// Package users implements profile reads and edits for the authenticated user.
package users

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

type userKeeper interface {
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	UpdateUser(ctx context.Context, usr *models.User) error
}

// Service performs user profile operations scoped to the acting identity.
type Service struct {
	db userKeeper
}

// New creates a user Service backed by the given storage.
func New(db userKeeper) *Service {
	return &Service{
		db: db,
	}
}

// Me returns the public view of the acting user.
func (s *Service) Me(ctx context.Context, actorID int) (*models.UserView, error) {
	usr, err := s.db.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return usr.View(), nil
}

// Edit applies a partial profile update. Only the acting user's own record
// is editable; a foreign or absent target id surfaces as
// models.ErrUserNotFound, so the two cases are indistinguishable.
// The password hash is never touched through this path.
func (s *Service) Edit(
	ctx context.Context,
	actorID int,
	targetID int,
	request *models.EditUserRequest,
) (*models.UserView, error) {
	if targetID != actorID {
		return nil, models.ErrUserNotFound
	}

	usr, err := s.db.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if request.Email != nil {
		usr.Email = *request.Email
	}
	if request.FirstName != nil {
		usr.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		usr.LastName = *request.LastName
	}

	err = s.db.UpdateUser(ctx, usr)
	if err != nil {
		return nil, err
	}

	return usr.View(), nil
}
