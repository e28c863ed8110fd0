// Package router wires the HTTP surface of the service: public auth routes,
// bearer-protected user and bookmark routes, and the storage health check.
// It decodes and validates request bodies before handler logic runs and maps
// service-level sentinel errors to HTTP statuses.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/bookmarks/internal/auth"
	"github.com/patric-chuzhbe/bookmarks/internal/authenticator"
	"github.com/patric-chuzhbe/bookmarks/internal/gzippedhttp"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/validation"
)

const loginFailedMessage = "invalid email or password"

type authService interface {
	Register(ctx context.Context, request *models.RegisterRequest) (string, error)
	Login(ctx context.Context, request *models.LoginRequest) (string, error)
}

type userService interface {
	Me(ctx context.Context, actorID int) (*models.UserView, error)
	Edit(
		ctx context.Context,
		actorID int,
		targetID int,
		request *models.EditUserRequest,
	) (*models.UserView, error)
}

type bookmarkService interface {
	Create(ctx context.Context, actorID int, request *models.CreateBookmarkRequest) (*models.Bookmark, error)
	List(ctx context.Context, actorID int) ([]models.Bookmark, error)
	GetByID(ctx context.Context, actorID int, bookmarkID int) (*models.Bookmark, error)
	Edit(ctx context.Context, actorID int, bookmarkID int, request *models.EditBookmarkRequest) (*models.Bookmark, error)
	Delete(ctx context.Context, actorID int, bookmarkID int) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Router holds the services the HTTP handlers dispatch to.
type Router struct {
	db        pinger
	auth      authService
	users     userService
	bookmarks bookmarkService
	validator *validation.Validator
}

// New assembles the chi mux with logging, gzip, and authentication middleware
// and registers all routes.
func New(
	db pinger,
	authSvc authService,
	usersSvc userService,
	bookmarksSvc bookmarkService,
	guard authenticator.Authenticator,
) *chi.Mux {
	theRouter := &Router{
		db:        db,
		auth:      authSvc,
		users:     usersSvc,
		bookmarks: bookmarksSvc,
		validator: validation.New(),
	}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.UngzipJSONAndTextHTMLRequest,
		gzippedhttp.GzipResponse,
	)

	router.Post(`/auth/register`, theRouter.PostAuthregister)
	router.Post(`/auth/login`, theRouter.PostAuthlogin)
	router.Get(`/ping`, theRouter.GetPing)

	router.With(guard.Authenticate).Get(`/users/me`, theRouter.GetUsersme)
	router.With(guard.Authenticate).Patch(`/users/{id}`, theRouter.PatchUsersid)

	router.With(guard.Authenticate).Route(`/bookmarks`, func(protected chi.Router) {
		protected.Post(`/`, theRouter.PostBookmarks)
		protected.Get(`/`, theRouter.GetBookmarks)
		protected.Get(`/{id}`, theRouter.GetBookmarksid)
		protected.Patch(`/{id}`, theRouter.PatchBookmarksid)
		protected.Delete(`/{id}`, theRouter.DeleteBookmarksid)
	})

	return router
}

// PostAuthregister handles POST /auth/register: it validates the sign-up
// request, registers the user, and responds 201 with the issued token.
func (r *Router) PostAuthregister(response http.ResponseWriter, request *http.Request) {
	registerRequest := &models.RegisterRequest{}
	if !r.decodeAndValidate(response, request, registerRequest) {
		return
	}

	accessToken, err := r.auth.Register(request.Context(), registerRequest)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			writeJSON(response, http.StatusBadRequest, models.ValidationErrorsResponse{
				Errors: []string{"Email is already taken. Please use another email"},
			})
			return
		}
		internalError(response, "r.auth.Register", err)
		return
	}

	writeJSON(response, http.StatusCreated, models.TokenResponse{AccessToken: accessToken})
}

// PostAuthlogin handles POST /auth/login. An unknown email and a wrong
// password produce the same response, so accounts cannot be enumerated.
func (r *Router) PostAuthlogin(response http.ResponseWriter, request *http.Request) {
	loginRequest := &models.LoginRequest{}
	if !r.decodeAndValidate(response, request, loginRequest) {
		return
	}

	accessToken, err := r.auth.Login(request.Context(), loginRequest)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) || errors.Is(err, models.ErrInvalidCredentials) {
			writeJSON(response, http.StatusBadRequest, models.ValidationErrorsResponse{
				Errors: []string{loginFailedMessage},
			})
			return
		}
		internalError(response, "r.auth.Login", err)
		return
	}

	writeJSON(response, http.StatusOK, models.TokenResponse{AccessToken: accessToken})
}

// GetUsersme handles GET /users/me and returns the acting user's public view.
func (r *Router) GetUsersme(response http.ResponseWriter, request *http.Request) {
	actorID, ok := auth.UserIDFromContext(request.Context())
	if !ok {
		response.WriteHeader(http.StatusUnauthorized)
		return
	}

	userView, err := r.users.Me(request.Context(), actorID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			response.WriteHeader(http.StatusNotFound)
			return
		}
		internalError(response, "r.users.Me", err)
		return
	}

	writeJSON(response, http.StatusOK, userView)
}

// PatchUsersid handles PATCH /users/{id}. Only the acting user's own record
// is editable; any other id is reported as not found.
func (r *Router) PatchUsersid(response http.ResponseWriter, request *http.Request) {
	actorID, ok := auth.UserIDFromContext(request.Context())
	if !ok {
		response.WriteHeader(http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.Atoi(chi.URLParam(request, "id"))
	if err != nil {
		response.WriteHeader(http.StatusNotFound)
		return
	}

	editRequest := &models.EditUserRequest{}
	if !r.decodeAndValidate(response, request, editRequest) {
		return
	}

	userView, err := r.users.Edit(request.Context(), actorID, targetID, editRequest)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			response.WriteHeader(http.StatusNotFound)
		case errors.Is(err, models.ErrEmailTaken):
			writeJSON(response, http.StatusBadRequest, models.ValidationErrorsResponse{
				Errors: []string{"Email is already taken. Please use another email"},
			})
		default:
			internalError(response, "r.users.Edit", err)
		}
		return
	}

	writeJSON(response, http.StatusOK, userView)
}

// PostBookmarks handles POST /bookmarks. The new bookmark's owner is always
// the acting identity.
func (r *Router) PostBookmarks(response http.ResponseWriter, request *http.Request) {
	actorID, ok := auth.UserIDFromContext(request.Context())
	if !ok {
		response.WriteHeader(http.StatusUnauthorized)
		return
	}

	createRequest := &models.CreateBookmarkRequest{}
	if !r.decodeAndValidate(response, request, createRequest) {
		return
	}

	bookmark, err := r.bookmarks.Create(request.Context(), actorID, createRequest)
	if err != nil {
		internalError(response, "r.bookmarks.Create", err)
		return
	}

	writeJSON(response, http.StatusCreated, bookmark)
}

// GetBookmarks handles GET /bookmarks and lists the acting user's bookmarks.
func (r *Router) GetBookmarks(response http.ResponseWriter, request *http.Request) {
	actorID, ok := auth.UserIDFromContext(request.Context())
	if !ok {
		response.WriteHeader(http.StatusUnauthorized)
		return
	}

	bookmarks, err := r.bookmarks.List(request.Context(), actorID)
	if err != nil {
		internalError(response, "r.bookmarks.List", err)
		return
	}

	writeJSON(response, http.StatusOK, bookmarks)
}

// GetBookmarksid handles GET /bookmarks/{id}. A bookmark owned by another
// user is indistinguishable from an absent one.
func (r *Router) GetBookmarksid(response http.ResponseWriter, request *http.Request) {
	actorID, bookmarkID, ok := r.actorAndBookmarkID(response, request)
	if !ok {
		return
	}

	bookmark, err := r.bookmarks.GetByID(request.Context(), actorID, bookmarkID)
	if err != nil {
		if errors.Is(err, models.ErrBookmarkNotFound) {
			response.WriteHeader(http.StatusNotFound)
			return
		}
		internalError(response, "r.bookmarks.GetByID", err)
		return
	}

	writeJSON(response, http.StatusOK, bookmark)
}

// PatchBookmarksid handles PATCH /bookmarks/{id}.
func (r *Router) PatchBookmarksid(response http.ResponseWriter, request *http.Request) {
	actorID, bookmarkID, ok := r.actorAndBookmarkID(response, request)
	if !ok {
		return
	}

	editRequest := &models.EditBookmarkRequest{}
	if !r.decodeAndValidate(response, request, editRequest) {
		return
	}

	bookmark, err := r.bookmarks.Edit(request.Context(), actorID, bookmarkID, editRequest)
	if err != nil {
		if errors.Is(err, models.ErrBookmarkNotFound) {
			response.WriteHeader(http.StatusNotFound)
			return
		}
		internalError(response, "r.bookmarks.Edit", err)
		return
	}

	writeJSON(response, http.StatusOK, bookmark)
}

// DeleteBookmarksid handles DELETE /bookmarks/{id}.
func (r *Router) DeleteBookmarksid(response http.ResponseWriter, request *http.Request) {
	actorID, bookmarkID, ok := r.actorAndBookmarkID(response, request)
	if !ok {
		return
	}

	err := r.bookmarks.Delete(request.Context(), actorID, bookmarkID)
	if err != nil {
		if errors.Is(err, models.ErrBookmarkNotFound) {
			response.WriteHeader(http.StatusNotFound)
			return
		}
		internalError(response, "r.bookmarks.Delete", err)
		return
	}

	response.WriteHeader(http.StatusNoContent)
}

// GetPing handles GET /ping and checks storage connectivity.
func (r *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	if err := r.db.Ping(request.Context()); err != nil {
		internalError(response, "r.db.Ping", err)
		return
	}

	response.WriteHeader(http.StatusOK)
}

func (r *Router) actorAndBookmarkID(
	response http.ResponseWriter,
	request *http.Request,
) (actorID int, bookmarkID int, ok bool) {
	actorID, ok = auth.UserIDFromContext(request.Context())
	if !ok {
		response.WriteHeader(http.StatusUnauthorized)
		return 0, 0, false
	}

	// A non-numeric id matches no bookmark, so it is reported the same way
	// as an absent one.
	bookmarkID, err := strconv.Atoi(chi.URLParam(request, "id"))
	if err != nil {
		response.WriteHeader(http.StatusNotFound)
		return 0, 0, false
	}

	return actorID, bookmarkID, true
}

func (r *Router) decodeAndValidate(
	response http.ResponseWriter,
	request *http.Request,
	target interface{},
) bool {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		writeJSON(response, http.StatusBadRequest, models.ValidationErrorsResponse{
			Errors: []string{"the request body must be valid JSON"},
		})
		return false
	}

	if fieldErrors := r.validator.ValidateStruct(target); fieldErrors != nil {
		writeJSON(response, http.StatusBadRequest, models.ValidationErrorsResponse{
			Errors: fieldErrors,
		})
		return false
	}

	return true
}

func writeJSON(response http.ResponseWriter, statusCode int, body interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(statusCode)
	if err := json.NewEncoder(response).Encode(body); err != nil {
		logger.Log.Debugln("Error encoding the response body: ", zap.Error(err))
	}
}

func internalError(response http.ResponseWriter, origin string, err error) {
	logger.Log.Debugln("Error calling the `"+origin+"()`: ", zap.Error(err))
	response.WriteHeader(http.StatusInternalServerError)
}
