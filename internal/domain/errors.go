package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested document does not exist
	ErrNotFound = errors.New("document not found")

	// ErrBackendUnavailable indicates the hosted backend is unreachable
	ErrBackendUnavailable = errors.New("backend is unreachable")

	// ErrUnauthorized indicates the backend rejected our credentials
	ErrUnauthorized = errors.New("request is not authorized")

	// ErrNotLoggedIn indicates an action that requires a signed-in user
	ErrNotLoggedIn = errors.New("must be logged in")

	// ErrMissingMovieID indicates a favorite operation on a movie without id
	ErrMissingMovieID = errors.New("movie id is undefined")
)

// ErrMissingInput indicates a required form field was left empty
var ErrMissingInput = errors.New("please fill in all fields")
