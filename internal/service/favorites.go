package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// FavoriteService manages the per-user favorite flag of each movie.
// A zero domain.User means nobody is logged in.
type FavoriteService struct {
	repo   domain.FavoriteRepository
	cache  domain.MovieCache
	logger *slog.Logger
}

// NewFavoriteService creates a new favorite service. cache may be nil.
func NewFavoriteService(repo domain.FavoriteRepository, cache domain.MovieCache, logger *slog.Logger) *FavoriteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Check reports whether user has favorited movieID. Anonymous users
// never have favorites and the backend is not consulted.
func (s *FavoriteService) Check(ctx context.Context, user domain.User, movieID string) (bool, error) {
	if user.UID == "" {
		return false, nil
	}
	if movieID == "" {
		return false, domain.ErrMissingMovieID
	}

	ok, err := s.repo.IsFavorite(ctx, user.UID, movieID)
	if err != nil {
		s.logger.Error("failed to check favorite", "error", err, "movieID", movieID)
		return false, err
	}
	return ok, nil
}

// Toggle flips the favorite flag from favorited and returns the new state.
// The new state is only meaningful when err is nil.
func (s *FavoriteService) Toggle(ctx context.Context, user domain.User, movie domain.Movie, favorited bool) (bool, error) {
	if user.UID == "" {
		return favorited, domain.ErrNotLoggedIn
	}
	if movie.ID == "" {
		return favorited, domain.ErrMissingMovieID
	}

	if favorited {
		if err := s.repo.RemoveFavorite(ctx, user.UID, movie.ID); err != nil {
			s.logger.Error("failed to remove favorite", "error", err, "movieID", movie.ID)
			return favorited, err
		}
		if s.cache != nil {
			if err := s.cache.DeleteFavorite(user.UID, movie.ID); err != nil {
				s.logger.Warn("failed to uncache favorite", "error", err)
			}
		}
		s.logger.Info("unfavorited movie", "title", movie.Title, "movieID", movie.ID)
		return false, nil
	}

	fav := movie.Snapshot()
	if err := s.repo.AddFavorite(ctx, user.UID, fav); err != nil {
		s.logger.Error("failed to add favorite", "error", err, "movieID", movie.ID)
		return favorited, err
	}
	if s.cache != nil {
		if err := s.cache.PutFavorite(user.UID, fav); err != nil {
			s.logger.Warn("failed to cache favorite", "error", err)
		}
	}
	s.logger.Info("favorited movie", "title", movie.Title, "movieID", movie.ID)
	return true, nil
}

// Cached returns the favorites of user from the local cache
func (s *FavoriteService) Cached(user domain.User) ([]domain.Favorite, bool) {
	if s.cache == nil || user.UID == "" {
		return nil, false
	}
	return s.cache.GetFavorites(user.UID)
}

// List fetches the favorites of user from the backend
func (s *FavoriteService) List(ctx context.Context, user domain.User) ([]domain.Favorite, error) {
	if user.UID == "" {
		return nil, domain.ErrNotLoggedIn
	}

	favs, err := s.repo.ListFavorites(ctx, user.UID)
	if err != nil {
		s.logger.Error("failed to list favorites", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveFavorites(user.UID, favs); err != nil {
			s.logger.Warn("failed to cache favorites", "error", err)
		}
	}

	s.logger.Info("loaded favorites", "count", len(favs))
	return favs, nil
}
