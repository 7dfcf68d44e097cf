package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Movie is a catalog record as stored in the movies collection.
// Year and Rating hold the raw display value because the backend stores
// either numbers or strings for them.
type Movie struct {
	ID          string `json:"id"`           // Document id, assigned by the backend
	Title       string `json:"title"`        // Display title
	Year        string `json:"year"`         // Release year (raw)
	Rating      string `json:"rating"`       // Audience rating (raw)
	Plot        string `json:"plot"`         // Synopsis
	Poster      string `json:"poster"`       // Poster image URL
	ReleaseDate string `json:"release_date"` // Optional full release date
}

// YearValue returns the year as a number, or NaN when it is not numeric.
func (m Movie) YearValue() float64 {
	return parseNumber(m.Year)
}

// RatingValue returns the rating as a number, or NaN when it is not numeric.
func (m Movie) RatingValue() float64 {
	return parseNumber(m.Rating)
}

// Released returns the release date, falling back to January 1st of Year.
// The boolean is false when neither is usable.
func (m Movie) Released() (time.Time, bool) {
	if m.ReleaseDate != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02", "January 2, 2006", "2 Jan 2006"} {
			if t, err := time.Parse(layout, strings.TrimSpace(m.ReleaseDate)); err == nil {
				return t, true
			}
		}
	}
	y := m.YearValue()
	if math.IsNaN(y) {
		return time.Time{}, false
	}
	return time.Date(int(y), time.January, 1, 0, 0, 0, 0, time.UTC), true
}

// DisplayRating returns the rating or "N/A"
func (m Movie) DisplayRating() string {
	if m.Rating == "" {
		return "N/A"
	}
	return m.Rating
}

// DisplayYear returns the year or "Unknown"
func (m Movie) DisplayYear() string {
	if m.Year == "" {
		return "Unknown"
	}
	return m.Year
}

// DisplayPlot returns the plot or a placeholder
func (m Movie) DisplayPlot() string {
	if m.Plot == "" {
		return "No description available."
	}
	return m.Plot
}

// DisplayTitle returns the title or a placeholder
func (m Movie) DisplayTitle() string {
	if m.Title == "" {
		return "No Title Available"
	}
	return m.Title
}

// Snapshot builds the denormalized favorite record for this movie.
func (m Movie) Snapshot() Favorite {
	return Favorite{
		MovieID: m.ID,
		Title:   m.Title,
		Rating:  m.Rating,
		Year:    m.Year,
		Plot:    m.Plot,
		Poster:  m.Poster,
	}
}

// parseNumber coerces a loosely typed field to a finite decimal number.
// Surrounding whitespace is ignored. Anything else is NaN, including empty
// strings, hex notation and infinities.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Favorite is a per-user snapshot of a movie, keyed by (user, movie).
// It is created or deleted, never updated.
type Favorite struct {
	MovieID string `json:"movie_id"`
	Title   string `json:"title"`
	Rating  string `json:"rating"`
	Year    string `json:"year"`
	Plot    string `json:"plot"`
	Poster  string `json:"poster"`
}

// Movie converts the snapshot back into a displayable movie record.
func (f Favorite) Movie() Movie {
	return Movie{
		ID:     f.MovieID,
		Title:  f.Title,
		Year:   f.Year,
		Rating: f.Rating,
		Plot:   f.Plot,
		Poster: f.Poster,
	}
}

// FavoriteMovies converts a favorites list into movies, preserving order.
func FavoriteMovies(favs []Favorite) []Movie {
	movies := make([]Movie, len(favs))
	for i, f := range favs {
		movies[i] = f.Movie()
	}
	return movies
}

// User is an authenticated account as reported by the auth service.
type User struct {
	UID         string
	Email       string
	DisplayName string
}

// Name returns the display name, falling back to the email address.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// UserProfile is the document written to the users collection on signup.
type UserProfile struct {
	UID       string
	Username  string
	Email     string
	CreatedAt time.Time
}
