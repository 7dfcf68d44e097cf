package firebase

import (
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// DocumentID returns the last segment of a document resource name
func DocumentID(name string) string {
	return path.Base(name)
}

// MapMovies converts movie documents to domain movies
func MapMovies(docs []Document) []domain.Movie {
	movies := make([]domain.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, mapMovie(d))
	}
	return movies
}

func mapMovie(d Document) domain.Movie {
	return domain.Movie{
		ID:          DocumentID(d.Name),
		Title:       fieldString(d.Fields, "title"),
		Year:        fieldString(d.Fields, "year"),
		Rating:      fieldString(d.Fields, "rating"),
		Plot:        fieldString(d.Fields, "plot"),
		Poster:      fieldString(d.Fields, "poster"),
		ReleaseDate: fieldString(d.Fields, "releaseDate"),
	}
}

// MapFavorites converts favorite documents to domain favorites.
// The movie id is the document id, not a field.
func MapFavorites(docs []Document) []domain.Favorite {
	favs := make([]domain.Favorite, 0, len(docs))
	for _, d := range docs {
		favs = append(favs, domain.Favorite{
			MovieID: DocumentID(d.Name),
			Title:   fieldString(d.Fields, "title"),
			Rating:  fieldString(d.Fields, "rating"),
			Year:    fieldString(d.Fields, "year"),
			Plot:    fieldString(d.Fields, "plot"),
			Poster:  fieldString(d.Fields, "poster"),
		})
	}
	return favs
}

// FavoriteDocument builds the stored snapshot of a favorite
func FavoriteDocument(f domain.Favorite) Document {
	return Document{Fields: map[string]Value{
		"title":  stringValue(f.Title),
		"rating": looseValue(f.Rating),
		"year":   looseValue(f.Year),
		"plot":   stringValue(f.Plot),
		"poster": stringValue(f.Poster),
	}}
}

// ProfileDocument builds the users collection record written at signup
func ProfileDocument(p domain.UserProfile) Document {
	ts := p.CreatedAt.UTC().Format(time.RFC3339Nano)
	return Document{Fields: map[string]Value{
		"uid":       stringValue(p.UID),
		"username":  stringValue(p.Username),
		"email":     stringValue(p.Email),
		"createdAt": {TimestampValue: &ts},
	}}
}

// fieldString renders a scalar field as its display string.
// Missing, null and composite values render as "".
func fieldString(fields map[string]Value, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.IntegerValue != nil:
		return *v.IntegerValue
	case v.DoubleValue != nil:
		return strconv.FormatFloat(*v.DoubleValue, 'f', -1, 64)
	case v.BooleanValue != nil:
		return strconv.FormatBool(*v.BooleanValue)
	case v.TimestampValue != nil:
		return *v.TimestampValue
	}
	return ""
}

func stringValue(s string) Value {
	return Value{StringValue: &s}
}

// looseValue keeps numbers numeric so snapshots round-trip with the
// same type as the movie document they were taken from.
func looseValue(s string) Value {
	if s == "" || strings.TrimSpace(s) != s {
		return stringValue(s)
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{IntegerValue: &s}
	}
	// NaN and infinities parse but cannot be encoded as a JSON number
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		strconv.FormatFloat(f, 'f', -1, 64) == s {
		return Value{DoubleValue: &f}
	}
	return stringValue(s)
}
