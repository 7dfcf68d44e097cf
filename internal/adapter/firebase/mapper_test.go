package firebase

import (
	"testing"

	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLooseValue(t *testing.T) {
	tests := []struct {
		in   string
		kind string
	}{
		{"1999", "integer"},
		{"7.5", "double"},
		{"7.50", "string"},
		{"", "string"},
		{" 1999", "string"},
		{"N/A", "string"},
		{"NaN", "string"},
		{"+Inf", "string"},
		{"-Inf", "string"},
		{"Inf", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := looseValue(tt.in)
			switch tt.kind {
			case "integer":
				assert.NotNil(t, v.IntegerValue)
			case "double":
				assert.NotNil(t, v.DoubleValue)
			default:
				assert.NotNil(t, v.StringValue)
			}
			assert.Equal(t, tt.in, fieldString(map[string]Value{"f": v}, "f"), "display string survives")
		})
	}
}

func TestFavoriteDocumentRoundTrip(t *testing.T) {
	fav := domain.Favorite{MovieID: "m7", Title: "Heat", Rating: "8.3", Year: "1995", Plot: "", Poster: "p.jpg"}
	doc := FavoriteDocument(fav)
	doc.Name = "projects/demo/databases/(default)/documents/users/u1/favorites/m7"

	assert.Equal(t, []domain.Favorite{fav}, MapFavorites([]Document{doc}))
}

func TestFieldString(t *testing.T) {
	yes := true
	fields := map[string]Value{
		"b":    {BooleanValue: &yes},
		"null": {},
	}
	assert.Equal(t, "true", fieldString(fields, "b"))
	assert.Equal(t, "", fieldString(fields, "null"))
	assert.Equal(t, "", fieldString(fields, "missing"))
}
