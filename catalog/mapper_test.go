package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncateDescriptionPrefersPlainText(t *testing.T) {
	got := truncateDescription("plain text", "<p>html</p>")
	require.Equal(t, "plain text", got)
}

func TestTruncateDescriptionFallsBackToHTML(t *testing.T) {
	got := truncateDescription("", "<p>html</p>")
	require.Equal(t, "<p>html</p>", got)
}

func TestTruncateDescriptionPlaceholderWhenEmpty(t *testing.T) {
	require.Equal(t, "No description available", truncateDescription("", ""))
}

func TestTruncateDescriptionCutsLongText(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := truncateDescription(long, "")
	require.Len(t, got, 303)
	require.True(t, strings.HasSuffix(got, "..."))
	require.Equal(t, strings.Repeat("a", 300), got[:300])
}

func TestTruncateDescriptionRespectsRuneBoundaries(t *testing.T) {
	// 299 ASCII bytes followed by a three-byte rune straddling the limit.
	long := strings.Repeat("a", 299) + "日本語"
	got := truncateDescription(long, "")
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("a", 299)+"...", got)
}

func TestTruncateDescriptionKeepsExactLimit(t *testing.T) {
	exact := strings.Repeat("b", 300)
	require.Equal(t, exact, truncateDescription(exact, ""))
}

func TestJoinNames(t *testing.T) {
	tests := []struct {
		name  string
		items []rawgNamed
		want  string
	}{
		{"missing list", nil, "Unknown"},
		{"empty list", []rawgNamed{}, ""},
		{"single", []rawgNamed{{Name: "RPG"}}, "RPG"},
		{"multiple", []rawgNamed{{Name: "RPG"}, {Name: "Action"}}, "RPG, Action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, joinNames(tt.items))
		})
	}
}

func TestJoinPlatforms(t *testing.T) {
	require.Equal(t, "Unknown", joinPlatforms(nil))
	require.Equal(t, "PC, PlayStation 5", joinPlatforms([]rawgPlatform{
		{Platform: rawgNamed{Name: "PC"}},
		{Platform: rawgNamed{Name: "PlayStation 5"}},
	}))
}

func TestReleaseYear(t *testing.T) {
	year := releaseYear("2017-03-03")
	require.NotNil(t, year)
	require.Equal(t, 2017, *year)

	require.Nil(t, releaseYear(""))
	require.Nil(t, releaseYear("soon"))
}

func TestMapDetail(t *testing.T) {
	detail := &GameDetail{
		Name:            "The Witness",
		DescriptionRaw:  "A puzzle game.",
		Released:        "2016-01-26",
		BackgroundImage: "https://example.com/witness.jpg",
		Platforms:       []rawgPlatform{{Platform: rawgNamed{Name: "PC"}}},
		Genres:          []rawgNamed{{Name: "Puzzle"}},
		Developers:      []rawgNamed{{Name: "Thekla"}},
	}

	game := mapDetail(22364, detail)

	require.Equal(t, 22364, game.RawgID)
	require.Equal(t, "The Witness", game.Title)
	require.Equal(t, "A puzzle game.", *game.Description)
	require.Equal(t, "PC", *game.Platform)
	require.Equal(t, 2016, *game.ReleaseYear)
	require.Equal(t, "Puzzle", *game.Genre)
	require.Equal(t, "Thekla", *game.Developer)
	require.Equal(t, "https://example.com/witness.jpg", *game.ImageURL)
}

func TestMapDetailEmptyResponse(t *testing.T) {
	game := mapDetail(99, &GameDetail{})

	require.Equal(t, "Unknown", game.Title)
	require.Equal(t, "No description available", *game.Description)
	require.Equal(t, "Unknown", *game.Platform)
	require.Equal(t, "Unknown", *game.Genre)
	require.Equal(t, "Unknown", *game.Developer)
	require.Nil(t, game.ReleaseYear)
}

func TestMapSummaryLeavesDetailFieldsNull(t *testing.T) {
	summary := &GameSummary{
		ID:              3498,
		Name:            "GTA V",
		Released:        "2013-09-17",
		BackgroundImage: "https://example.com/gta.jpg",
		Platforms:       []rawgPlatform{{Platform: rawgNamed{Name: "PC"}}},
	}

	game := mapSummary(summary)

	require.Equal(t, 3498, game.RawgID)
	require.Equal(t, "GTA V", game.Title)
	require.Nil(t, game.Description)
	require.Nil(t, game.Genre)
	require.Nil(t, game.Developer)
	require.Equal(t, 2013, *game.ReleaseYear)
}
