package catalog

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	descriptionLimit   = 300
	noDescription      = "No description available"
	unknownPlaceholder = "Unknown"
)

// Game is a row of the games table.
type Game struct {
	GameID      int     `json:"game_id"`
	RawgID      int     `json:"rawg_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Platform    *string `json:"platform"`
	ReleaseYear *int    `json:"release_year"`
	Genre       *string `json:"genre"`
	Developer   *string `json:"developer"`
	ImageURL    *string `json:"image_url"`
}

// truncateDescription prefers the plain-text description, falls back to the
// HTML one, and cuts anything over the limit. The cut backs up to a rune
// boundary so it never produces invalid UTF-8.
func truncateDescription(raw, html string) string {
	description := raw
	if description == "" {
		description = html
	}
	if description == "" {
		description = noDescription
	}
	if len(description) <= descriptionLimit {
		return description
	}
	cut := descriptionLimit
	for cut > 0 && !utf8.RuneStart(description[cut]) {
		cut--
	}
	return description[:cut] + "..."
}

// joinNames joins name fields with commas. A missing list maps to
// "Unknown"; an empty one joins to the empty string.
func joinNames(items []rawgNamed) string {
	if items == nil {
		return unknownPlaceholder
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

// joinPlatforms joins the nested platform names with commas.
func joinPlatforms(items []rawgPlatform) string {
	if items == nil {
		return unknownPlaceholder
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Platform.Name
	}
	return strings.Join(names, ", ")
}

// releaseYear extracts the year from a RAWG release date (YYYY-MM-DD). An
// empty or unparseable date yields nil.
func releaseYear(released string) *int {
	if released == "" {
		return nil
	}
	yearPart, _, _ := strings.Cut(released, "-")
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil
	}
	return &year
}

// mapDetail converts a RAWG game detail into a games row.
func mapDetail(rawgID int, d *GameDetail) *Game {
	title := d.Name
	if title == "" {
		title = unknownPlaceholder
	}
	description := truncateDescription(d.DescriptionRaw, d.Description)
	platform := joinPlatforms(d.Platforms)
	genre := joinNames(d.Genres)
	developer := joinNames(d.Developers)
	imageURL := d.BackgroundImage

	return &Game{
		RawgID:      rawgID,
		Title:       title,
		Description: &description,
		Platform:    &platform,
		ReleaseYear: releaseYear(d.Released),
		Genre:       &genre,
		Developer:   &developer,
		ImageURL:    &imageURL,
	}
}

// mapSummary converts a RAWG list entry into a games row. List entries
// carry no description, genre detail, or developer, so those stay null.
func mapSummary(g *GameSummary) *Game {
	platform := joinPlatforms(g.Platforms)
	imageURL := g.BackgroundImage

	return &Game{
		RawgID:      g.ID,
		Title:       g.Name,
		Platform:    &platform,
		ReleaseYear: releaseYear(g.Released),
		ImageURL:    &imageURL,
	}
}
