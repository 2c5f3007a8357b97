package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/user/vgdirect-go/apperror"
)

// rawgNamed is the {"name": ...} shape RAWG uses for genres and developers.
type rawgNamed struct {
	Name string `json:"name"`
}

// rawgPlatform wraps the nested platform object in RAWG responses.
type rawgPlatform struct {
	Platform rawgNamed `json:"platform"`
}

// GameSummary is one entry of a RAWG game list response.
type GameSummary struct {
	ID              int            `json:"id"`
	Name            string         `json:"name"`
	Released        string         `json:"released"`
	BackgroundImage string         `json:"background_image"`
	Platforms       []rawgPlatform `json:"platforms"`
	Genres          []rawgNamed    `json:"genres"`
}

// GameDetail is a RAWG single-game response.
type GameDetail struct {
	ID              int            `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	DescriptionRaw  string         `json:"description_raw"`
	Released        string         `json:"released"`
	BackgroundImage string         `json:"background_image"`
	Platforms       []rawgPlatform `json:"platforms"`
	Genres          []rawgNamed    `json:"genres"`
	Developers      []rawgNamed    `json:"developers"`
}

// ListResponse is a RAWG paginated game list.
type ListResponse struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []GameSummary `json:"results"`
}

// Client talks to the RAWG games API. BaseURL is configurable so tests can
// point it at a local server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a RAWG API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperror.NewInternalError("Failed to build catalog request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewExternalServiceError("Failed to fetch from RAWG API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperror.NewExternalServiceError(
			fmt.Sprintf("RAWG API returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewExternalServiceError("Failed to decode RAWG API response", err)
	}
	return nil
}

// FetchGame retrieves full details for one game by its RAWG id.
func (c *Client) FetchGame(ctx context.Context, rawgID int) (*GameDetail, error) {
	var detail GameDetail
	err := c.get(ctx, "/games/"+strconv.Itoa(rawgID), url.Values{}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// FetchGames retrieves a page of games, optionally filtered by a search
// term.
func (c *Client) FetchGames(ctx context.Context, search string, page, pageSize int) (*ListResponse, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}

	var list ListResponse
	if err := c.get(ctx, "/games", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
