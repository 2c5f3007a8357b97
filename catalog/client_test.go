package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/vgdirect-go/apperror"
)

func TestClientFetchGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games/3498", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 3498,
			"name": "Grand Theft Auto V",
			"description_raw": "An open world game.",
			"released": "2013-09-17",
			"background_image": "https://example.com/gta.jpg",
			"platforms": [{"platform": {"name": "PC"}}],
			"genres": [{"name": "Action"}],
			"developers": [{"name": "Rockstar North"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	detail, err := client.FetchGame(context.Background(), 3498)
	require.NoError(t, err)
	require.Equal(t, "Grand Theft Auto V", detail.Name)
	require.Equal(t, "An open world game.", detail.DescriptionRaw)
	require.Len(t, detail.Platforms, 1)
	require.Equal(t, "PC", detail.Platforms[0].Platform.Name)
}

func TestClientFetchGamesPassesQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games", r.URL.Path)
		require.Equal(t, "zelda", r.URL.Query().Get("search"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "15", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "results": [{"id": 22511, "name": "BOTW"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	list, err := client.FetchGames(context.Background(), "zelda", 2, 15)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	require.Len(t, list.Results, 1)
	require.Equal(t, "BOTW", list.Results[0].Name)
}

func TestClientUpstreamErrorIsExternalServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")
	_, err := client.FetchGame(context.Background(), 1)
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, apperror.ExternalServiceError, appErr.Type)
	require.Equal(t, http.StatusBadGateway, appErr.StatusCode())
}

func TestClientUnreachableHostIsExternalServiceError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key")
	_, err := client.FetchGame(context.Background(), 1)
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, apperror.ExternalServiceError, appErr.Type)
}
