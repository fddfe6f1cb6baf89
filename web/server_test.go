package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/reelscout/config"
	"github.com/s0up4200/reelscout/favorites"
	"github.com/s0up4200/reelscout/omdb"
)

type fakeAPI struct {
	mu          sync.Mutex
	searchCalls int
}

var catalog = map[string]*omdb.MovieDetails{
	"tt0372784": {
		Movie:      omdb.Movie{ImdbID: "tt0372784", Title: "Batman Begins", Year: "2005", Poster: "https://example.com/b.jpg", Type: "movie"},
		Genre:      "Action, Crime",
		Director:   "Christopher Nolan",
		Runtime:    "140 min",
		ImdbRating: "8.2",
		Website:    "https://example.com/batman",
		Response:   omdb.ResponseTrue,
	},
	"tt0096895": {
		Movie:    omdb.Movie{ImdbID: "tt0096895", Title: "Batman", Year: "1989", Poster: "N/A", Type: "movie"},
		Director: "Tim Burton",
		Website:  "N/A",
		Response: omdb.ResponseTrue,
	},
}

func (f *fakeAPI) SearchMovies(_ context.Context, query string, page int) (*omdb.SearchResponse, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()

	switch query {
	case "batman":
		return &omdb.SearchResponse{
			Search:       []omdb.Movie{catalog["tt0372784"].Movie, catalog["tt0096895"].Movie},
			TotalResults: "2",
			Response:     omdb.ResponseTrue,
		}, nil
	case "offline":
		return nil, errors.New("request failed: connection refused")
	default:
		return &omdb.SearchResponse{Response: omdb.ResponseFalse, Error: "Movie not found!"}, nil
	}
}

func (f *fakeAPI) GetMovieByID(_ context.Context, id string) (*omdb.MovieDetails, error) {
	if id == "tt-down" {
		return nil, &omdb.HTTPError{StatusCode: 503, StatusText: "Service Unavailable"}
	}
	if d, ok := catalog[id]; ok {
		copied := *d
		return &copied, nil
	}
	return &omdb.MovieDetails{Response: omdb.ResponseFalse, Error: "Movie not found!"}, nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func newTestServer(t *testing.T) (*Server, *fakeAPI, *favorites.Store) {
	t.Helper()

	api := &fakeAPI{}
	store := favorites.New()
	srv, err := NewServer(config.ServerConfig{Addr: ":0", FavoritesConcurrency: 2}, api, store, nil, zerolog.Nop())
	require.NoError(t, err)

	return srv, api, store
}

func do(t *testing.T, srv *Server, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func get(t *testing.T, srv *Server, target string) (*http.Response, string) {
	t.Helper()
	return do(t, srv, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(t *testing.T, srv *Server, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := do(t, srv, req)
	return resp
}

func TestNewServerRequiresDependencies(t *testing.T) {
	_, err := NewServer(config.ServerConfig{}, nil, favorites.New(), nil, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewServer(config.ServerConfig{}, &fakeAPI{}, nil, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestSearchPageEmptyQuery(t *testing.T) {
	srv, api, _ := newTestServer(t)

	resp, body := get(t, srv, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Start typing to search movies")
	assert.NotContains(t, body, "Loading")
	assert.Equal(t, 0, api.calls())
}

func TestSearchPageResults(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := get(t, srv, "/?q=batman")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Batman Begins")
	assert.Contains(t, body, `href="/movie/tt0096895"`)
	assert.Contains(t, body, "/static/placeholder.svg")
	assert.Contains(t, body, "Page 1 of 1")
	assert.Less(t, strings.Index(body, "Batman Begins"), strings.Index(body, "/movie/tt0096895"))
}

func TestSearchPageErrors(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, body := get(t, srv, "/?q=zzzz")
	assert.Contains(t, body, "Movie not found!")

	_, body = get(t, srv, "/?q=offline")
	assert.Contains(t, body, "request failed: connection refused")
	assert.NotContains(t, body, "Loading")
}

func TestSearchPageFilter(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, body := get(t, srv, "/?q=batman&filter="+url.QueryEscape("HasPoster"))
	assert.Contains(t, body, "Batman Begins")
	assert.NotContains(t, body, `href="/movie/tt0096895"`)

	_, body = get(t, srv, "/?q=batman&filter="+url.QueryEscape("Title =="))
	assert.Contains(t, body, "compilation error")
	assert.Contains(t, body, `href="/movie/tt0096895"`)
}

func TestDetailsPage(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, body := get(t, srv, "/movie/tt0372784")
	assert.Contains(t, body, "Christopher Nolan")
	assert.Contains(t, body, "Official Site")
	assert.Contains(t, body, "☆ Add to Favorites")

	_, body = get(t, srv, "/movie/tt0096895")
	assert.NotContains(t, body, "Official Site")

	_, body = get(t, srv, "/movie/tt9999999")
	assert.Contains(t, body, "Movie not found!")

	_, body = get(t, srv, "/movie/tt-down")
	assert.Contains(t, body, "Service Unavailable")
}

func TestFavoriteVisibleOnDetailsPage(t *testing.T) {
	srv, _, store := newTestServer(t)

	resp := postForm(t, srv, "/favorites/tt0372784", url.Values{"return": {"/?q=batman"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?q=batman", resp.Header.Get("Location"))
	assert.True(t, store.IsFavorite("tt0372784"))

	_, body := get(t, srv, "/?q=batman")
	assert.Contains(t, body, "★ Fav</button>")
	assert.Contains(t, body, "☆ Fav</button>")

	_, body = get(t, srv, "/movie/tt0372784")
	assert.Contains(t, body, "★ Favorited")

	postForm(t, srv, "/favorites/tt0372784", url.Values{"return": {"/movie/tt0372784"}})
	_, body = get(t, srv, "/movie/tt0372784")
	assert.Contains(t, body, "☆ Add to Favorites")
}

func TestToggleRejectsForeignRedirect(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, target := range []string{"//evil.example", "https://evil.example", "", `/\evil.example`, "/\t/evil.example", "/\n/evil.example"} {
		resp := postForm(t, srv, "/favorites/tt0372784", url.Values{"return": {target}})
		assert.Equal(t, "/movie/tt0372784", resp.Header.Get("Location"), target)
	}
}

func TestAPISearchEmptyItemsAreArrays(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, target := range []string{"/api/search", "/api/search?q=offline"} {
		_, body := get(t, srv, target)
		assert.Contains(t, body, `"items":[]`, target)
		assert.NotContains(t, body, `"items":null`, target)
	}
}

func TestFavoritesPage(t *testing.T) {
	srv, _, store := newTestServer(t)

	_, body := get(t, srv, "/favorites")
	assert.Contains(t, body, "No favorites yet")

	store.Toggle("tt0096895")
	store.Toggle("tt0372784")
	store.Toggle("tt-down")

	_, body = get(t, srv, "/favorites")
	assert.Contains(t, body, "Batman Begins")
	assert.Contains(t, body, "Service Unavailable")
	assert.Less(t, strings.Index(body, "/movie/tt0096895"), strings.Index(body, "/movie/tt0372784"))
	assert.Contains(t, body, "Favorites (3)")
}

func TestAPISearch(t *testing.T) {
	srv, _, store := newTestServer(t)
	store.Toggle("tt0096895")

	resp, body := get(t, srv, "/api/search?q=batman")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Status     string       `json:"status"`
		Query      string       `json:"query"`
		Page       int          `json:"page"`
		Items      []omdb.Movie `json:"items"`
		TotalCount int          `json:"totalCount"`
		TotalPages int          `json:"totalPages"`
		Favorites  []string     `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	assert.Equal(t, "loaded", got.Status)
	assert.Equal(t, 1, got.Page)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "tt0372784", got.Items[0].ImdbID)
	assert.Equal(t, 2, got.TotalCount)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, []string{"tt0096895"}, got.Favorites)
}

func TestAPIDetailsAndToggle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, body := do(t, srv, httptest.NewRequest(http.MethodPost, "/api/favorites/tt0372784", nil))
	assert.JSONEq(t, `{"id":"tt0372784","favorite":true}`, body)

	_, body = get(t, srv, "/api/movie/tt0372784")
	var got struct {
		Status   string             `json:"status"`
		Movie    *omdb.MovieDetails `json:"movie"`
		Favorite bool               `json:"favorite"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "loaded", got.Status)
	require.NotNil(t, got.Movie)
	assert.Equal(t, "Batman Begins", got.Movie.Title)
	assert.True(t, got.Favorite)

	_, body = get(t, srv, "/api/movie/tt9999999")
	assert.JSONEq(t, `{"status":"error","id":"tt9999999","error":"Movie not found!","favorite":false}`, body)

	_, body = get(t, srv, "/api/favorites")
	assert.JSONEq(t, `{"favorites":["tt0372784"]}`, body)
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","favorites":0}`, body)
}

func TestSafeReturn(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/?q=batman", "/?q=batman"},
		{"/favorites", "/favorites"},
		{"", "/fallback"},
		{"//evil.example", "/fallback"},
		{"http://evil.example", "/fallback"},
		{`/\evil`, "/fallback"},
		{"/\t/evil.example", "/fallback"},
		{"/\n/evil.example", "/fallback"},
		{"/\r\n/evil.example", "/fallback"},
		{"/movie/tt0372784?from=%2F%2Fx", "/movie/tt0372784?from=%2F%2Fx"},
		{"movie/tt0372784", "/fallback"},
		{"https:/evil.example", "/fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, safeReturn(tt.target, "/fallback"))
		})
	}
}
