package view

import (
	"context"
	"sync"

	"github.com/s0up4200/reelscout/omdb"
)

// fakeAPI is an omdb.API whose answers are supplied per test
type fakeAPI struct {
	mu          sync.Mutex
	searchCalls []string
	detailCalls []string

	search  func(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
	details func(ctx context.Context, id string) (*omdb.MovieDetails, error)
}

func (f *fakeAPI) SearchMovies(ctx context.Context, query string, page int) (*omdb.SearchResponse, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	f.mu.Unlock()

	return f.search(ctx, query, page)
}

func (f *fakeAPI) GetMovieByID(ctx context.Context, id string) (*omdb.MovieDetails, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, id)
	f.mu.Unlock()

	return f.details(ctx, id)
}

func (f *fakeAPI) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func (f *fakeAPI) detailCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.detailCalls)
}

var batmanResults = []omdb.Movie{
	{ImdbID: "tt0372784", Title: "Batman Begins", Year: "2005", Poster: "https://example.com/b.jpg", Type: "movie"},
	{ImdbID: "tt0096895", Title: "Batman", Year: "1989", Poster: "N/A", Type: "movie"},
}

func searchOK(items []omdb.Movie, total string) func(context.Context, string, int) (*omdb.SearchResponse, error) {
	return func(context.Context, string, int) (*omdb.SearchResponse, error) {
		return &omdb.SearchResponse{Search: items, TotalResults: total, Response: omdb.ResponseTrue}, nil
	}
}
