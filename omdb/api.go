package omdb

import (
	"context"
)

// API defines the OMDb operations used by the views
type API interface {
	// SearchMovies searches titles by free text, ten results per page
	SearchMovies(ctx context.Context, query string, page int) (*SearchResponse, error)

	// GetMovieByID fetches a single title with the full plot
	GetMovieByID(ctx context.Context, id string) (*MovieDetails, error)
}

var _ API = (*Client)(nil)
