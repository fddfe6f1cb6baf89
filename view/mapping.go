package view

import (
	"cmp"

	"github.com/s0up4200/reelscout/omdb"
)

// Messages shown when the API gives no explanation of its own
const (
	UnknownErrorMessage = "Unknown error"
	NotFoundMessage     = "Movie not found"
	PromptMessage       = "Start typing to search movies"
	abortedMessage      = "request aborted"
)

// SearchResult is the tagged union a search response maps to.
// Items and TotalCount are meaningful only when OK is true,
// ErrorMessage only when it is false.
type SearchResult struct {
	OK           bool
	Items        []omdb.Movie
	TotalCount   int
	ErrorMessage string
}

// MapSearch interprets a decoded search body. Anything that is not a success
// discriminant with a results field lands on the error branch.
func MapSearch(resp *omdb.SearchResponse) SearchResult {
	if resp == nil {
		return SearchResult{ErrorMessage: UnknownErrorMessage}
	}

	if resp.Response == omdb.ResponseTrue && resp.Search != nil {
		return SearchResult{
			OK:         true,
			Items:      resp.Search,
			TotalCount: resp.Total(),
		}
	}

	return SearchResult{ErrorMessage: cmp.Or(resp.Error, UnknownErrorMessage)}
}

// DetailsResult is the tagged union a lookup response maps to
type DetailsResult struct {
	OK           bool
	Movie        omdb.MovieDetails
	ErrorMessage string
}

// MapDetails interprets a decoded lookup body. A success discriminant without
// a record is treated as not found.
func MapDetails(resp *omdb.MovieDetails) DetailsResult {
	if resp == nil {
		return DetailsResult{ErrorMessage: NotFoundMessage}
	}

	if resp.Response == omdb.ResponseTrue && resp.ImdbID != "" {
		return DetailsResult{OK: true, Movie: *resp}
	}

	return DetailsResult{ErrorMessage: cmp.Or(resp.Error, NotFoundMessage)}
}
