package omdb

import (
	"strconv"
	"strings"
)

// Discriminant values of the Response field
const (
	ResponseTrue  = "True"
	ResponseFalse = "False"
)

// NotAvailable is the placeholder OMDb uses for missing values such as posters
const NotAvailable = "N/A"

// PageSize is the fixed number of search results OMDb returns per page
const PageSize = 10

// Movie is a search result summary
type Movie struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// HasPoster reports whether Poster points at an image rather than the placeholder
func (m Movie) HasPoster() bool {
	return m.Poster != "" && m.Poster != NotAvailable
}

// MovieDetails is the full record returned by an IMDb ID lookup
type MovieDetails struct {
	Movie

	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Runtime    string `json:"Runtime"`
	Writer     string `json:"Writer"`
	Language   string `json:"Language"`
	Awards     string `json:"Awards"`
	ImdbRating string `json:"imdbRating"`
	Website    string `json:"Website"`

	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
}

// HasWebsite reports whether an official site is known
func (d MovieDetails) HasWebsite() bool {
	return d.Website != "" && d.Website != NotAvailable
}

// SearchResponse is the raw body of a title search
type SearchResponse struct {
	Search       []Movie `json:"Search"`
	TotalResults string  `json:"totalResults,omitempty"`
	Response     string  `json:"Response"`
	Error        string  `json:"Error,omitempty"`
}

// Total parses totalResults, returning 0 when it is missing or malformed
func (r SearchResponse) Total() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.TotalResults))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
