// Package omdb provides a client for the OMDb (Open Movie Database) API.
//
// The client is deliberately thin: it builds the two query URLs reelscout
// needs (search by title and lookup by IMDb ID) and hands transport to
// FetchJSON. Interpreting the API's own Response/Error fields is left to
// the caller, see package view.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := omdb.NewClient(apiKey, logger, omdb.WithTimeout(10*time.Second))
//
//	resp, err := client.SearchMovies(ctx, "batman", 1)
//	if err != nil {
//		var httpErr *omdb.HTTPError
//		if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
//			// bad or missing API key
//		}
//	}
//
// # Error Handling
//
//   - ErrEmptyQuery: SearchMovies was called with a blank query
//   - ErrEmptyID: GetMovieByID was called with a blank identifier
//   - HTTPError: the API answered with a non-2xx status; the body is not read
//
// The "True"/"False" discriminant in every response body is a string, not a
// boolean, and is matched exactly.
package omdb
