// Package view holds the state behind the two reelscout screens: the title
// search and the details page.
//
// Each view walks idle -> loading -> {loaded, error}. Loading is entered
// before the API call starts and left exactly once, from a deferred
// finalizer, so a failed or aborted call never leaves a view stuck in
// loading. Every load is numbered; a completion that is no longer the
// latest request for its view is dropped, as is anything that completes
// after Close.
//
// Favorites are not owned by a view. Both views are built around the same
// *favorites.Store so a title marked on the search page is still marked on
// its details page.
package view
