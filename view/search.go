package view

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/reelscout/favorites"
	"github.com/s0up4200/reelscout/omdb"
)

// SearchState is a snapshot of the search view
type SearchState struct {
	Status     Status       `json:"status"`
	Query      string       `json:"query"`
	Page       int          `json:"page"`
	Items      []omdb.Movie `json:"items"`
	TotalCount int          `json:"totalCount"`
	Error      string       `json:"error,omitempty"`
}

// Loading reports whether a request is in flight
func (s SearchState) Loading() bool {
	return s.Status == StatusLoading
}

// Prompt reports whether the empty-state prompt should be shown instead of results
func (s SearchState) Prompt() bool {
	return strings.TrimSpace(s.Query) == ""
}

// Empty reports a successful search that matched nothing
func (s SearchState) Empty() bool {
	return s.Status == StatusLoaded && len(s.Items) == 0
}

// TotalPages derives the page count from TotalCount
func (s SearchState) TotalPages() int {
	return (s.TotalCount + omdb.PageSize - 1) / omdb.PageSize
}

// HasPrev reports whether a previous page exists
func (s SearchState) HasPrev() bool {
	return s.Page > 1
}

// HasNext reports whether the API has more results past this page
func (s SearchState) HasNext() bool {
	return s.Status == StatusLoaded && s.Page < s.TotalPages()
}

func (s SearchState) clone() SearchState {
	if s.Items == nil {
		s.Items = []omdb.Movie{}
	} else {
		s.Items = slices.Clone(s.Items)
	}
	return s
}

// Search is the state holder behind the search page
type Search struct {
	api       omdb.API
	favorites *favorites.Store
	logger    zerolog.Logger

	mu    sync.Mutex
	seq   sequencer
	state SearchState
}

// NewSearch creates an idle search view
func NewSearch(api omdb.API, store *favorites.Store, logger zerolog.Logger) *Search {
	return &Search{
		api:       api,
		favorites: store,
		logger:    logger.With().Str("view", "search").Logger(),
		state:     SearchState{Status: StatusIdle, Page: 1},
	}
}

// State returns a copy of the current state
func (v *Search) State() SearchState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state.clone()
}

// Load runs the search for query and page and returns the resulting state.
// A blank query never reaches the API; the view goes back to idle.
func (v *Search) Load(ctx context.Context, query string, page int) (state SearchState) {
	if page < 1 {
		page = 1
	}

	v.mu.Lock()
	if v.seq.closed {
		state = v.state.clone()
		v.mu.Unlock()
		return state
	}
	seq := v.seq.begin()
	if strings.TrimSpace(query) == "" {
		v.state = SearchState{Status: StatusIdle, Query: query, Page: page}
		state = v.state.clone()
		v.mu.Unlock()
		return state
	}
	v.state = SearchState{Status: StatusLoading, Query: query, Page: page}
	v.mu.Unlock()

	next := SearchState{Status: StatusLoading, Query: query, Page: page}
	defer func() {
		if !next.Status.Terminal() {
			next.Status = StatusError
			next.Error = abortedMessage
		}
		state = v.finish(seq, next)
	}()

	resp, err := v.api.SearchMovies(ctx, query, page)
	if err != nil {
		next.Status = StatusError
		next.Error = err.Error()
		return
	}

	result := MapSearch(resp)
	if !result.OK {
		next.Status = StatusError
		next.Error = result.ErrorMessage
		return
	}

	next.Status = StatusLoaded
	next.Items = result.Items
	next.TotalCount = result.TotalCount
	return
}

// SetQuery starts a new search from the first page
func (v *Search) SetQuery(ctx context.Context, query string) SearchState {
	return v.Load(ctx, query, 1)
}

// NextPage loads the page after the current one
func (v *Search) NextPage(ctx context.Context) SearchState {
	cur := v.State()
	return v.Load(ctx, cur.Query, cur.Page+1)
}

// PrevPage loads the page before the current one, stopping at the first page
func (v *Search) PrevPage(ctx context.Context) SearchState {
	cur := v.State()
	return v.Load(ctx, cur.Query, max(1, cur.Page-1))
}

// Close detaches the view; loads still in flight are discarded when they finish
func (v *Search) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq.closed = true
}

// IsFavorite reports whether id is marked in the shared store
func (v *Search) IsFavorite(id string) bool {
	return v.favorites.IsFavorite(id)
}

// ToggleFavorite flips id in the shared store and returns the new membership
func (v *Search) ToggleFavorite(id string) bool {
	return v.favorites.Toggle(id)
}

// finish applies next if seq is still the latest load and returns the current state
func (v *Search) finish(seq uint64, next SearchState) SearchState {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.seq.current(seq) {
		v.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", v.seq.seq).
			Str("query", next.Query).
			Msg("Discarding stale search result")
		return v.state.clone()
	}

	v.state = next
	return v.state.clone()
}
