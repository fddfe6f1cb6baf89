package view

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/reelscout/favorites"
	"github.com/s0up4200/reelscout/omdb"
)

// DetailsState is a snapshot of the details view
type DetailsState struct {
	Status Status             `json:"status"`
	ID     string             `json:"id"`
	Movie  *omdb.MovieDetails `json:"movie,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Loading reports whether a request is in flight
func (s DetailsState) Loading() bool {
	return s.Status == StatusLoading
}

func (s DetailsState) clone() DetailsState {
	if s.Movie != nil {
		m := *s.Movie
		s.Movie = &m
	}
	return s
}

// Details is the state holder behind a details page
type Details struct {
	api       omdb.API
	favorites *favorites.Store
	logger    zerolog.Logger

	mu    sync.Mutex
	seq   sequencer
	state DetailsState
}

// NewDetails creates an idle details view
func NewDetails(api omdb.API, store *favorites.Store, logger zerolog.Logger) *Details {
	return &Details{
		api:       api,
		favorites: store,
		logger:    logger.With().Str("view", "details").Logger(),
		state:     DetailsState{Status: StatusIdle},
	}
}

// State returns a copy of the current state
func (v *Details) State() DetailsState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state.clone()
}

// Load fetches the title identified by id. A blank id leaves the view idle
// without calling the API.
func (v *Details) Load(ctx context.Context, id string) (state DetailsState) {
	v.mu.Lock()
	if v.seq.closed {
		state = v.state.clone()
		v.mu.Unlock()
		return state
	}
	seq := v.seq.begin()
	if strings.TrimSpace(id) == "" {
		v.state = DetailsState{Status: StatusIdle, ID: id}
		state = v.state.clone()
		v.mu.Unlock()
		return state
	}
	v.state = DetailsState{Status: StatusLoading, ID: id}
	v.mu.Unlock()

	next := DetailsState{Status: StatusLoading, ID: id}
	defer func() {
		if !next.Status.Terminal() {
			next.Status = StatusError
			next.Error = abortedMessage
		}
		state = v.finish(seq, next)
	}()

	resp, err := v.api.GetMovieByID(ctx, id)
	if err != nil {
		next.Status = StatusError
		next.Error = err.Error()
		return
	}

	result := MapDetails(resp)
	if !result.OK {
		next.Status = StatusError
		next.Error = result.ErrorMessage
		return
	}

	next.Status = StatusLoaded
	next.Movie = &result.Movie
	return
}

// Close detaches the view; a load still in flight is discarded when it finishes
func (v *Details) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq.closed = true
}

// IsFavorite reports whether the loaded title is marked in the shared store
func (v *Details) IsFavorite() bool {
	id := v.currentID()
	return id != "" && v.favorites.IsFavorite(id)
}

// ToggleFavorite flips the loaded title in the shared store.
// It is a no-op returning false when nothing is loaded.
func (v *Details) ToggleFavorite() bool {
	id := v.currentID()
	if id == "" {
		return false
	}
	return v.favorites.Toggle(id)
}

// currentID is the identifier of the loaded record, if any
func (v *Details) currentID() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state.Status != StatusLoaded || v.state.Movie == nil {
		return ""
	}
	return v.state.Movie.ImdbID
}

// finish applies next if seq is still the latest load and returns the current state
func (v *Details) finish(seq uint64, next DetailsState) DetailsState {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.seq.current(seq) {
		v.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", v.seq.seq).
			Str("id", next.ID).
			Msg("Discarding stale details result")
		return v.state.clone()
	}

	v.state = next
	return v.state.clone()
}
