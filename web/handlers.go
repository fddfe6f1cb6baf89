package web

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/reelscout/filter"
	"github.com/s0up4200/reelscout/view"
)

// searchResult is a search view state after the optional result filter
type searchResult struct {
	State       view.SearchState
	Filter      string
	FilterError string
}

// runSearch drives a search view for the request's q, page and filter
// parameters. The filter only narrows the current page.
func (s *Server) runSearch(c fiber.Ctx) searchResult {
	query := c.Query("q")
	page := fiber.Query(c, "page", 1)
	expression := strings.TrimSpace(c.Query("filter"))

	v := view.NewSearch(s.api, s.favorites, s.logger)
	defer v.Close()

	res := searchResult{
		State:  v.Load(c.Context(), query, page),
		Filter: expression,
	}

	if expression == "" || res.State.Status != view.StatusLoaded {
		return res
	}

	f, err := s.compiler.Compile(expression)
	if err != nil {
		res.FilterError = err.Error()
		return res
	}

	items, err := filter.Apply(c.Context(), f, res.State.Items, s.favorites.IsFavorite)
	if err != nil {
		res.FilterError = err.Error()
		return res
	}
	res.State.Items = items

	return res
}

func (s *Server) handleSearch(c fiber.Ctx) error {
	res := s.runSearch(c)
	state := res.State
	current := c.OriginalURL()

	cards := make([]card, 0, len(state.Items))
	for _, movie := range state.Items {
		cards = append(cards, card{
			Movie: movie,
			Toggle: toggle{
				ID:       movie.ImdbID,
				Favorite: s.favorites.IsFavorite(movie.ImdbID),
				Return:   current,
				On:       "★ Fav",
				Off:      "☆ Fav",
			},
		})
	}

	return s.render(c, "search.html", searchPage{
		page:        s.page("Search"),
		State:       state,
		Cards:       cards,
		Filter:      res.Filter,
		FilterError: res.FilterError,
		PrevURL:     searchURL(state.Query, res.Filter, max(1, state.Page-1)),
		NextURL:     searchURL(state.Query, res.Filter, state.Page+1),
		ShowPager:   state.Status == view.StatusLoaded && (len(state.Items) > 0 || state.HasPrev()),
	})
}

func (s *Server) handleDetails(c fiber.Ctx) error {
	id := c.Params("id")

	v := view.NewDetails(s.api, s.favorites, s.logger)
	defer v.Close()

	state := v.Load(c.Context(), id)

	title := "Details"
	if state.Movie != nil {
		title = state.Movie.Title
	}

	return s.render(c, "details.html", detailsPage{
		page:  s.page(title),
		State: state,
		Toggle: toggle{
			ID:       id,
			Favorite: v.IsFavorite(),
			Return:   c.OriginalURL(),
			On:       "★ Favorited",
			Off:      "☆ Add to Favorites",
		},
	})
}

func (s *Server) handleFavorites(c fiber.Ctx) error {
	states := s.loadFavorites(c.Context())

	entries := make([]favoriteEntry, 0, len(states))
	for _, st := range states {
		entries = append(entries, favoriteEntry{
			ID:    st.ID,
			State: st,
			Toggle: toggle{
				ID:       st.ID,
				Favorite: true,
				Return:   "/favorites",
				On:       "★ Remove",
				Off:      "☆ Fav",
			},
		})
	}

	return s.render(c, "favorites.html", favoritesPage{
		page:    s.page("Favorites"),
		Entries: entries,
	})
}

// handleToggle flips a favorite and sends the browser back where it came from
func (s *Server) handleToggle(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "movie id is required")
	}

	favorite := s.favorites.Toggle(id)
	s.logger.Debug().Str("id", id).Bool("favorite", favorite).Msg("Toggled favorite")

	target := safeReturn(c.FormValue("return"), "/movie/"+id)
	return c.Redirect().Status(fiber.StatusSeeOther).To(target)
}

func (s *Server) handlePlaceholder(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(placeholderSVG)
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"favorites": s.favorites.Len(),
	})
}

// searchAPIResponse is the JSON form of the search page
type searchAPIResponse struct {
	view.SearchState
	TotalPages  int      `json:"totalPages"`
	Favorites   []string `json:"favorites"`
	Filter      string   `json:"filter,omitempty"`
	FilterError string   `json:"filterError,omitempty"`
}

func (s *Server) handleAPISearch(c fiber.Ctx) error {
	res := s.runSearch(c)

	favs := make([]string, 0)
	for _, movie := range res.State.Items {
		if s.favorites.IsFavorite(movie.ImdbID) {
			favs = append(favs, movie.ImdbID)
		}
	}

	return c.JSON(searchAPIResponse{
		SearchState: res.State,
		TotalPages:  res.State.TotalPages(),
		Favorites:   favs,
		Filter:      res.Filter,
		FilterError: res.FilterError,
	})
}

// detailsAPIResponse is the JSON form of the details page
type detailsAPIResponse struct {
	view.DetailsState
	Favorite bool `json:"favorite"`
}

func (s *Server) handleAPIDetails(c fiber.Ctx) error {
	v := view.NewDetails(s.api, s.favorites, s.logger)
	defer v.Close()

	state := v.Load(c.Context(), c.Params("id"))

	return c.JSON(detailsAPIResponse{
		DetailsState: state,
		Favorite:     v.IsFavorite(),
	})
}

func (s *Server) handleAPIFavorites(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"favorites": s.favorites.IDs(),
	})
}

func (s *Server) handleAPIToggle(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "movie id is required")
	}

	return c.JSON(fiber.Map{
		"id":       id,
		"favorite": s.favorites.Toggle(id),
	})
}

// loadFavorites fetches details for every favorite concurrently, keeping
// the store's order. Lookup failures stay in the returned states.
func (s *Server) loadFavorites(ctx context.Context) []view.DetailsState {
	ids := s.favorites.IDs()
	states := make([]view.DetailsState, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FavoritesConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			v := view.NewDetails(s.api, s.favorites, s.logger)
			defer v.Close()

			states[i] = v.Load(ctx, id)
			return nil
		})
	}

	// Views report failures in their state, never as errors
	_ = g.Wait()

	return states
}

func (s *Server) page(title string) page {
	return page{
		Title:         title,
		FavoriteCount: s.favorites.Len(),
	}
}
