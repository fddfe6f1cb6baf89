package view

import (
	"fmt"
	"strings"

	"github.com/s0up4200/reelscout/omdb"
)

// ConsoleFormatter renders view states for the terminal
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatSearch formats a search state. isFavorite may be nil.
func (f *ConsoleFormatter) FormatSearch(state SearchState, isFavorite func(id string) bool) string {
	switch state.Status {
	case StatusIdle:
		return PromptMessage
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return state.Error
	}

	if state.Empty() {
		return "No movies found"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "\nResults for %q", state.Query)
	if pages := state.TotalPages(); pages > 0 {
		fmt.Fprintf(&sb, " (page %d of %d, %d total)", state.Page, pages, state.TotalCount)
	}
	sb.WriteString(":\n\n")

	for i, movie := range state.Items {
		isLast := i == len(state.Items)-1
		prefix := "├"
		if isLast {
			prefix = "╰"
		}

		star := "☆"
		if isFavorite != nil && isFavorite(movie.ImdbID) {
			star = "★"
		}

		fmt.Fprintf(&sb, "%s── %s %s (%s)\n", prefix, star, movie.Title, movie.Year)

		indent := "│   "
		if isLast {
			indent = "    "
		}
		fmt.Fprintf(&sb, "%s%s · %s\n", indent, movie.ImdbID, movie.Type)
	}

	if state.HasNext() {
		fmt.Fprintf(&sb, "\nMore results: --page %d\n", state.Page+1)
	}

	return sb.String()
}

// FormatDetails formats a details state
func (f *ConsoleFormatter) FormatDetails(state DetailsState, favorite bool) string {
	switch state.Status {
	case StatusIdle:
		return "No movie selected"
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return state.Error
	}

	if state.Movie == nil {
		return "No movie found."
	}
	m := state.Movie

	var sb strings.Builder

	star := "☆"
	if favorite {
		star = "★"
	}
	fmt.Fprintf(&sb, "\n%s %s\n", star, m.Title)
	fmt.Fprintf(&sb, "%s • %s • %s\n\n", m.Year, m.Runtime, m.Genre)

	if m.Plot != "" && m.Plot != omdb.NotAvailable {
		fmt.Fprintf(&sb, "%s\n\n", m.Plot)
	}

	fields := []struct {
		label string
		value string
	}{
		{"Director", m.Director},
		{"Writer", m.Writer},
		{"Actors", m.Actors},
		{"Language", m.Language},
		{"Awards", m.Awards},
		{"IMDB Rating", m.ImdbRating},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		fmt.Fprintf(&sb, "%-12s %s\n", field.label+":", field.value)
	}

	if m.HasWebsite() {
		fmt.Fprintf(&sb, "%-12s %s\n", "Website:", m.Website)
	}
	if m.HasPoster() {
		fmt.Fprintf(&sb, "%-12s %s\n", "Poster:", m.Poster)
	}

	return sb.String()
}
