package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v3"

	"github.com/s0up4200/reelscout/omdb"
	"github.com/s0up4200/reelscout/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed templates/placeholder.svg
var placeholderSVG []byte

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// page carries the fields every template header needs
type page struct {
	Title         string
	FavoriteCount int
}

// toggle is the data for the favorite button partial
type toggle struct {
	ID       string
	Favorite bool
	Return   string
	On, Off  string
}

type card struct {
	Movie  omdb.Movie
	Toggle toggle
}

type searchPage struct {
	page
	State       view.SearchState
	Cards       []card
	Filter      string
	FilterError string
	PrevURL     string
	NextURL     string
	ShowPager   bool
}

type detailsPage struct {
	page
	State  view.DetailsState
	Toggle toggle
}

type favoriteEntry struct {
	ID     string
	State  view.DetailsState
	Toggle toggle
}

type favoritesPage struct {
	page
	Entries []favoriteEntry
}

// render executes the named template into a buffer so a template failure
// never leaves a half-written response
func (s *Server) render(c fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// searchURL builds a link back to the search page
func searchURL(query, filterExpr string, page int) string {
	params := url.Values{}
	params.Set("q", query)
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if filterExpr != "" {
		params.Set("filter", filterExpr)
	}
	return "/?" + params.Encode()
}

// safeReturn only allows redirects to local paths. Browsers drop tabs and
// newlines from URLs, so control characters are rejected before parsing.
func safeReturn(target, fallback string) string {
	if strings.ContainsFunc(target, unicode.IsControl) || strings.Contains(target, "\\") {
		return fallback
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	return target
}
