package filter

import (
	"context"
	"maps"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/reelscout/omdb"
)

// DefaultCacheSize is the number of compiled expressions kept by NewCompiler
const DefaultCacheSize = 64

// CompilerOption configures an expr compiler
type CompilerOption func(*ExprCompiler)

// WithCache sets the compiled filter cache size. Zero or less disables caching.
func WithCache(size int) CompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		} else {
			c.cache = nil
		}
	}
}

// ExprCompiler compiles expr-lang expressions into filters
type ExprCompiler struct {
	cache *programCache
}

// NewCompiler creates an expr compiler with a DefaultCacheSize cache
func NewCompiler(opts ...CompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		cache: newProgramCache(DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile type-checks expression against the movie environment. The result
// must be boolean.
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(omdb.Movie{}, false)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.put(expression, f)
	}

	return f, nil
}

// Clear empties the compiled filter cache
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Stats reports cache usage; all zero when caching is disabled
func (c *ExprCompiler) Stats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.stats()
}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// Evaluate runs the program against one movie
func (f *exprFilter) Evaluate(movie omdb.Movie, favorite bool) (bool, error) {
	result, err := expr.Run(f.program, newEnvironment(movie, favorite))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.Title,
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Apply keeps the movies f matches, preserving order. isFavorite may be nil.
func Apply(ctx context.Context, f Filter, movies []omdb.Movie, isFavorite func(id string) bool) ([]omdb.Movie, error) {
	if f == nil {
		return movies, nil
	}

	matches := make([]omdb.Movie, 0, len(movies))
	for _, movie := range movies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		favorite := isFavorite != nil && isFavorite(movie.ImdbID)
		ok, err := f.Evaluate(movie, favorite)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, movie)
		}
	}

	return matches, nil
}

// newEnvironment exposes one movie and the helper functions to an expression
func newEnvironment(movie omdb.Movie, favorite bool) map[string]any {
	env := make(map[string]any, 16)
	maps.Copy(env, helpers)

	env["Title"] = movie.Title
	env["Year"] = movie.Year
	env["YearNum"] = releaseYear(movie.Year)
	env["Type"] = movie.Type
	env["ImdbID"] = movie.ImdbID
	env["HasPoster"] = movie.HasPoster()
	env["Favorite"] = favorite

	return env
}

var helpers = map[string]any{
	"contains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"startsWith": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"between": func(n, lo, hi int) bool {
		return n >= lo && n <= hi
	},
}

// releaseYear reads the first year from values such as "2005", "2011–2019"
// or "2020–". Unknown years are 0.
func releaseYear(year string) int {
	if len(year) < 4 {
		return 0
	}
	n, err := strconv.Atoi(year[:4])
	if err != nil {
		return 0
	}
	return n
}
