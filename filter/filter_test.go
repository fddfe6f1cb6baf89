package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/reelscout/omdb"
)

var movies = []omdb.Movie{
	{ImdbID: "tt0372784", Title: "Batman Begins", Year: "2005", Poster: "https://example.com/b.jpg", Type: "movie"},
	{ImdbID: "tt0096895", Title: "Batman", Year: "1989", Poster: "N/A", Type: "movie"},
	{ImdbID: "tt4853102", Title: "Batman: The Killing Joke", Year: "2016", Poster: "https://example.com/k.jpg", Type: "movie"},
	{ImdbID: "tt0059968", Title: "Batman", Year: "1966–1968", Poster: "N/A", Type: "series"},
}

func titles(ms []omdb.Movie) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Title+" "+m.Year)
	}
	return out
}

func TestCompileAndApply(t *testing.T) {
	compiler := NewCompiler()
	favorites := map[string]bool{"tt0096895": true}
	isFav := func(id string) bool { return favorites[id] }

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "by type",
			expr: `Type == "series"`,
			want: []string{"Batman 1966–1968"},
		},
		{
			name: "year range",
			expr: `YearNum >= 2000 && YearNum < 2010`,
			want: []string{"Batman Begins 2005"},
		},
		{
			name: "between helper",
			expr: `between(YearNum, 1960, 1990)`,
			want: []string{"Batman 1989", "Batman 1966–1968"},
		},
		{
			name: "contains is case insensitive",
			expr: `contains(Title, "JOKE")`,
			want: []string{"Batman: The Killing Joke 2016"},
		},
		{
			name: "poster",
			expr: `HasPoster`,
			want: []string{"Batman Begins 2005", "Batman: The Killing Joke 2016"},
		},
		{
			name: "favorites",
			expr: `Favorite`,
			want: []string{"Batman 1989"},
		},
		{
			name: "no matches",
			expr: `startsWith(Title, "Superman")`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.Expression())

			got, err := Apply(context.Background(), f, movies, isFav)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	compiler := NewCompiler()

	tests := []struct {
		name string
		expr string
	}{
		{"empty", "   "},
		{"syntax", `Title ==`},
		{"not boolean", `Title`},
		{"unknown field", `Rating > 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.Compile(tt.expr)
			require.Error(t, err)

			var compErr *CompilationError
			assert.True(t, errors.As(err, &compErr))
		})
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	a, err := compiler.Compile(`Type == "movie"`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  Type == "movie"  `)
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = compiler.Compile(`HasPoster`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Favorite`)
	require.NoError(t, err)

	stats := compiler.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits)

	// The first expression was evicted.
	evicted, err := compiler.Compile(`Type == "movie"`)
	require.NoError(t, err)
	assert.NotSame(t, a, evicted)

	compiler.Clear()
	assert.Equal(t, 0, compiler.Stats().Size)
}

func TestCompilerWithoutCache(t *testing.T) {
	compiler := NewCompiler(WithCache(0))

	a, err := compiler.Compile(`HasPoster`)
	require.NoError(t, err)
	b, err := compiler.Compile(`HasPoster`)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, CacheStats{}, compiler.Stats())
}

func TestApplyNilFilter(t *testing.T) {
	got, err := Apply(context.Background(), nil, movies, nil)
	require.NoError(t, err)
	assert.Equal(t, movies, got)
}

func TestApplyCancelled(t *testing.T) {
	f, err := NewCompiler().Compile(`HasPoster`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Apply(ctx, f, movies, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		year string
		want int
	}{
		{"2005", 2005},
		{"2011–2019", 2011},
		{"2020–", 2020},
		{"N/A", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			assert.Equal(t, tt.want, releaseYear(tt.year))
		})
	}
}
