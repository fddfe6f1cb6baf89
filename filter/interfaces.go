package filter

import (
	"github.com/s0up4200/reelscout/omdb"
)

// Filter decides whether a search result is kept
type Filter interface {
	// Evaluate checks if a movie matches the filter criteria
	Evaluate(movie omdb.Movie, favorite bool) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}
