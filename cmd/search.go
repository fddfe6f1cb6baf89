package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelscout/filter"
	"github.com/s0up4200/reelscout/view"
)

var (
	searchPage int
	filterExpr string
	preset     string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search movies by title",
	Long: `Search OMDb for movies whose title matches the query. Results come
ten per page; use --page to move through them and --filter to narrow a page
with an expression such as 'YearNum >= 2000 && HasPoster'.`,
	Example: `  reelscout search batman
  reelscout search the dark knight --page 2
  reelscout search batman --filter 'between(YearNum, 1980, 1999)'`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page (10 results per page)")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the page")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	var f filter.Filter
	if expression != "" {
		f, err = compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	v := view.NewSearch(client, store, logger)
	defer v.Close()

	query := strings.Join(args, " ")
	logger.Debug().Str("query", query).Int("page", searchPage).Msg("Searching movies")

	state := v.Load(ctx, query, searchPage)
	if state.Status == view.StatusLoaded && f != nil {
		state.Items, err = filter.Apply(ctx, f, state.Items, store.IsFavorite)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSearch(state, store.IsFavorite))
	return nil
}

// getFilterExpression picks the filter: command line flag first, then preset
func getFilterExpression() (string, error) {
	if filterExpr != "" {
		return filterExpr, nil
	}
	if preset != "" {
		return cfg.Preset(preset)
	}
	return "", nil
}
