package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelscout/view"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show <imdb-id>",
	Short:   "Show full details for a movie",
	Example: "  reelscout show tt0372784",
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	v := view.NewDetails(client, store, logger)
	defer v.Close()

	state := v.Load(ctx, args[0])
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDetails(state, v.IsFavorite()))
	return nil
}
