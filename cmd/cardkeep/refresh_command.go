package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardkeep/internal/logging"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var catalogID int64

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh market prices for a catalog",
		Long: `Refresh re-queries the remote card database for every row in the
catalog and rewrites stored prices from fresh quotes. Rows the lookup cannot
price keep their last known price.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			refresher, err := ctx.newRefresher(store, logging.NewNop())
			if err != nil {
				return err
			}

			summary, err := refresher.RefreshCatalog(cmd.Context(), catalogID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Examined %d rows: %d repriced, %d unchanged.",
				summary.Examined, summary.Updated, summary.Unchanged)
			if summary.Skipped > 0 {
				printWarn(out, "%d rows had no market quote and kept their price.", summary.Skipped)
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d rows failed to update", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&catalogID, "catalog", 1, "Catalog to refresh")
	return cmd
}
