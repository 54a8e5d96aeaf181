package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"cardkeep/internal/catalog"
)

func newCardsCommand(ctx *commandContext) *cobra.Command {
	cardsCmd := &cobra.Command{
		Use:   "cards",
		Short: "Inspect and manage catalog inventory",
	}

	cardsCmd.AddCommand(newCardsListCommand(ctx))
	cardsCmd.AddCommand(newCardsShowCommand(ctx))
	cardsCmd.AddCommand(newCardsLatestCommand(ctx))
	cardsCmd.AddCommand(newCardsRemoveCommand(ctx))

	return cardsCmd
}

func newCardsListCommand(ctx *commandContext) *cobra.Command {
	var catalogID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a catalog's inventory, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := store.ListByCatalog(cmd.Context(), catalogID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "Catalog %d is empty.\n", catalogID)
				return nil
			}

			headers := []string{"ID", "Card", "Set", "Rarity", "HP", "Qty", "Price", "External ID"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
			tableRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				tableRows = append(tableRows, []string{
					strconv.FormatInt(row.ID, 10),
					row.Name,
					row.SetName,
					row.Rarity,
					strconv.Itoa(row.HP),
					strconv.Itoa(row.Quantity),
					fmt.Sprintf("$%.2f", row.Price),
					row.ExternalID,
				})
			}
			fmt.Fprintln(out, renderTable(headers, tableRows, aligns))
			return nil
		},
	}

	cmd.Flags().Int64Var(&catalogID, "catalog", 1, "Catalog to list")
	return cmd
}

func newCardsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <row-id>",
		Short: "Show one inventory row in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid row id %q", args[0])
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			row, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if row == nil {
				return fmt.Errorf("no inventory row with id %d", id)
			}

			printCard(cmd.OutOrStdout(), row)
			return nil
		},
	}
}

func newCardsLatestCommand(ctx *commandContext) *cobra.Command {
	var catalogID int64

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recently touched card in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			row, err := store.Latest(cmd.Context(), catalogID)
			if err != nil {
				return err
			}
			if row == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Catalog %d is empty.\n", catalogID)
				return nil
			}

			printCard(cmd.OutOrStdout(), row)
			return nil
		},
	}

	cmd.Flags().Int64Var(&catalogID, "catalog", 1, "Catalog to inspect")
	return cmd
}

func newCardsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <row-id>",
		Short: "Remove one inventory row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid row id %q", args[0])
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Remove(cmd.Context(), id); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed row %d.", id)
			return nil
		},
	}
}

func printCard(out io.Writer, row *catalog.Row) {
	fmt.Fprintf(out, "Row %d (catalog %d)\n", row.ID, row.CatalogID)
	fmt.Fprintf(out, "  Name:        %s\n", row.Name)
	fmt.Fprintf(out, "  Set:         %s\n", row.SetName)
	fmt.Fprintf(out, "  External ID: %s\n", row.ExternalID)
	fmt.Fprintf(out, "  HP:          %d\n", row.HP)
	fmt.Fprintf(out, "  Stage:       %s\n", row.Stage)
	fmt.Fprintf(out, "  Typing:      %s\n", row.Typing)
	fmt.Fprintf(out, "  Rarity:      %s\n", row.Rarity)
	fmt.Fprintf(out, "  Price:       $%.2f\n", row.Price)
	fmt.Fprintf(out, "  Quantity:    %d\n", row.Quantity)
	if row.ImageURL != "" {
		fmt.Fprintf(out, "  Image:       %s\n", row.ImageURL)
	}
	fmt.Fprintf(out, "  Updated:     %s\n", row.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
}
