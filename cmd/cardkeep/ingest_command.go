package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cardkeep/internal/cards"
	"cardkeep/internal/ingest"
	"cardkeep/internal/logging"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		catalogID  int64
		scanFile   string
		priorPrice float64
		priorSet   bool

		id       string
		name     string
		setName  string
		hp       string
		types    []string
		subtypes []string
		rarity   string
		imageURL string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest one scanned card into a catalog",
		Long: `Ingest normalizes a scanned card, enriches it from the remote card
database when lookup is enabled, and merges it into the catalog. Repeating an
ingest of the same card id bumps the stored quantity instead of duplicating
the row. The scan comes either from --scan-file (a detected-card JSON payload)
or from individual flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			priorSet = cmd.Flags().Changed("prior-price")

			scan, err := buildScan(scanFile, cards.RawScan{
				ID:       id,
				Name:     name,
				SetName:  setName,
				HP:       hp,
				Types:    types,
				Subtypes: subtypes,
				Rarity:   rarity,
				ImageURL: imageURL,
			})
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ingestor, err := ctx.newIngestor(store, logging.NewNop())
			if err != nil {
				return err
			}

			req := ingest.Request{CatalogID: catalogID, Scan: scan}
			if priorSet {
				req.PriorPrice = &priorPrice
			}

			result, err := ingestor.Ingest(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Added"
			if result.Action == "quantity_bumped" {
				verb = "Restocked"
			}
			printSuccess(out, "%s %s (row %d, quantity %d, $%.2f)",
				verb, result.Record.Name, result.RowID, result.Quantity, result.Record.Price)
			if !result.PriceResolved {
				printWarn(out, "No market quote found; stored price comes from prior data.")
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&catalogID, "catalog", 1, "Catalog to ingest into")
	cmd.Flags().StringVar(&scanFile, "scan-file", "", "Path to a detected-card JSON payload")
	cmd.Flags().Float64Var(&priorPrice, "prior-price", 0, "Last known price used when no market quote is found")
	cmd.Flags().StringVar(&id, "id", "", "External card id, e.g. base1-58")
	cmd.Flags().StringVar(&name, "name", "", "Card name")
	cmd.Flags().StringVar(&setName, "set", "", "Set name")
	cmd.Flags().StringVar(&hp, "hp", "", "Hit points as printed on the card")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Card type, repeatable")
	cmd.Flags().StringSliceVar(&subtypes, "subtype", nil, "Card subtype, repeatable")
	cmd.Flags().StringVar(&rarity, "rarity", "", "Card rarity")
	cmd.Flags().StringVar(&imageURL, "image", "", "Card image URL")

	return cmd
}

// buildScan reads the scan payload from disk when --scan-file is given; flag
// values fill any fields the file leaves empty.
func buildScan(scanFile string, flags cards.RawScan) (cards.RawScan, error) {
	if strings.TrimSpace(scanFile) == "" {
		return flags, nil
	}

	data, err := os.ReadFile(scanFile)
	if err != nil {
		return cards.RawScan{}, fmt.Errorf("read scan file: %w", err)
	}
	var scan cards.RawScan
	if err := json.Unmarshal(data, &scan); err != nil {
		return cards.RawScan{}, fmt.Errorf("parse scan file %s: %w", scanFile, err)
	}

	if scan.ID == "" {
		scan.ID = flags.ID
	}
	if scan.Name == "" {
		scan.Name = flags.Name
	}
	if scan.SetName == "" {
		scan.SetName = flags.SetName
	}
	if scan.HP == "" {
		scan.HP = flags.HP
	}
	if len(scan.Types) == 0 {
		scan.Types = flags.Types
	}
	if len(scan.Subtypes) == 0 {
		scan.Subtypes = flags.Subtypes
	}
	if scan.Rarity == "" {
		scan.Rarity = flags.Rarity
	}
	if scan.ImageURL == "" {
		scan.ImageURL = flags.ImageURL
	}
	return scan, nil
}
