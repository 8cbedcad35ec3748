package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"assetregistry/internal/clock"
	"assetregistry/internal/domain/asset"
	"assetregistry/internal/record"
)

var (
	initFile     string
	searchField  string
	searchValue  string
	pageSize     int
	pageBookmark string
)

var initLedgerCmd = &cobra.Command{
	Use:   "init-ledger",
	Short: "Seed the ledger from a JSON file of assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(initFile)
		if err != nil {
			return fmt.Errorf("read assets file: %w", err)
		}
		var assets []record.Record
		if err := json.Unmarshal(b, &assets); err != nil {
			return fmt.Errorf("parse assets file: %w", err)
		}

		svc := asset.NewService(store, clock.Wall{}, log)
		if err := svc.InitLedger(cmd.Context(), assets); err != nil {
			return err
		}
		color.Green("Ledger seeded with %d assets", len(assets))
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <asset-json>",
	Short: "Create an asset from a JSON record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rec record.Record
		if err := json.Unmarshal([]byte(args[0]), &rec); err != nil {
			return fmt.Errorf("parse asset: %w", err)
		}

		svc := asset.NewService(store, clock.Wall{}, log)
		stored, err := svc.CreateAsset(cmd.Context(), rec)
		if err != nil {
			return err
		}
		color.Green("Asset %s created", stored.ID())
		return printRecord(stored)
	},
}

var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Read an asset by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := asset.NewService(store, clock.Wall{}, log)
		rec, err := svc.ReadAsset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printRecord(rec)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> <partial-json>",
	Short: "Update an asset with a partial record",
	Long: `Applies a schema-preserving merge: only fields already present on the
stored asset are overwritten, everything else in the patch is dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var partial record.Record
		if err := json.Unmarshal([]byte(args[1]), &partial); err != nil {
			return fmt.Errorf("parse patch: %w", err)
		}

		svc := asset.NewService(store, clock.Wall{}, log)
		merged, err := svc.UpdateAsset(cmd.Context(), args[0], partial)
		if err != nil {
			return err
		}
		color.Green("Asset %s updated", args[0])
		return printRecord(merged)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets, optionally filtered by one equality criterion",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria := map[string]string{}
		if searchField != "" {
			criteria[searchField] = searchValue
		}

		svc := asset.NewService(store, clock.Wall{}, log)
		records, err := svc.SearchAssets(cmd.Context(), criteria)
		if err != nil {
			return err
		}
		return printRecords(records)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query assets one page at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria := map[string]string{}
		if searchField != "" {
			criteria[searchField] = searchValue
		}

		svc := asset.NewService(store, clock.Wall{}, log)
		page, err := svc.QueryAssetsWithPagination(cmd.Context(), criteria, pageSize, pageBookmark)
		if err != nil {
			return err
		}

		if err := printRecords(page.Records); err != nil {
			return err
		}
		fmt.Printf("\nFetched: %d\n", page.FetchedCount)
		if page.Bookmark != "" {
			fmt.Printf("Next bookmark: %s\n", page.Bookmark)
		}
		return nil
	},
}

func printRecord(rec record.Record) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func printRecords(records []record.Record) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No assets found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tFIELDS\t\n")
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			if k == record.FieldID {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fields := ""
		for i, k := range keys {
			if i > 0 {
				fields += " "
			}
			fields += fmt.Sprintf("%s=%v", k, rec[k])
		}
		fmt.Fprintf(w, "%s\t%s\t\n", rec.ID(), fields)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(records))
	return nil
}

func init() {
	initLedgerCmd.Flags().StringVarP(&initFile, "file", "f", "assets.json", "JSON file with an array of assets")

	listCmd.Flags().StringVar(&searchField, "field", "", "criteria field")
	listCmd.Flags().StringVar(&searchValue, "value", "", "criteria value")

	queryCmd.Flags().StringVar(&searchField, "field", "", "criteria field")
	queryCmd.Flags().StringVar(&searchValue, "value", "", "criteria value")
	queryCmd.Flags().IntVar(&pageSize, "page-size", 10, "records per page")
	queryCmd.Flags().StringVar(&pageBookmark, "bookmark", "", "resume after this bookmark")

	rootCmd.AddCommand(initLedgerCmd, createCmd, readCmd, updateCmd, listCmd, queryCmd)
}
