package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"assetregistry/internal/clock"
	"assetregistry/internal/domain/asset"
	"assetregistry/internal/domain/grant"
	"assetregistry/internal/record"
)

var payCmd = &cobra.Command{
	Use:   "pay <payer-id> <resource-id>",
	Short: "Record a payment granting time-limited access",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		assets := asset.NewService(store, clock.Wall{}, log)
		svc := grant.NewService(store, assets, clock.Wall{}, log)

		stored, err := svc.CreatePaymentBlock(cmd.Context(), record.Record{
			grant.FieldPayerID:  args[0],
			grant.FieldResumeID: args[1],
		})
		if err != nil {
			return err
		}
		color.Green("Payment block %s recorded, access valid until epoch %s",
			stored.ID(), stored.GetString(grant.FieldExpiresAt))
		return nil
	},
}

var accessCmd = &cobra.Command{
	Use:   "access <payer-id> <resource-id>",
	Short: "Check access to a protected resource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		assets := asset.NewService(store, clock.Wall{}, log)
		svc := grant.NewService(store, assets, clock.Wall{}, log)

		resource, granted, err := svc.CheckAccess(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !granted {
			color.Red("Access denied: no live grant for %s on %s", args[0], args[1])
			return nil
		}

		color.Green("Access granted")
		b, err := json.MarshalIndent(resource, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(payCmd, accessCmd)
}
