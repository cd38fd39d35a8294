package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenfolio/bankmap"
	"github.com/greenfolio/bankmap/internal/config"
	"github.com/greenfolio/bankmap/internal/sources"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [provider...]",
	Short: "Ingest provider data into the catalog",
	Long: `Fetch every named provider (default: all providers with an adapter),
upsert the records into the catalog, link and refresh brands, rebuild
association suggestions, and save.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		providers, err := parseProviders(args)
		if err != nil {
			return err
		}
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		bm, err := bankmap.New(
			bankmap.WithCatalogPath(config.DataDir()),
			bankmap.WithProviders(providers...),
			bankmap.WithOverwriteExisting(overwrite),
		)
		if err != nil {
			return err
		}

		result, err := bm.Sync(cmd.Context())
		if err != nil {
			return err
		}

		for p, pr := range result.Providers {
			if pr.Err != nil {
				fmt.Printf("%-14s failed: %v\n", p, pr.Err)
				continue
			}
			fmt.Printf("%-14s created=%d updated=%d failed=%d\n",
				p, pr.Report.Created, pr.Report.Updated, pr.Report.Failed)
		}
		fmt.Printf("suggestions: %d\n", result.Suggestions)

		if result.Failed() {
			return fmt.Errorf("one or more providers failed")
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().Bool("overwrite", false, "replace already-set brand fields from sources")
	ingestCmd.ValidArgs = providerNames()
	rootCmd.AddCommand(ingestCmd)
}

func providerNames() []string {
	names := make([]string, 0)
	for _, p := range sources.List() {
		names = append(names, p.String())
	}
	return names
}
