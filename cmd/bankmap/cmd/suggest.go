package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/match"
	"github.com/greenfolio/bankmap/pkg/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [brand-tag | provider:source-id]",
	Short: "Suggest likely associations for a record",
	Long: `Without arguments, recompute and persist brand suggestions for every
unlinked datasource. With an argument, print the candidates for one
brand tag or one datasource key (provider:source-id form).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		maxDistance, _ := cmd.Flags().GetInt("max-distance")
		engine := suggest.New(cat, suggest.WithMaxDistance(maxDistance))

		if len(args) == 0 {
			total, err := engine.Rebuild()
			if err != nil {
				return err
			}
			if err := cat.Save(); err != nil {
				return err
			}
			fmt.Printf("persisted %d suggestions\n", total)
			return nil
		}

		candidates, err := suggestFor(engine, args[0])
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("no candidates within threshold")
			return nil
		}
		for _, c := range candidates {
			fmt.Printf("%-11s %-40s distance=%d\n", c.Kind, c.Key(), c.Distance)
		}
		return nil
	},
}

// suggestFor dispatches on the argument form: a provider:source-id key
// or a bare brand tag.
func suggestFor(engine *suggest.Engine, arg string) ([]suggest.Suggestion, error) {
	if provider, sourceID, ok := strings.Cut(arg, ":"); ok {
		key := catalogs.DatasourceKey{Provider: catalogs.Provider(provider), SourceID: sourceID}
		return engine.SuggestForDatasource(key)
	}
	return engine.SuggestForBrand(arg)
}

func init() {
	suggestCmd.Flags().Int("max-distance", match.DefaultMaxDistance, "maximum edit distance for candidates")
	rootCmd.AddCommand(suggestCmd)
}
