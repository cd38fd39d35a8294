package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/rating"
)

var listCmd = &cobra.Command{
	Use:       "list {brands|datasources|suggestions}",
	Short:     "List catalog records",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"brands", "datasources", "suggestions"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}

		switch args[0] {
		case "brands":
			listBrands(cat)
		case "datasources":
			listDatasources(cat)
		case "suggestions":
			listSuggestions(cat)
		default:
			return fmt.Errorf("unknown collection %q", args[0])
		}
		return nil
	},
}

func listBrands(cat catalogs.Catalog) {
	resolver := rating.New(cat)
	for _, b := range cat.Brands().List() {
		fmt.Printf("%-30s %-8s %-30s %s\n",
			b.Tag, resolver.Resolve(b.Tag), b.Name, strings.Join(b.Countries, ","))
	}
}

func listDatasources(cat catalogs.Catalog) {
	for _, ds := range cat.Datasources().List() {
		link := "-"
		if ds.Linked() {
			link = *ds.BrandTag
		}
		fmt.Printf("%-30s %-30s -> %s\n", ds.Key(), ds.Name, link)
	}
}

func listSuggestions(cat catalogs.Catalog) {
	for _, s := range cat.Suggestions().List() {
		fmt.Printf("%-30s -> %-30s certainty=%d\n", s.Datasource, s.BrandTag, s.Certainty)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
