package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenfolio/bankmap/pkg/tag"
)

var tagCmd = &cobra.Command{
	Use:   "tag <name>",
	Short: "Generate a unique tag for a name against the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}

		prefix, _ := cmd.Flags().GetString("prefix")
		fmt.Println(tag.Generate(args[0], tag.NewSet(cat.Tags()...), prefix))
		return nil
	},
}

func init() {
	tagCmd.Flags().String("prefix", "", "prefix applied before uniqueness checking, e.g. banktrack_")
	rootCmd.AddCommand(tagCmd)
}
