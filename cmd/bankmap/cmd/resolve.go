package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenfolio/bankmap/pkg/rating"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <brand-tag>",
	Short: "Resolve a brand's effective rating through inheritance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}

		resolver := rating.New(cat)
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			r, err := resolver.ResolveStrict(args[0])
			if err != nil {
				return err
			}
			fmt.Println(r)
			return nil
		}

		fmt.Println(resolver.Resolve(args[0]))
		return nil
	},
}

func init() {
	resolveCmd.Flags().Bool("strict", false, "fail on inheritance cycles instead of resolving to unknown")
	rootCmd.AddCommand(resolveCmd)
}
