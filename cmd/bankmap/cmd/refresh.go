package cmd

import (
	"fmt"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"

	"github.com/greenfolio/bankmap/pkg/refresh"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <brand-tag>",
	Short: "Refresh a brand's fields from its linked sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}

		brand, err := cat.Brand(args[0])
		if err != nil {
			return err
		}

		overwrite, _ := cmd.Flags().GetBool("overwrite")
		fieldNames, _ := cmd.Flags().GetStringSlice("fields")
		fields := make([]refresh.Field, 0, len(fieldNames))
		for _, f := range fieldNames {
			fields = append(fields, refresh.Field(f))
		}

		updated, changes, err := refresh.Refresh(brand, cat.Datasources().ByBrand(brand.Tag), refresh.Options{
			Fields:            fields,
			OverwriteExisting: overwrite,
		})
		if err != nil {
			return err
		}

		if changes.Dirty() {
			updated.UpdatedAt = utc.Now()
		}
		if err := cat.SetBrand(updated); err != nil {
			return err
		}
		if err := cat.Save(); err != nil {
			return err
		}

		requested := fields
		if len(requested) == 0 {
			requested = refresh.AllFields()
		}
		for _, f := range requested {
			c, ok := changes[f]
			if !ok {
				fmt.Printf("%-12s locked\n", f)
				continue
			}
			if c.Changed() {
				fmt.Printf("%-12s %q -> %q\n", f, c.Old, c.New)
			} else {
				fmt.Printf("%-12s unchanged (%q)\n", f, c.Old)
			}
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().Bool("overwrite", false, "replace already-set values")
	refreshCmd.Flags().StringSlice("fields", nil, "fields to refresh (default: all)")
	rootCmd.AddCommand(refreshCmd)
}
