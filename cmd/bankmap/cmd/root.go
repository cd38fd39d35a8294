// Package cmd implements the bankmap CLI commands for back-office staff:
// provider ingestion, association suggestions, brand refresh, rating
// resolution, and catalog inspection.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenfolio/bankmap/internal/config"
	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "bankmap",
	Short: "Back-office catalog tooling for the bank rating site",
	Long: `bankmap maintains the canonical bank catalog: it ingests institution
records from external providers, reconciles them into brands, suggests
likely associations for staff review, and resolves editorial ratings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context, version, commit string) error {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir, "catalog data directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.SetEnvPrefix("BANKMAP")
	viper.AutomaticEnv()
}

// openCatalog loads the file-backed catalog from the configured data
// directory.
func openCatalog() (catalogs.Catalog, error) {
	dir := config.DataDir()
	cat, err := catalogs.New(catalogs.WithPath(dir))
	if err != nil {
		return nil, err
	}
	logging.Debug().Str("path", dir).Msg("Catalog loaded")
	return cat, nil
}

// parseProviders maps provider name arguments onto provider types.
func parseProviders(args []string) ([]catalogs.Provider, error) {
	providers := make([]catalogs.Provider, 0, len(args))
	for _, arg := range args {
		p := catalogs.Provider(arg)
		if !p.IsValid() {
			return nil, fmt.Errorf("unknown provider %q (known: %v)", arg, catalogs.Providers())
		}
		providers = append(providers, p)
	}
	return providers, nil
}
