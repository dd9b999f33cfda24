// Package buildcmd implements the build and export subcommands.
package buildcmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ckreads/shelfbuild/internal/config"
)

// NewBuildCmd creates the build subcommand.
func NewBuildCmd() *cobra.Command {
	var (
		csvPath    string
		cachePath  string
		outputPath string
		genreRules string
		delay      time.Duration
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Enrich the book list and generate the catalog JSON",
		Long: `Build loads the book list, enriches any books whose cache entries are
missing or stale, and writes the catalog JSON the site serves.

The book list comes from LIBRARY_CSV_URL or LIBRARY_CSV_PATH unless --csv
points at a local file. Enrichment needs GOOGLE_BOOKS_API_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()

			if csvPath != "" {
				cfg.CSVPath = csvPath
				cfg.CSVURL = ""
			}
			if cachePath != "" {
				cfg.CachePath = cachePath
			}
			if outputPath != "" {
				cfg.OutputPath = outputPath
			}
			if genreRules != "" {
				cfg.GenreRules = genreRules
			}
			if cmd.Flags().Changed("delay") {
				cfg.RequestDelay = delay
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return executeBuild(cmd.Context(), cfg, force)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Local book list file (CSV or Parquet), overrides env")
	cmd.Flags().StringVar(&cachePath, "cache", "", "Enrichment cache file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Catalog JSON output file")
	cmd.Flags().StringVar(&genreRules, "genre-rules", "", "YAML file of extra genre rules")
	cmd.Flags().DurationVar(&delay, "delay", 1100*time.Millisecond, "Pause between enrichment lookups")
	cmd.Flags().BoolVar(&force, "force", false, "Re-enrich every book, ignoring the cache")

	return cmd
}
