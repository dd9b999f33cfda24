package cmd

import (
	"github.com/ckreads/shelfbuild/internal/buildcmd"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelfbuild",
		Short: "Static book catalog builder with bibliographic enrichment",
		Long: `Shelfbuild turns a user-maintained book spreadsheet into a static JSON catalog.

Each book is enriched with cover, ISBN, genre, and publication-year metadata
resolved from Google Books and Open Library. Results are cached between runs so
only new or changed rows hit the APIs.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(buildcmd.NewBuildCmd())
	cmd.AddCommand(buildcmd.NewExportCmd())

	return cmd
}
