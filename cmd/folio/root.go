package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "Prerender a portfolio and blog site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "folio.yaml", "Configuration file (YAML or TOML)")
	flags.StringVar(&ctx.outputDir, "output", "", "Output directory (overrides config)")
	flags.StringVar(&ctx.templatePath, "template", "", "Prerender template (default <output>/index.html)")
	flags.StringVar(&ctx.now, "now", "", "Build instant as RFC3339, for reproducible builds")
	flags.BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newRoutesCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newNewCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
