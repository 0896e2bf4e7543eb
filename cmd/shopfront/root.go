package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopfront/internal/config"
	"shopfront/internal/format"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "shopfront",
		Short: "Shopfront is a product catalog and blog backend for a small storefront",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "json", "":
				outputFormatter = format.JSONFormatter{}
			case "yaml":
				outputFormatter = format.YAMLFormatter{}
			default:
				return fmt.Errorf("unknown output format %q", outputFormat)
			}
			return configureLoggerForCLI(logLevel)
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output structured data instead of tables")
	cmd.PersistentFlags().StringVar(&outputFormat, "output", "json", "structured output format (json, yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newInfoCmd(cfg, &jsonOutput),
		newProductCmd(cfg, &jsonOutput),
		newCategoryCmd(cfg, &jsonOutput),
		newBlogCmd(cfg, &jsonOutput),
		newUploadCmd(cfg),
		newImportCmd(cfg),
		newAdminCmd(cfg),
		newConfigCmd(cfg),
	)

	return cmd
}
