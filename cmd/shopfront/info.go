package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server version and collection counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				info, err := c.GetInfo(ctx)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(info)
				}
				writePlain("version:    " + info.Version)
				writePlain(fmt.Sprintf("products:   %d", info.Products))
				writePlain(fmt.Sprintf("blogs:      %d", info.Blogs))
				writePlain(fmt.Sprintf("categories: %d", info.Categories))
				return nil
			})
		},
	}
}
