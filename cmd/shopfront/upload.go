package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

func newUploadCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()

			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				resp, err := c.UploadImage(ctx, filepath.Base(args[0]), f)
				if err != nil {
					return err
				}
				writePlain(resp.URL)
				return nil
			})
		},
	}
}
