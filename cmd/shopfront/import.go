package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

// seedFile is the YAML shape accepted by `shopfront import`: an optional
// category list plus products to create. Categories are added first so
// product validation can see them.
type seedFile struct {
	Categories []string `yaml:"categories"`
	Products   []struct {
		Name        string `yaml:"name"`
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
		Picture     string `yaml:"picture"`
	} `yaml:"products"`
}

func newImportCmd(cfg *config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import categories and products from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}

			var seed seedFile
			if err := yaml.Unmarshal(data, &seed); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}
			if len(seed.Categories) == 0 && len(seed.Products) == 0 {
				return fmt.Errorf("seed file has no categories or products")
			}

			if dryRun {
				writePlain(fmt.Sprintf("would import %d categories and %d products", len(seed.Categories), len(seed.Products)))
				return nil
			}

			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				return runImport(ctx, c, seed)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without writing")
	return cmd
}

func runImport(ctx context.Context, c *api.Client, seed seedFile) error {
	added := 0
	for _, name := range seed.Categories {
		current, err := c.GetCategories(ctx)
		if err != nil {
			return err
		}
		if containsFold(current.Categories, name) {
			continue
		}
		if _, err := c.AddCategory(ctx, api.CategoryAddRequest{Name: name, Revision: current.Revision}); err != nil {
			return fmt.Errorf("add category %q: %w", name, err)
		}
		added++
	}

	created := 0
	for _, p := range seed.Products {
		req := api.ProductCreateRequest{
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Picture:     p.Picture,
		}
		product, err := c.CreateProduct(ctx, req)
		if err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
		writePlain("created " + product.ID + "  " + product.Name)
		created++
	}

	writePlain(fmt.Sprintf("imported %d categories, %d products", added, created))
	return nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
