package main

import (
	"context"
	"net/url"

	"github.com/spf13/cobra"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

func newProductCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}
	cmd.AddCommand(
		newProductListCmd(cfg, jsonOutput),
		newProductShowCmd(cfg, jsonOutput),
		newProductCreateCmd(cfg, jsonOutput),
		newProductUpdateCmd(cfg, jsonOutput),
		newProductDeleteCmd(cfg),
	)
	return cmd
}

func newProductListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var category string
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by category or search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				query := url.Values{}
				if category != "" {
					query.Set("category", category)
				}
				if search != "" {
					query.Set("q", search)
				}
				products, err := c.ListProducts(ctx, query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(products)
				}
				writeProductTable(products)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by exact category")
	cmd.Flags().StringVar(&search, "q", "", "filter by name or description substring")
	return cmd
}

func newProductShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				product, err := c.GetProduct(ctx, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(product)
				}
				writeProductDetail(product)
				return nil
			})
		},
	}
}

func newProductCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var req api.ProductCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				product, err := c.CreateProduct(ctx, req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(product)
				}
				writePlain("created " + product.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "product name")
	cmd.Flags().StringVar(&req.Category, "category", "", "product category")
	cmd.Flags().StringVar(&req.Description, "description", "", "product description")
	cmd.Flags().StringVar(&req.Picture, "picture", "", "picture URL")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newProductUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var name, category, description, picture string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				current, err := c.GetProduct(ctx, args[0])
				if err != nil {
					return err
				}

				req := api.ProductUpdateRequest{
					Name:        current.Name,
					Category:    current.Category,
					Description: current.Description,
					Picture:     current.Picture,
				}
				if cmd.Flags().Changed("name") {
					req.Name = name
				}
				if cmd.Flags().Changed("category") {
					req.Category = category
				}
				if cmd.Flags().Changed("description") {
					req.Description = description
				}
				if cmd.Flags().Changed("picture") {
					req.Picture = picture
				}

				product, err := c.UpdateProduct(ctx, args[0], req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(product)
				}
				writePlain("updated " + product.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&picture, "picture", "", "picture URL")
	return cmd
}

func newProductDeleteCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product and its uploaded image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := confirmDestructive("delete product "+args[0], yes)
			if err != nil {
				return err
			}
			if !confirmed {
				writePlain("aborted")
				return nil
			}
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				if err := c.DeleteProduct(ctx, args[0], true); err != nil {
					return err
				}
				writePlain("deleted " + args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt")
	return cmd
}
