package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

// categoryWriteError translates a lost revision race into a retry hint.
// The CLI fetches the revision right before writing, so a conflict means
// another admin edited the set in between.
func categoryWriteError(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.RevisionConflict() {
		return fmt.Errorf("category set changed while editing, rerun to retry")
	}
	return err
}

func newCategoryCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the product category set",
	}
	cmd.AddCommand(
		newCategoryListCmd(cfg, jsonOutput),
		newCategoryAddCmd(cfg, jsonOutput),
		newCategoryRenameCmd(cfg, jsonOutput),
		newCategoryDeleteCmd(cfg, jsonOutput),
	)
	return cmd
}

func newCategoryListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and the current revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				resp, err := c.GetCategories(ctx)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				writeCategories(resp.Categories, resp.Revision)
				return nil
			})
		},
	}
}

func newCategoryAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				current, err := c.GetCategories(ctx)
				if err != nil {
					return err
				}
				resp, err := c.AddCategory(ctx, api.CategoryAddRequest{
					Name:     args[0],
					Revision: current.Revision,
				})
				if err != nil {
					return categoryWriteError(err)
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				writeCategories(resp.Categories, resp.Revision)
				return nil
			})
		},
	}
}

func newCategoryRenameCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a category; products in it move to the new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				current, err := c.GetCategories(ctx)
				if err != nil {
					return err
				}
				resp, err := c.RenameCategory(ctx, args[0], api.CategoryRenameRequest{
					NewName:  args[1],
					Revision: current.Revision,
				})
				if err != nil {
					return categoryWriteError(err)
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				writePlain(fmt.Sprintf("renamed %q to %q, %d products moved", args[0], args[1], resp.Reassigned))
				writeCategories(resp.Categories, resp.Revision)
				return nil
			})
		},
	}
}

func newCategoryDeleteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a category from the set; products keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := confirmDestructive("delete category "+args[0], yes)
			if err != nil {
				return err
			}
			if !confirmed {
				writePlain("aborted")
				return nil
			}
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				current, err := c.GetCategories(ctx)
				if err != nil {
					return err
				}
				resp, err := c.DeleteCategory(ctx, args[0], current.Revision, true)
				if err != nil {
					return categoryWriteError(err)
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if resp.Remaining > 0 {
					writePlain(fmt.Sprintf("deleted %q, %d products still reference it", args[0], resp.Remaining))
				} else {
					writePlain(fmt.Sprintf("deleted %q", args[0]))
				}
				writeCategories(resp.Categories, resp.Revision)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt")
	return cmd
}
