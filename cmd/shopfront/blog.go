package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

func newBlogCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Manage blog posts",
	}
	cmd.AddCommand(
		newBlogListCmd(cfg, jsonOutput),
		newBlogShowCmd(cfg, jsonOutput),
		newBlogCreateCmd(cfg, jsonOutput),
		newBlogUpdateCmd(cfg, jsonOutput),
		newBlogDeleteCmd(cfg),
	)
	return cmd
}

func newBlogListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blog posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				query := url.Values{}
				if status != "" {
					query.Set("status", status)
				}
				posts, err := c.ListBlogs(ctx, query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(posts)
				}
				writeBlogTable(posts)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (draft, published)")
	return cmd
}

func newBlogShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one blog post with full content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				post, err := c.GetBlog(ctx, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(post)
				}
				writeBlogDetail(post)
				return nil
			})
		},
	}
}

func newBlogCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var req api.BlogCreateRequest
	var contentFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("read content file: %w", err)
				}
				req.Content = string(data)
			}
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				post, err := c.CreateBlog(ctx, req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(post)
				}
				writePlain("created " + post.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "post title")
	cmd.Flags().StringVar(&req.Author, "author", "", "post author")
	cmd.Flags().StringVar(&req.Content, "content", "", "post content (HTML)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read post content from a file")
	cmd.Flags().StringVar(&req.Status, "status", "", "post status (draft, published)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("author")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func newBlogUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var title, author, content, contentFile, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a blog post; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				current, err := c.GetBlog(ctx, args[0])
				if err != nil {
					return err
				}

				req := api.BlogUpdateRequest{
					Title:   current.Title,
					Author:  current.Author,
					Content: current.Content,
					Status:  current.Status,
				}
				if cmd.Flags().Changed("title") {
					req.Title = title
				}
				if cmd.Flags().Changed("author") {
					req.Author = author
				}
				if cmd.Flags().Changed("content") {
					req.Content = content
				}
				if cmd.Flags().Changed("content-file") {
					data, err := os.ReadFile(contentFile)
					if err != nil {
						return fmt.Errorf("read content file: %w", err)
					}
					req.Content = string(data)
				}
				if cmd.Flags().Changed("status") {
					req.Status = status
				}

				post, err := c.UpdateBlog(ctx, args[0], req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(post)
				}
				writePlain("updated " + post.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&author, "author", "", "post author")
	cmd.Flags().StringVar(&content, "content", "", "post content (HTML)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read post content from a file")
	cmd.Flags().StringVar(&status, "status", "", "post status (draft, published)")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func newBlogDeleteCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := confirmDestructive("delete blog post "+args[0], yes)
			if err != nil {
				return err
			}
			if !confirmed {
				writePlain("aborted")
				return nil
			}
			return withClient(cfg, func(ctx context.Context, c *api.Client) error {
				if err := c.DeleteBlog(ctx, args[0], true); err != nil {
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
