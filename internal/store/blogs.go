package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"shopfront/internal/models"
)

type blogData struct {
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Content string            `json:"content"`
	Status  models.BlogStatus `json:"status"`
}

func validateBlogPost(post *models.BlogPost) error {
	if post == nil {
		return fmt.Errorf("blog post is required")
	}
	if strings.TrimSpace(post.Title) == "" {
		return fmt.Errorf("blog title is required")
	}
	if strings.TrimSpace(post.Author) == "" {
		return fmt.Errorf("blog author is required")
	}
	if strings.TrimSpace(post.Content) == "" {
		return fmt.Errorf("blog content is required")
	}
	if !models.IsValidBlogStatus(post.Status) {
		return fmt.Errorf("invalid blog status: %s", post.Status)
	}
	return nil
}

// CreateBlogPost inserts a blog document.
func (s *Store) CreateBlogPost(ctx context.Context, post *models.BlogPost) error {
	if err := validateBlogPost(post); err != nil {
		return err
	}
	data, err := json.Marshal(blogData{
		Title:   post.Title,
		Author:  post.Author,
		Content: post.Content,
		Status:  post.Status,
	})
	if err != nil {
		return err
	}
	return s.insertDocument(ctx, document{
		Collection: CollectionBlogs,
		ID:         post.ID,
		Data:       string(data),
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	})
}

// GetBlogPost returns a blog post by id, or nil when absent.
func (s *Store) GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error) {
	doc, err := s.getDocument(ctx, CollectionBlogs, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return blogFromDocument(doc)
}

// UpdateBlogPost replaces a blog document's payload.
func (s *Store) UpdateBlogPost(ctx context.Context, post *models.BlogPost) error {
	if err := validateBlogPost(post); err != nil {
		return err
	}
	if post.ID == "" {
		return fmt.Errorf("blog id is required")
	}
	data, err := json.Marshal(blogData{
		Title:   post.Title,
		Author:  post.Author,
		Content: post.Content,
		Status:  post.Status,
	})
	if err != nil {
		return err
	}
	return s.updateDocument(ctx, CollectionBlogs, post.ID, string(data), post.UpdatedAt)
}

// ListBlogPosts returns all blog posts, newest first.
func (s *Store) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	docs, err := s.listDocuments(ctx, CollectionBlogs)
	if err != nil {
		return nil, err
	}

	posts := make([]models.BlogPost, 0, len(docs))
	for i := range docs {
		post, err := blogFromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

// DeleteBlogPost removes a blog document.
func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	return s.deleteDocument(ctx, CollectionBlogs, id)
}

// BlogPostExists reports whether a blog post id is present.
func (s *Store) BlogPostExists(ctx context.Context, id string) (bool, error) {
	return s.documentExists(ctx, CollectionBlogs, id)
}

func blogFromDocument(doc *document) (*models.BlogPost, error) {
	var data blogData
	if err := json.Unmarshal([]byte(doc.Data), &data); err != nil {
		return nil, fmt.Errorf("decode blog post %s: %w", doc.ID, err)
	}
	return &models.BlogPost{
		ID:        doc.ID,
		Title:     data.Title,
		Author:    data.Author,
		Content:   data.Content,
		Status:    data.Status,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
