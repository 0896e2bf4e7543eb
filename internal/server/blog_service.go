package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/models"
	"shopfront/internal/store"
	"shopfront/internal/textutil"
)

// BlogService owns blog post semantics: required fields, status parsing,
// and id assignment.
type BlogService struct {
	store store.BlogStore
}

// NewBlogService creates a blog service.
func NewBlogService(blogStore store.BlogStore) *BlogService {
	return &BlogService{store: blogStore}
}

// BlogInput carries the editable fields of a blog post.
type BlogInput struct {
	Title   string
	Author  string
	Content string
	Status  string
}

// List returns blog posts, optionally restricted to one status.
func (s *BlogService) List(ctx context.Context, status string) ([]models.BlogPost, error) {
	posts, err := s.store.ListBlogPosts(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	if strings.TrimSpace(status) == "" {
		return posts, nil
	}

	want, err := models.ParseBlogStatus(status)
	if err != nil {
		return nil, badRequestCode(err, ErrCodeInvalidStatus)
	}
	out := make([]models.BlogPost, 0, len(posts))
	for _, post := range posts {
		if post.Status == want {
			out = append(out, post)
		}
	}
	return out, nil
}

// Get returns one blog post or a not-found error.
func (s *BlogService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.store.GetBlogPost(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if post == nil {
		return nil, notFoundCode(fmt.Errorf("blog post not found: %s", id), ErrCodeBlogNotFound)
	}
	return post, nil
}

// Create validates input, assigns an id, and persists the post.
func (s *BlogService) Create(ctx context.Context, input BlogInput) (*models.BlogPost, error) {
	normalized, err := normalizeBlogInput(input)
	if err != nil {
		return nil, err
	}

	id, err := store.GenerateBlogID(func(candidate string) (bool, error) {
		return s.store.BlogPostExists(ctx, candidate)
	})
	if err != nil {
		return nil, internalError(err)
	}

	now := time.Now().UTC()
	post := &models.BlogPost{
		ID:        id,
		Title:     normalized.Title,
		Author:    normalized.Author,
		Content:   normalized.Content,
		Status:    normalized.status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateBlogPost(ctx, post); err != nil {
		return nil, storeFailure(err)
	}
	return post, nil
}

// Update replaces a blog post's editable fields.
func (s *BlogService) Update(ctx context.Context, id string, input BlogInput) (*models.BlogPost, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeBlogInput(input)
	if err != nil {
		return nil, err
	}

	updated := &models.BlogPost{
		ID:        existing.ID,
		Title:     normalized.Title,
		Author:    normalized.Author,
		Content:   normalized.Content,
		Status:    normalized.status,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.UpdateBlogPost(ctx, updated); err != nil {
		return nil, storeFailure(err)
	}
	return updated, nil
}

// Delete removes a blog post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteBlogPost(ctx, id); err != nil {
		return storeFailure(err)
	}
	return nil
}

type normalizedBlogInput struct {
	BlogInput
	status models.BlogStatus
}

func normalizeBlogInput(input BlogInput) (normalizedBlogInput, error) {
	var zero normalizedBlogInput
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.Content = strings.TrimSpace(input.Content)

	if input.Title == "" {
		return zero, badRequestCode(fmt.Errorf("title is required"), ErrCodeMissingRequired)
	}
	if input.Author == "" {
		return zero, badRequestCode(fmt.Errorf("author is required"), ErrCodeMissingRequired)
	}
	// Markup with no visible text ("<p></p>") is empty content.
	if textutil.PlainText(input.Content) == "" {
		return zero, badRequestCode(fmt.Errorf("content is required"), ErrCodeMissingRequired)
	}

	status := models.BlogStatusDraft
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := models.ParseBlogStatus(input.Status)
		if err != nil {
			return zero, badRequestCode(err, ErrCodeInvalidStatus)
		}
		status = parsed
	}

	return normalizedBlogInput{BlogInput: input, status: status}, nil
}
