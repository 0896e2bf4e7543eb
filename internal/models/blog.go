package models

import (
	"fmt"
	"strings"
	"time"
)

// BlogStatus defines allowed publication states for blog posts.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

var validBlogStatuses = map[BlogStatus]struct{}{
	BlogStatusDraft:     {},
	BlogStatusPublished: {},
}

// BlogPost represents one blog document. Content is the HTML produced by the
// rich-text editor; the service layer treats it as opaque apart from
// plain-text stripping for excerpts and emptiness checks.
type BlogPost struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Content   string     `json:"content"`
	Status    BlogStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func IsValidBlogStatus(status BlogStatus) bool {
	_, ok := validBlogStatuses[status]
	return ok
}

func ParseBlogStatus(raw string) (BlogStatus, error) {
	value := BlogStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidBlogStatus(value) {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return value, nil
}
