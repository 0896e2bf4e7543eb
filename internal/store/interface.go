package store

import (
	"context"
	"time"

	"shopfront/internal/models"
)

// CatalogStore is the persistence surface for products and the category set.
type CatalogStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ProductExists(ctx context.Context, id string) (bool, error)
	CountProductsByCategory(ctx context.Context, category string) (int, error)
	ReassignCategory(ctx context.Context, oldName, newName string, updatedAt time.Time) (int, error)

	GetCategorySettings(ctx context.Context) (models.CategorySet, int64, error)
	PutCategorySettings(ctx context.Context, categories models.CategorySet, expectedRevision int64) (int64, error)
}

// BlogStore is the persistence surface for blog posts.
type BlogStore interface {
	CreateBlogPost(ctx context.Context, post *models.BlogPost) error
	GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, post *models.BlogPost) error
	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error
	BlogPostExists(ctx context.Context, id string) (bool, error)
}

// AuthStore is the persistence surface for admin users.
type AuthStore interface {
	CountEnabledAdmins(ctx context.Context) (int, error)
	CreateAdminUser(ctx context.Context, username, passwordHash string, now time.Time) (*AdminUser, error)
	GetAdminByUsername(ctx context.Context, username string) (*AdminUser, error)
	ListAdmins(ctx context.Context) ([]AdminUser, error)
	SetAdminDisabled(ctx context.Context, username string, disabled bool, now time.Time) (*AdminUser, error)
	DeleteAdmin(ctx context.Context, username string) (bool, error)
}

var _ CatalogStore = (*Store)(nil)
var _ BlogStore = (*Store)(nil)
var _ AuthStore = (*Store)(nil)
