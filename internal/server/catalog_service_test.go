package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"shopfront/internal/models"
	"shopfront/internal/store"
)

func TestFilterProducts(t *testing.T) {
	products := []models.Product{
		{ID: "pr-0001", Name: "Anker charger", Category: "chargers", Description: "fast USB-C charging"},
		{ID: "pr-0002", Name: "Lightning cable", Category: "cables", Description: "1m braided"},
		{ID: "pr-0003", Name: "Wall charger", Category: "chargers", Description: "dual port"},
	}

	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{"no filters", "", "", []string{"pr-0001", "pr-0002", "pr-0003"}},
		{"category only", "chargers", "", []string{"pr-0001", "pr-0003"}},
		{"search matches name case insensitive", "", "CHARGER", []string{"pr-0001", "pr-0003"}},
		{"search matches description", "", "braided", []string{"pr-0002"}},
		{"filters compose", "chargers", "dual", []string{"pr-0003"}},
		{"category is exact", "charger", "", []string{}},
		{"no match", "cables", "anker", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, tt.category, tt.search)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d products, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("expected %q at %d, got %q", id, i, got[i].ID)
				}
			}
		})
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewCatalogService(testStore(t), nil)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, ProductInput{Category: "cables"}); err == nil {
		t.Fatal("expected missing name to fail")
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Name: "Cable"}); err == nil {
		t.Fatal("expected missing category to fail")
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Name: "Cable", Category: "not-a-category"}); err == nil {
		t.Fatal("expected unknown category to fail")
	}

	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Cable", Category: "cables"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(product.ID, "pr-") {
		t.Fatalf("expected pr- id, got %q", product.ID)
	}
	if product.CreatedAt.IsZero() || !product.CreatedAt.Equal(product.UpdatedAt) {
		t.Fatalf("expected fresh equal timestamps, got %+v", product)
	}
}

func TestCreateProductRewritesDriveLink(t *testing.T) {
	svc := NewCatalogService(testStore(t), nil)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:     "Ring light",
		Category: "ring lights",
		Picture:  "https://drive.google.com/file/d/abc123/view?usp=sharing",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := "https://drive.google.com/uc?export=view&id=abc123"
	if product.Picture != want {
		t.Fatalf("expected rewritten drive link %q, got %q", want, product.Picture)
	}
}

func TestUpdateProductRetiresOldImage(t *testing.T) {
	images := testImageService(t)
	svc := NewCatalogService(testStore(t), images)
	ctx := context.Background()

	stored, err := images.Ingest(ctx, "old.png", "image/png", strings.NewReader("old-bytes"), 9)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Headset", Category: "headset", Picture: stored.URL})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateProduct(ctx, product.ID, ProductInput{
		Name: "Headset", Category: "headset", Picture: "https://example.com/new.png",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	exists, err := images.bucket.Exists(ctx, stored.Key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected replaced image to be retired")
	}
}

func TestFailedUpdateKeepsOldImage(t *testing.T) {
	images := testImageService(t)
	svc := NewCatalogService(testStore(t), images)
	ctx := context.Background()

	stored, err := images.Ingest(ctx, "old.png", "image/png", strings.NewReader("old-bytes"), 9)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Headset", Category: "headset", Picture: stored.URL})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Unknown category makes the update fail before the write; the image
	// must survive a rejected update.
	_, err = svc.UpdateProduct(ctx, product.ID, ProductInput{
		Name: "Headset", Category: "no-such-category", Picture: "https://example.com/new.png",
	})
	if httpStatusFromError(err) != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}

	exists, err := images.bucket.Exists(ctx, stored.Key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("old image must survive a failed update")
	}
}

func TestDeleteProductRetiresImage(t *testing.T) {
	images := testImageService(t)
	svc := NewCatalogService(testStore(t), images)
	ctx := context.Background()

	stored, err := images.Ingest(ctx, "pic.png", "image/png", strings.NewReader("bytes"), 5)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Pouch", Category: "phone pouches", Picture: stored.URL})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	exists, err := images.bucket.Exists(ctx, stored.Key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected image retired with product")
	}
	if _, err := svc.GetProduct(ctx, product.ID); httpStatusFromError(err) != http.StatusNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestRenameCategoryReassignsProducts(t *testing.T) {
	svc := NewCatalogService(testStore(t), nil)
	ctx := context.Background()

	for _, name := range []string{"Pods A", "Pods B"} {
		if _, err := svc.CreateProduct(ctx, ProductInput{Name: name, Category: "earpod"}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	_, revision, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}

	result, err := svc.RenameCategory(ctx, "earpod", "earbuds", revision)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if result.Reassigned != 2 {
		t.Fatalf("expected 2 products reassigned, got %d", result.Reassigned)
	}
	if result.Categories.Contains("earpod") || !result.Categories.Contains("earbuds") {
		t.Fatalf("expected earbuds to replace earpod: %v", result.Categories)
	}

	products, err := svc.ListProducts(ctx, "earbuds", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products in earbuds, got %d", len(products))
	}
}

func TestCategoryRevisionConflict(t *testing.T) {
	svc := NewCatalogService(testStore(t), nil)
	ctx := context.Background()

	_, revision, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}

	if _, _, err := svc.AddCategory(ctx, "tripods", revision); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// Second writer still holds the old revision.
	_, _, err = svc.AddCategory(ctx, "gimbals", revision)
	if httpStatusFromError(err) != http.StatusConflict {
		t.Fatalf("expected conflict for stale revision, got %v", err)
	}
}

func TestDeleteCategoryReportsRemaining(t *testing.T) {
	svc := NewCatalogService(testStore(t), nil)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, ProductInput{Name: "Guard", Category: "screen guards"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, revision, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}

	result, err := svc.DeleteCategory(ctx, "screen guards", revision)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if result.Categories.Contains("screen guards") {
		t.Fatalf("category still present: %v", result.Categories)
	}
	if result.Remaining != 1 {
		t.Fatalf("expected 1 product still carrying the category, got %d", result.Remaining)
	}

	// The product itself is untouched.
	products, err := svc.ListProducts(ctx, "", "guard")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected product to survive category delete, got %d", len(products))
	}
}

func TestLoadAllSeedsDefaults(t *testing.T) {
	svc := NewCatalogService(testStore(t), nil)

	catalog := svc.LoadAll(context.Background())
	if err := catalog.Err(); err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(catalog.Products) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(catalog.Products))
	}
	if len(catalog.Categories) != len(models.DefaultCategories) {
		t.Fatalf("expected %d seeded categories, got %d", len(models.DefaultCategories), len(catalog.Categories))
	}
	if catalog.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", catalog.Revision)
	}
}

type failingProductsStore struct {
	store.CatalogStore
}

func (failingProductsStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return nil, errors.New("products fetch down")
}

type failingSettingsStore struct {
	store.CatalogStore
}

func (failingSettingsStore) GetCategorySettings(ctx context.Context) (models.CategorySet, int64, error) {
	return nil, 0, errors.New("settings fetch down")
}

func TestLoadAllFailureDomainsAreIndependent(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)

	if _, err := NewCatalogService(st, nil).CreateProduct(ctx, ProductInput{Name: "Strap", Category: "smart watches"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("products down keeps categories", func(t *testing.T) {
		catalog := NewCatalogService(failingProductsStore{st}, nil).LoadAll(ctx)
		if catalog.ProductsErr == nil {
			t.Fatal("expected products error")
		}
		if catalog.SettingsErr != nil {
			t.Fatalf("settings side must not fail: %v", catalog.SettingsErr)
		}
		if len(catalog.Categories) == 0 || catalog.Revision == 0 {
			t.Fatalf("category set must survive a products failure, got %v rev %d",
				catalog.Categories, catalog.Revision)
		}
		if catalog.Err() == nil {
			t.Fatal("partial failure must still surface an error")
		}
	})

	t.Run("settings down keeps products", func(t *testing.T) {
		catalog := NewCatalogService(failingSettingsStore{st}, nil).LoadAll(ctx)
		if catalog.SettingsErr == nil {
			t.Fatal("expected settings error")
		}
		if catalog.ProductsErr != nil {
			t.Fatalf("products side must not fail: %v", catalog.ProductsErr)
		}
		if len(catalog.Products) != 1 {
			t.Fatalf("products must survive a settings failure, got %d", len(catalog.Products))
		}
	})
}
