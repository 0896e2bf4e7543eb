package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shopfront/internal/models"
	"shopfront/internal/store"
	"shopfront/internal/textutil"
)

// CatalogService owns product and category semantics: validation, id
// assignment, category membership, and retiring replaced images.
type CatalogService struct {
	store  store.CatalogStore
	images *ImageService
}

// NewCatalogService creates a catalog service. images may be nil in contexts
// that never touch uploads.
func NewCatalogService(catalogStore store.CatalogStore, images *ImageService) *CatalogService {
	return &CatalogService{store: catalogStore, images: images}
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name        string
	Category    string
	Description string
	Picture     string
}

// Catalog is the combined storefront read model. The two fetches fail
// independently: a products error leaves Products empty without discarding
// a successfully loaded category set, and vice versa.
type Catalog struct {
	Products    []models.Product
	Categories  models.CategorySet
	Revision    int64
	ProductsErr error
	SettingsErr error
}

// Err returns the first fetch error, or nil when both sides loaded.
func (c Catalog) Err() error {
	if c.ProductsErr != nil {
		return c.ProductsErr
	}
	return c.SettingsErr
}

// LoadAll fetches products and the category set concurrently. Each side
// reports its own error so callers can serve whatever half loaded.
func (s *CatalogService) LoadAll(ctx context.Context) Catalog {
	var (
		wg          sync.WaitGroup
		products    []models.Product
		categories  models.CategorySet
		revision    int64
		productsErr error
		settingsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productsErr = s.store.ListProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, revision, settingsErr = s.store.GetCategorySettings(ctx)
	}()
	wg.Wait()

	catalog := Catalog{}
	if productsErr != nil {
		catalog.ProductsErr = storeFailure(productsErr)
	} else {
		catalog.Products = products
	}
	if settingsErr != nil {
		catalog.SettingsErr = storeFailure(settingsErr)
	} else {
		catalog.Categories = categories
		catalog.Revision = revision
	}
	return catalog
}

// ListProducts returns products filtered by category and search term.
// Category matches exactly or not at all; the search term matches
// case-insensitively against name and description. Both filters compose.
func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return FilterProducts(products, category, search), nil
}

// FilterProducts applies the storefront category and search filters.
func FilterProducts(products []models.Product, category, search string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)

	out := make([]models.Product, 0, len(products))
	for _, product := range products {
		if category != "" && product.Category != category {
			continue
		}
		if search != "" {
			name := strings.ToLower(product.Name)
			description := strings.ToLower(product.Description)
			if !strings.Contains(name, search) && !strings.Contains(description, search) {
				continue
			}
		}
		out = append(out, product)
	}
	return out
}

// GetProduct returns one product or a not-found error.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if product == nil {
		return nil, notFoundCode(fmt.Errorf("product not found: %s", id), ErrCodeProductNotFound)
	}
	return product, nil
}

// CreateProduct validates input, assigns an id, and persists the product.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	input, err := s.normalizeInput(ctx, input)
	if err != nil {
		return nil, err
	}

	id, err := store.GenerateProductID(func(candidate string) (bool, error) {
		return s.store.ProductExists(ctx, candidate)
	})
	if err != nil {
		return nil, internalError(err)
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Picture:     input.Picture,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, storeFailure(err)
	}
	return product, nil
}

// UpdateProduct replaces a product's editable fields. When the picture
// changes, the previous image is retired after the write lands so a failed
// update never orphans the product's current image.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	input, err = s.normalizeInput(ctx, input)
	if err != nil {
		return nil, err
	}

	updated := &models.Product{
		ID:          existing.ID,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Picture:     input.Picture,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.store.UpdateProduct(ctx, updated); err != nil {
		return nil, storeFailure(err)
	}

	if existing.Picture != updated.Picture {
		s.retireImage(ctx, existing.Picture)
	}
	return updated, nil
}

// DeleteProduct removes a product and retires its image.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return storeFailure(err)
	}
	s.retireImage(ctx, existing.Picture)
	return nil
}

// Categories returns the category set and its revision.
func (s *CatalogService) Categories(ctx context.Context) (models.CategorySet, int64, error) {
	categories, revision, err := s.store.GetCategorySettings(ctx)
	if err != nil {
		return nil, 0, storeFailure(err)
	}
	return categories, revision, nil
}

// AddCategory adds one category at the given revision.
func (s *CatalogService) AddCategory(ctx context.Context, name string, revision int64) (models.CategorySet, int64, error) {
	name = strings.TrimSpace(name)
	if !validateCategoryName(name) {
		return nil, 0, badRequestCode(fmt.Errorf("invalid category name"), ErrCodeInvalidArgument)
	}

	categories, _, err := s.store.GetCategorySettings(ctx)
	if err != nil {
		return nil, 0, storeFailure(err)
	}
	updated, err := categories.Add(name)
	if err != nil {
		return nil, 0, conflictCode(err, ErrCodeCategoryExists)
	}
	newRevision, err := s.putCategories(ctx, updated, revision)
	if err != nil {
		return nil, 0, err
	}
	return updated, newRevision, nil
}

// CategoryRenameResult reports a rename plus how many products moved.
type CategoryRenameResult struct {
	Categories models.CategorySet
	Revision   int64
	Reassigned int
}

// RenameCategory renames one category and moves its products along.
func (s *CatalogService) RenameCategory(ctx context.Context, oldName, newName string, revision int64) (CategoryRenameResult, error) {
	var zero CategoryRenameResult
	newName = strings.TrimSpace(newName)
	if !validateCategoryName(newName) {
		return zero, badRequestCode(fmt.Errorf("invalid category name"), ErrCodeInvalidArgument)
	}

	categories, _, err := s.store.GetCategorySettings(ctx)
	if err != nil {
		return zero, storeFailure(err)
	}
	if !categories.Contains(oldName) {
		return zero, notFoundCode(fmt.Errorf("category not found: %s", oldName), ErrCodeCategoryNotFound)
	}
	updated, err := categories.Rename(oldName, newName)
	if err != nil {
		return zero, conflictCode(err, ErrCodeCategoryExists)
	}

	newRevision, err := s.putCategories(ctx, updated, revision)
	if err != nil {
		return zero, err
	}

	moved, err := s.store.ReassignCategory(ctx, oldName, newName, time.Now().UTC())
	if err != nil {
		return zero, storeFailure(err)
	}
	return CategoryRenameResult{Categories: updated, Revision: newRevision, Reassigned: moved}, nil
}

// CategoryDeleteResult reports a delete plus how many products still carry
// the removed category.
type CategoryDeleteResult struct {
	Categories models.CategorySet
	Revision   int64
	Remaining  int
}

// DeleteCategory removes one category from the set. Products keep their
// stored category value; the storefront filter simply loses the option.
func (s *CatalogService) DeleteCategory(ctx context.Context, name string, revision int64) (CategoryDeleteResult, error) {
	var zero CategoryDeleteResult

	categories, _, err := s.store.GetCategorySettings(ctx)
	if err != nil {
		return zero, storeFailure(err)
	}
	updated, err := categories.Remove(name)
	if err != nil {
		return zero, notFoundCode(err, ErrCodeCategoryNotFound)
	}

	newRevision, err := s.putCategories(ctx, updated, revision)
	if err != nil {
		return zero, err
	}

	remaining, err := s.store.CountProductsByCategory(ctx, name)
	if err != nil {
		return zero, storeFailure(err)
	}
	return CategoryDeleteResult{Categories: updated, Revision: newRevision, Remaining: remaining}, nil
}

func (s *CatalogService) putCategories(ctx context.Context, categories models.CategorySet, revision int64) (int64, error) {
	newRevision, err := s.store.PutCategorySettings(ctx, categories, revision)
	if errors.Is(err, store.ErrRevisionMismatch) {
		return 0, conflictCode(fmt.Errorf("category set changed, reload and retry"), ErrCodeRevisionMismatch)
	}
	if err != nil {
		return 0, storeFailure(err)
	}
	return newRevision, nil
}

func (s *CatalogService) normalizeInput(ctx context.Context, input ProductInput) (ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)
	input.Picture = textutil.RewriteDriveLink(strings.TrimSpace(input.Picture))

	if input.Name == "" {
		return input, badRequestCode(fmt.Errorf("name is required"), ErrCodeMissingRequired)
	}
	if input.Category == "" {
		return input, badRequestCode(fmt.Errorf("category is required"), ErrCodeMissingRequired)
	}

	categories, _, err := s.store.GetCategorySettings(ctx)
	if err != nil {
		return input, storeFailure(err)
	}
	if !categories.Contains(input.Category) {
		return input, badRequestCode(fmt.Errorf("unknown category: %s", input.Category), ErrCodeInvalidArgument)
	}
	return input, nil
}

func (s *CatalogService) retireImage(ctx context.Context, pictureURL string) {
	if s.images == nil {
		return
	}
	s.images.Retire(ctx, pictureURL)
}
