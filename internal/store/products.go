package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"shopfront/internal/models"
)

// productData is the JSON payload stored in the documents table for one
// product. Timestamps and the id live in table columns, not in the payload.
type productData struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Picture     string `json:"picture,omitempty"`
}

func validateProduct(product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if strings.TrimSpace(product.Category) == "" {
		return fmt.Errorf("product category is required")
	}
	return nil
}

// CreateProduct inserts a product document.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	data, err := json.Marshal(productData{
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Picture:     product.Picture,
	})
	if err != nil {
		return err
	}
	return s.insertDocument(ctx, document{
		Collection: CollectionProducts,
		ID:         product.ID,
		Data:       string(data),
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	})
}

// GetProduct returns a product by id, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	doc, err := s.getDocument(ctx, CollectionProducts, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return productFromDocument(doc)
}

// UpdateProduct replaces a product document's payload.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if product.ID == "" {
		return fmt.Errorf("product id is required")
	}
	data, err := json.Marshal(productData{
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Picture:     product.Picture,
	})
	if err != nil {
		return err
	}
	return s.updateDocument(ctx, CollectionProducts, product.ID, string(data), product.UpdatedAt)
}

// ListProducts returns all products ordered by name, case-insensitive.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	docs, err := s.listDocuments(ctx, CollectionProducts)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for i := range docs {
		product, err := productFromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})

	return products, nil
}

// DeleteProduct removes a product document.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteDocument(ctx, CollectionProducts, id)
}

// ProductExists reports whether a product id is present.
func (s *Store) ProductExists(ctx context.Context, id string) (bool, error) {
	return s.documentExists(ctx, CollectionProducts, id)
}

// CountProductsByCategory returns the number of products in a category.
func (s *Store) CountProductsByCategory(ctx context.Context, category string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents
		WHERE collection = ? AND json_extract(data, '$.category') = ?
	`, CollectionProducts, category).Scan(&count)
	return count, err
}

// ReassignCategory moves every product in oldName to newName and returns the
// number of products touched.
func (s *Store) ReassignCategory(ctx context.Context, oldName, newName string, updatedAt time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET data = json_set(data, '$.category', ?), updated_at = ?
		WHERE collection = ? AND json_extract(data, '$.category') = ?
	`, newName, formatTime(updatedAt), CollectionProducts, oldName)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func productFromDocument(doc *document) (*models.Product, error) {
	var data productData
	if err := json.Unmarshal([]byte(doc.Data), &data); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", doc.ID, err)
	}
	return &models.Product{
		ID:          doc.ID,
		Name:        data.Name,
		Category:    data.Category,
		Description: data.Description,
		Picture:     data.Picture,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
