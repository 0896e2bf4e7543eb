package server

import (
	"net/http"
	"time"

	"shopfront/internal/api"
	"shopfront/internal/models"
	"shopfront/internal/textutil"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	catalog := s.catalog.LoadAll(r.Context())
	if catalog.ProductsErr != nil && catalog.SettingsErr != nil {
		s.writeServiceError(w, r, catalog.Err())
		return
	}
	posts, err := s.blogs.List(r.Context(), "")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		Version:    Version,
		Products:   len(catalog.Products),
		Blogs:      len(posts),
		Categories: len(catalog.Categories),
		Warnings:   s.catalogWarnings(r, catalog),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := s.catalog.LoadAll(r.Context())
	if catalog.ProductsErr != nil && catalog.SettingsErr != nil {
		s.writeServiceError(w, r, catalog.Err())
		return
	}
	s.writeJSON(w, http.StatusOK, api.CatalogResponse{
		Products:   toProductResponses(catalog.Products),
		Categories: catalog.Categories,
		Revision:   catalog.Revision,
		Warnings:   s.catalogWarnings(r, catalog),
	})
}

// catalogWarnings reports partial catalog fetch failures. The healthy side
// still serves; the broken one is named in the response and logged.
func (s *Server) catalogWarnings(r *http.Request, catalog Catalog) []string {
	var warnings []string
	if catalog.ProductsErr != nil {
		warnings = append(warnings, "products unavailable")
		s.log().Warn("catalog products fetch failed", "path", r.URL.Path, "error", catalog.ProductsErr)
	}
	if catalog.SettingsErr != nil {
		warnings = append(warnings, "categories unavailable")
		s.log().Warn("catalog categories fetch failed", "path", r.URL.Path, "error", catalog.SettingsErr)
	}
	return warnings
}

func toProductResponse(product *models.Product) api.ProductResponse {
	return api.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Picture:     product.Picture,
		CreatedAt:   product.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toProductResponses(products []models.Product) []api.ProductResponse {
	out := make([]api.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

// toBlogResponse maps one post. The excerpt and display date are derived on
// the way out; includeContent controls whether the full HTML rides along.
func toBlogResponse(post *models.BlogPost, includeContent bool) api.BlogResponse {
	resp := api.BlogResponse{
		ID:          post.ID,
		Title:       post.Title,
		Author:      post.Author,
		Excerpt:     textutil.Excerpt(post.Content),
		Status:      string(post.Status),
		CreatedAt:   post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   post.UpdatedAt.UTC().Format(time.RFC3339),
		DisplayDate: textutil.FormatLongDate(post.CreatedAt),
	}
	if includeContent {
		resp.Content = post.Content
	}
	return resp
}

func toBlogResponses(posts []models.BlogPost) []api.BlogResponse {
	out := make([]api.BlogResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toBlogResponse(&posts[i], false))
	}
	return out
}
