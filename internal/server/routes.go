package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Storefront read model.
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)

	// Products. Reads are open; writes require admin credentials.
	mux.HandleFunc("GET /v1/products", s.handleListProducts)
	mux.HandleFunc("GET /v1/products/{id}", s.handleGetProduct)
	mux.HandleFunc("POST /v1/products", s.requireAdmin(s.handleCreateProduct))
	mux.HandleFunc("PUT /v1/products/{id}", s.requireAdmin(s.handleUpdateProduct))
	mux.HandleFunc("DELETE /v1/products/{id}", s.requireAdmin(s.handleDeleteProduct))

	// Categories.
	mux.HandleFunc("GET /v1/categories", s.handleGetCategories)
	mux.HandleFunc("POST /v1/categories", s.requireAdmin(s.handleAddCategory))
	mux.HandleFunc("PATCH /v1/categories/{name}", s.requireAdmin(s.handleRenameCategory))
	mux.HandleFunc("DELETE /v1/categories/{name}", s.requireAdmin(s.handleDeleteCategory))

	// Blog posts.
	mux.HandleFunc("GET /v1/blogs", s.handleListBlogs)
	mux.HandleFunc("GET /v1/blogs/{id}", s.handleGetBlog)
	mux.HandleFunc("POST /v1/blogs", s.requireAdmin(s.handleCreateBlog))
	mux.HandleFunc("PUT /v1/blogs/{id}", s.requireAdmin(s.handleUpdateBlog))
	mux.HandleFunc("DELETE /v1/blogs/{id}", s.requireAdmin(s.handleDeleteBlog))

	// Image uploads and serving.
	mux.HandleFunc("POST /v1/uploads", s.requireAdmin(s.handleUpload))
	mux.HandleFunc("GET /blobs/{key}", s.handleServeBlob)

	return s.withRequestLogging(mux)
}
