package server

import (
	"net/http"

	"shopfront/internal/api"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("q")

	products, err := s.catalog.ListProducts(r.Context(), category, search)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.ProductCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	product, err := s.catalog.CreateProduct(r.Context(), ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Picture:     req.Picture,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.ProductUpdateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	product, err := s.catalog.UpdateProduct(r.Context(), id, ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Picture:     req.Picture,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	if !s.requireConfirm(w, r) {
		return
	}
	if err := s.catalog.DeleteProduct(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
