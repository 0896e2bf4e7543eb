package server

import (
	"fmt"
	"net/http"
	"strings"

	"shopfront/internal/api"
)

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, revision, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CategoriesResponse{Categories: categories, Revision: revision})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryAddRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if req.Revision <= 0 {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("revision is required"), ErrCodeMissingRequired))
		return
	}

	categories, revision, err := s.catalog.AddCategory(r.Context(), req.Name, req.Revision)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CategoryMutationResponse{Categories: categories, Revision: revision})
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := s.pathCategoryOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.CategoryRenameRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if req.Revision <= 0 {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("revision is required"), ErrCodeMissingRequired))
		return
	}

	result, err := s.catalog.RenameCategory(r.Context(), name, req.NewName, req.Revision)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CategoryMutationResponse{
		Categories: result.Categories,
		Revision:   result.Revision,
		Reassigned: result.Reassigned,
	})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := s.pathCategoryOrBadRequest(w, r)
	if !ok {
		return
	}
	if !s.requireConfirm(w, r) {
		return
	}
	revision, err := queryRevision(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.catalog.DeleteCategory(r.Context(), name, revision)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CategoryMutationResponse{
		Categories: result.Categories,
		Revision:   result.Revision,
		Remaining:  result.Remaining,
	})
}

func (s *Server) pathCategoryOrBadRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.PathValue("name"))
	if !validateCategoryName(name) {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("invalid category name"), ErrCodeInvalidArgument))
		return "", false
	}
	return name, true
}
