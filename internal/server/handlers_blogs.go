package server

import (
	"net/http"

	"shopfront/internal/api"
)

func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blogs.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBlogResponses(posts))
}

func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	post, err := s.blogs.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBlogResponse(post, true))
}

func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req api.BlogCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	post, err := s.blogs.Create(r.Context(), BlogInput{
		Title:   req.Title,
		Author:  req.Author,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toBlogResponse(post, true))
}

func (s *Server) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.BlogUpdateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	post, err := s.blogs.Update(r.Context(), id, BlogInput{
		Title:   req.Title,
		Author:  req.Author,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBlogResponse(post, true))
}

func (s *Server) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	if !s.requireConfirm(w, r) {
		return
	}
	if err := s.blogs.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
