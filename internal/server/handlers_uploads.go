package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"shopfront/internal/api"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.images == nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError,
			internalError(fmt.Errorf("image storage is not configured")))
		return
	}

	// One extra byte of headroom so oversized bodies fail inside the
	// multipart reader instead of resetting the connection.
	r.Body = http.MaxBytesReader(w, r.Body, s.images.maxBytes+(64<<10))

	if err := r.ParseMultipartForm(s.images.maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeErrorReq(w, r, http.StatusRequestEntityTooLarge,
				makeAPIError(http.StatusRequestEntityTooLarge, "too_large", ErrCodeInvalidUpload,
					fmt.Errorf("image exceeds %d byte limit", s.images.maxBytes)))
			return
		}
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("invalid multipart form: %w", err), ErrCodeInvalidUpload))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("image file field is required"), ErrCodeMissingRequired))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(path.Ext(header.Filename)))
	}

	result, err := s.images.Ingest(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log().Info("image stored", "key", result.Key, "size_bytes", result.SizeBytes)
	s.writeJSON(w, http.StatusCreated, api.UploadResponse{
		Key:       result.Key,
		URL:       result.URL,
		SizeBytes: result.SizeBytes,
	})
}

func (s *Server) handleServeBlob(w http.ResponseWriter, r *http.Request) {
	if s.images == nil {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		http.NotFound(w, r)
		return
	}

	rc, err := s.images.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.writeErrorReq(w, r, http.StatusInternalServerError, blobFailure(err))
		return
	}
	defer rc.Close()

	if contentType := mime.TypeByExtension(strings.ToLower(path.Ext(key))); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, rc); err != nil {
		s.log().Debug("serve blob interrupted", "key", key, "error", err)
	}
}
