package server

import (
	"fmt"
	"net/http"
	"strings"

	"shopfront/internal/auth"
)

// requireAdmin gates write endpoints. A request passes with a bearer token
// matching the configured admin token, or with basic credentials for an
// enabled admin user. When neither a token nor any admin users are
// provisioned the instance runs open, which suits local development.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.authorizeAdmin(r)
		if err != nil {
			s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
			return
		}
		if !ok {
			err := unauthorized(fmt.Errorf("admin credentials required"))
			s.writeErrorReq(w, r, httpStatusFromError(err), err)
			return
		}
		next(w, r)
	}
}

func (s *Server) authorizeAdmin(r *http.Request) (bool, error) {
	if token := bearerToken(r); token != "" && auth.TokenEqual(s.adminToken, token) {
		return true, nil
	}

	if username, password, ok := r.BasicAuth(); ok {
		user, err := s.authStore.GetAdminByUsername(r.Context(), username)
		if err != nil {
			return false, err
		}
		if user != nil && !user.Disabled && auth.VerifyPassword(user.PasswordHash, password) {
			return true, nil
		}
		return false, nil
	}

	if s.adminToken == "" {
		count, err := s.authStore.CountEnabledAdmins(r.Context())
		if err != nil {
			return false, err
		}
		if count == 0 {
			return true, nil
		}
	}

	return false, nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
