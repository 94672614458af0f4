package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"microblog/internal/apperr"
	"microblog/internal/media"
)

func (s *Server) registerMediaRoutes(r *mux.Router) {
	r.HandleFunc("/api/medias", s.requireAuth(s.handleUploadMedia)).Methods(http.MethodPost)
	media.NewFileServer(s.media).Register(r)
}

// handleUploadMedia accepts a multipart upload under the "file" field
// and returns the stored media row. The attachment is linked to a
// tweet later, at tweet creation.
func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, apperr.Errorf(apperr.EINVALID, "missing file field"))
		return
	}
	defer file.Close()

	stored, err := s.media.Store(r.Context(), viewerID(r.Context()), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope(map[string]any{"media": stored}))
}
