package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"microblog/internal/logger"
)

// FileServer serves stored media bytes over HTTP.
type FileServer struct {
	svc *Service
}

func NewFileServer(svc *Service) *FileServer {
	return &FileServer{svc: svc}
}

// Register mounts GET /media/{link} on the router. Links contain
// slashes, so the variable swallows the rest of the path.
func (s *FileServer) Register(router *mux.Router) {
	router.HandleFunc("/media/{link:.+}", s.serveFile).Methods(http.MethodGet)
}

func (s *FileServer) serveFile(w http.ResponseWriter, r *http.Request) {
	link := mux.Vars(r)["link"]

	blob, size, err := s.svc.Open(r.Context(), link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to open media file", "link", link, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", contentTypeFor(link))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", size))

	if _, err := io.Copy(w, blob); err != nil {
		logger.Warn("error streaming media file", "link", link, "error", err)
	}
}

func contentTypeFor(link string) string {
	switch strings.ToLower(filepath.Ext(link)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
