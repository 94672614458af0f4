// Package httpapi is the HTTP edge of the system: routing, auth
// middleware and the mapping from service errors to wire status codes.
// All domain decisions live in the services it fronts.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"microblog/internal/config"
	"microblog/internal/feed"
	"microblog/internal/media"
	"microblog/internal/user"
)

type Server struct {
	router *mux.Router
	users  user.UserService
	feed   feed.FeedService
	media  *media.Service
	cfg    *config.Config
}

// NewServer wires all routes. The returned server is an http.Handler.
func NewServer(users user.UserService, feedSvc feed.FeedService, mediaSvc *media.Service, cfg *config.Config) *Server {
	s := &Server{
		router: mux.NewRouter(),
		users:  users,
		feed:   feedSvc,
		media:  mediaSvc,
		cfg:    cfg,
	}

	s.registerUserRoutes(s.router)
	s.registerTweetRoutes(s.router)
	s.registerMediaRoutes(s.router)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, envelope(nil))
}
