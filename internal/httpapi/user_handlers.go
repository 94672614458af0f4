package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"microblog/internal/apperr"
	"microblog/internal/user"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	r.HandleFunc("/api/users", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/users", s.handleListUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users/handle/{handle}", s.handleGetUserByHandle).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id:[0-9]+}/follow", s.requireAuth(s.handleFollow)).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{id:[0-9]+}/follow", s.requireAuth(s.handleUnfollow)).Methods(http.MethodDelete)
	r.HandleFunc("/api/users/{id:[0-9]+}/followers", s.handleListFollowers).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id:[0-9]+}/following", s.handleListFollowing).Methods(http.MethodGet)
}

type credentialsRequest struct {
	Handle    string `json:"handle"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// pathID pulls a numeric path variable. Routes constrain the pattern,
// so a parse failure means a malformed request.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperr.Errorf(apperr.EINVALID, "invalid %s", name)
	}
	return id, nil
}

// parseInclude maps the include query parameter onto relation modes.
// Unknown values fall back to no relations.
func parseInclude(r *http.Request) user.Include {
	switch user.Include(r.URL.Query().Get("include")) {
	case user.IncludeFollowers:
		return user.IncludeFollowers
	case user.IncludeFollowing:
		return user.IncludeFollowing
	case user.IncludeAll:
		return user.IncludeAll
	default:
		return user.IncludeNone
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, apperr.Errorf(apperr.EINVALID, "invalid request body"))
		return
	}

	created, token, err := s.users.Register(r.Context(), req.Handle, req.Password, req.FirstName, req.LastName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope(map[string]any{
		"user":  created,
		"token": token,
	}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, apperr.Errorf(apperr.EINVALID, "invalid request body"))
		return
	}

	logged, token, err := s.users.Login(r.Context(), req.Handle, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{
		"user":  logged,
		"token": token,
	}))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context(), parseInclude(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"users": users}))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	profile, err := s.users.GetProfile(r.Context(), id, parseInclude(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"user": profile}))
}

func (s *Server) handleGetUserByHandle(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.GetByHandle(r.Context(), mux.Vars(r)["handle"], parseInclude(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"user": profile}))
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	followeeID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	created, err := s.users.Follow(r.Context(), viewerID(r.Context()), followeeID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"created": created}))
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	followeeID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.users.Unfollow(r.Context(), viewerID(r.Context()), followeeID); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(nil))
}

func (s *Server) handleListFollowers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ids, err := s.users.ListFollowers(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"follower_ids": ids}))
}

func (s *Server) handleListFollowing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	ids, err := s.users.ListFollowees(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"followee_ids": ids}))
}
