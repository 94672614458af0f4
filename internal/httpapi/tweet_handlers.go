package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"microblog/internal/apperr"
)

func (s *Server) registerTweetRoutes(r *mux.Router) {
	r.HandleFunc("/api/tweets", s.requireAuth(s.handleCreateTweet)).Methods(http.MethodPost)
	r.HandleFunc("/api/tweets", s.requireAuth(s.handleFeed)).Methods(http.MethodGet)
	r.HandleFunc("/api/tweets/{id:[0-9]+}", s.handleGetTweet).Methods(http.MethodGet)
	r.HandleFunc("/api/tweets/{id:[0-9]+}", s.requireAuth(s.handleDeleteTweet)).Methods(http.MethodDelete)
	r.HandleFunc("/api/tweets/{id:[0-9]+}/like", s.requireAuth(s.handleLike)).Methods(http.MethodPost)
	r.HandleFunc("/api/tweets/{id:[0-9]+}/like", s.requireAuth(s.handleUnlike)).Methods(http.MethodDelete)
	r.HandleFunc("/api/tweets/{id:[0-9]+}/likes", s.handleLikeCount).Methods(http.MethodGet)
}

type createTweetRequest struct {
	Content  string  `json:"content"`
	MediaIDs []int64 `json:"media_ids"`
}

func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var req createTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, apperr.Errorf(apperr.EINVALID, "invalid request body"))
		return
	}

	tweet, err := s.feed.CreateTweet(r.Context(), viewerID(r.Context()), req.Content, req.MediaIDs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope(map[string]any{"tweet": tweet}))
}

// handleFeed serves the viewer's ranked home timeline. limit and page
// are optional query parameters; pages are 1-based.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	tweets, err := s.feed.ComposeFeed(r.Context(), viewerID(r.Context()), limit, page)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"tweets": tweets}))
}

func (s *Server) handleGetTweet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	tweet, err := s.feed.GetTweet(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"tweet": tweet}))
}

// handleDeleteTweet deletes the caller's own tweet. A tweet that is
// absent or owned by someone else looks the same from outside: not
// found.
func (s *Server) handleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	deleted, err := s.feed.DeleteTweet(r.Context(), id, viewerID(r.Context()))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !deleted {
		s.respondError(w, r, apperr.Errorf(apperr.ENOTFOUND, "tweet %d not found", id))
		return
	}
	respondJSON(w, http.StatusOK, envelope(nil))
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.feed.AddLike(r.Context(), id, viewerID(r.Context())); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope(nil))
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	removed, err := s.feed.RemoveLike(r.Context(), id, viewerID(r.Context()))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"removed": removed}))
}

func (s *Server) handleLikeCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	count, err := s.feed.CountLikes(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope(map[string]any{"like_count": count}))
}
