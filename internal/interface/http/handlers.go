package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/filmhub/filmhub/internal/application/command"
	"github.com/filmhub/filmhub/internal/application/query"
	"github.com/filmhub/filmhub/internal/domain/film"
	"github.com/filmhub/filmhub/internal/domain/shared"
)

// defaultPopularCount is used when the count query parameter is omitted.
const defaultPopularCount = 10

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST / RESPONSE TYPES
// ══════════════════════════════════════════════════════════════════════════════

type userRequest struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	Login    string      `json:"login"`
	Name     string      `json:"name"`
	Birthday shared.Date `json:"birthday"`
}

type filmRequest struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ReleaseDate shared.Date  `json:"releaseDate"`
	Duration    int          `json:"duration"`
	Genres      []film.Genre `json:"genres"`
	Mpa         film.Mpa     `json:"mpa"`
}

type likeResponse struct {
	FilmID    int64 `json:"filmId"`
	UserID    int64 `json:"userId"`
	LikeCount int   `json:"likeCount"`
}

type friendResponse struct {
	UserID   int64 `json:"userId"`
	FriendID int64 `json:"friendId"`
	Mutual   bool  `json:"mutual"`
}

type healthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string `json:"components,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// decodeJSON decodes the request body, rejecting malformed payloads.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return false
	}
	return true
}

// pathID extracts a positive numeric path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// ══════════════════════════════════════════════════════════════════════════════
// USER HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.CreateUser.Handle(r.Context(), command.CreateUserCommand{
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: req.Birthday,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result.User)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.UpdateUser.Handle(r.Context(), command.UpdateUserCommand{
		ID:       req.ID,
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: req.Birthday,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.User)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListUsers.Handle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.GetUser.Handle(r.Context(), query.GetUserQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.User)
}

// ══════════════════════════════════════════════════════════════════════════════
// FRIENDSHIP HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(w, r, "friendId")
	if !ok {
		return
	}

	result, err := s.deps.AddFriend.Handle(r.Context(), command.AddFriendCommand{
		UserID:   userID,
		FriendID: friendID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendResponse{
		UserID:   result.UserID,
		FriendID: result.FriendID,
		Mutual:   result.Mutual,
	})
}

func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(w, r, "friendId")
	if !ok {
		return
	}

	result, err := s.deps.RemoveFriend.Handle(r.Context(), command.RemoveFriendCommand{
		UserID:   userID,
		FriendID: friendID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friendResponse{
		UserID:   result.UserID,
		FriendID: result.FriendID,
	})
}

func (s *Server) handleGetFriends(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.GetFriends.Handle(r.Context(), query.GetFriendsQuery{UserID: id})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Friends)
}

func (s *Server) handleGetCommonFriends(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(w, r, "otherId")
	if !ok {
		return
	}

	result, err := s.deps.GetCommonFriends.Handle(r.Context(), query.GetCommonFriendsQuery{
		UserID:  id,
		OtherID: otherID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Friends)
}

// ══════════════════════════════════════════════════════════════════════════════
// FILM HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleCreateFilm(w http.ResponseWriter, r *http.Request) {
	var req filmRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.CreateFilm.Handle(r.Context(), command.CreateFilmCommand{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Duration:    req.Duration,
		Genres:      req.Genres,
		Mpa:         req.Mpa,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result.Film)
}

func (s *Server) handleUpdateFilm(w http.ResponseWriter, r *http.Request) {
	var req filmRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.UpdateFilm.Handle(r.Context(), command.UpdateFilmCommand{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Duration:    req.Duration,
		Genres:      req.Genres,
		Mpa:         req.Mpa,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Film)
}

func (s *Server) handleListFilms(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListFilms.Handle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Films)
}

func (s *Server) handleGetFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.GetFilm.Handle(r.Context(), query.GetFilmQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Film)
}

func (s *Server) handleGetPopularFilms(w http.ResponseWriter, r *http.Request) {
	count := defaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "count must be an integer")
			return
		}
		count = parsed
	}

	result, err := s.deps.GetPopularFilms.Handle(r.Context(), query.GetPopularFilmsQuery{Count: count})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Films)
}

// ══════════════════════════════════════════════════════════════════════════════
// LIKE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleAddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	result, err := s.deps.AddLike.Handle(r.Context(), command.AddLikeCommand{
		FilmID: filmID,
		UserID: userID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{
		FilmID:    result.FilmID,
		UserID:    result.UserID,
		LikeCount: result.LikeCount,
	})
}

func (s *Server) handleRemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	result, err := s.deps.RemoveLike.Handle(r.Context(), command.RemoveLikeCommand{
		FilmID: filmID,
		UserID: userID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{
		FilmID:    result.FilmID,
		UserID:    result.UserID,
		LikeCount: result.LikeCount,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Catalog.ListGenres(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Genres)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.Catalog.GetGenre(r.Context(), query.GetGenreQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Genre)
}

func (s *Server) handleListMpa(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Catalog.ListMpa(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Ratings)
}

func (s *Server) handleGetMpa(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.Catalog.GetMpa(r.Context(), query.GetMpaQuery{ID: id})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Mpa)
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH HANDLER
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if len(s.deps.HealthCheckers) > 0 {
		resp.Components = make(map[string]string, len(s.deps.HealthCheckers))
		for name, checker := range s.deps.HealthCheckers {
			if err := checker.Ping(r.Context()); err != nil {
				resp.Components[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			} else {
				resp.Components[name] = "up"
			}
		}
	}

	writeJSON(w, status, resp)
}
