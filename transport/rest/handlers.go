package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rocketscienceinc/gridtictactoe/internal/entity"
	"github.com/rocketscienceinc/gridtictactoe/internal/pkg"
)

const (
	sessionCookieName = "user_session"
	sessionCookieTTL  = 24 * time.Hour
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sessionID := that.session(w, r)

	game, err := that.game.GetOrCreateGame(r.Context(), sessionID)
	that.respondGame(w, "GetGame", game, err)
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(r.PathValue("cell"))
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell must be an integer"})
		return
	}

	sessionID := that.session(w, r)

	game, err := that.game.MakeTurn(r.Context(), sessionID, cell)
	that.respondGame(w, "Move", game, err)
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := that.session(w, r)

	game, err := that.game.Reset(r.Context(), sessionID)
	that.respondGame(w, "Reset", game, err)
}

func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err = that.game.EndSession(r.Context(), cookie.Value); err != nil {
		that.logger.Error("failed to end session", "method", "EndSession", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) respondGame(w http.ResponseWriter, method string, game *entity.Game, err error) {
	if err != nil {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

// session returns the caller's session id, issuing a new cookie when the
// request carries none.
func (that *Server) session(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:     sessionCookieName,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(sessionCookieTTL),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
	that.logger.Debug("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
