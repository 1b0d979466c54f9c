package http

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/notify"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/session"
)

// handleLogin exchanges the posted credentials for a backend token, persists
// the session under a fresh id and hands the browser a signed session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	result, err := s.api.Login(r.Context(), email, password)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	sid := uuid.NewString()
	sess := session.New(s.kv, "session:"+sid)
	if err := sess.SetAuth(r.Context(), result.Token, result.User); err != nil {
		log.Printf("http: session persist failed: %v", err)
		writeError(w, http.StatusInternalServerError, "session_store_failed")
		return
	}

	value, err := issueSessionCookie(s.cfg.SessionSecret, sid, s.cfg.SessionTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_cookie_failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.notifier(sid).Show("Accesso effettuato", "Benvenuto "+result.User.FirstName, model.SeveritySuccess, notify.DefaultDuration)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout invalidates the backend token best-effort, then always clears
// the local session and drops the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sc := sessionFrom(r.Context())
	if sc.store.IsAuthenticated() {
		if err := s.client(r).Logout(r.Context()); err != nil {
			log.Printf("http: backend logout failed: %v", err)
		}
	}
	if err := sc.store.ClearAuth(r.Context()); err != nil {
		log.Printf("http: session clear failed: %v", err)
	}
	s.dropNotifier(sc.id)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	message, err := s.api.Signup(r.Context(), req)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": message})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	message, err := s.api.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleVerifyResetToken(w http.ResponseWriter, r *http.Request) {
	check := s.api.VerifyResetToken(r.Context(), chi.URLParam(r, "token"))
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	message, err := s.api.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
