// Package http serves the browser-facing side of the Promtec gateway: page
// navigation with its access policy, the authentication flow, and the data
// endpoints backing each view. All domain decisions stay in the backend; this
// layer translates between browser sessions and bearer-token API calls.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/api"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/config"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/notify"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/prefs"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/session"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/storage"
)

type Server struct {
	cfg config.Config
	kv  storage.KV
	api *api.Client
	ops *api.Group

	mu     sync.Mutex
	toasts map[string]*notify.Center
}

func NewServer(cfg config.Config, kv storage.KV, client *api.Client) *Server {
	return &Server{
		cfg:    cfg,
		kv:     kv,
		api:    client,
		ops:    api.NewGroup(),
		toasts: make(map[string]*notify.Center),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withSession)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Post("/signup", s.handleSignup)
	r.Post("/forgot-password", s.handleForgotPassword)
	r.Post("/reset-password/{token}", s.handleResetPassword)

	r.Route("/partials", func(r chi.Router) {
		r.Get("/reset-token/{token}", s.handleVerifyResetToken)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/slots", s.handleListSlots)
			r.Get("/slots/{id}", s.handleGetSlot)
			r.Get("/slots/{id}/enrollments", s.handleListEnrollments)
			r.Post("/slots/{id}/enrollments", s.handleCreateEnrollment)
			r.Delete("/enrollments/{id}", s.handleDeleteEnrollment)
			r.Put("/enrollments/{id}/waiting-list", s.handleSetWaitingList)
			r.Put("/students/{id}", s.handleUpdateStudent)

			r.Get("/slot-enums", s.handleSlotEnums)
			r.Get("/available-dates", s.handleAvailableDates)
			r.Get("/organization-info", s.handleOrganizationInfo)
			r.Get("/schools", s.handleListSchools)

			r.Get("/preferences/view-mode", s.handleGetViewMode)
			r.Put("/preferences/view-mode", s.handleSetViewMode)
			r.Get("/notification", s.handleGetNotification)
			r.Post("/notification/hide", s.handleHideNotification)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth, s.requireAdmin)

			r.Post("/slots", s.handleCreateSlot)
			r.Put("/slots/{id}", s.handleUpdateSlot)
			r.Delete("/slots/{id}", s.handleDeleteSlot)
			r.Post("/slots/{id}/confirm", s.handleConfirmSlot)
			r.Get("/slots/{id}/letters", s.handleGenerateLetters)
			r.Post("/schools", s.handleCreateSchool)

			r.Get("/users", s.handleAllUsers)
			r.Get("/users/approved", s.handleApprovedUsers)
			r.Get("/users/pending", s.handlePendingUsers)
			r.Get("/users/{id}", s.handleGetUser)
			r.Put("/users/{id}", s.handleUpdateUser)
			r.Delete("/users/{id}", s.handleDeleteUser)
			r.Post("/users/{id}/approve", s.handleApproveUser)
		})
	})

	r.Get("/*", s.handlePage)

	return r
}

// sessionContext carries the per-request session and its id. Anonymous
// requests have an empty id and a storage-less session.
type sessionContext struct {
	id    string
	store *session.Store
}

type sessionKey struct{}

func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := sessionContext{store: session.Anonymous()}
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if sid, err := parseSessionCookie(s.cfg.SessionSecret, cookie.Value); err == nil {
				sc.id = sid
				sc.store = session.New(s.kv, "session:"+sid)
				sc.store.Load(r.Context())
			}
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) sessionContext {
	sc, ok := ctx.Value(sessionKey{}).(sessionContext)
	if !ok {
		return sessionContext{store: session.Anonymous()}
	}
	return sc
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r.Context()).store.IsAuthenticated() {
			writeError(w, http.StatusUnauthorized, "authentication_required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r.Context()).store.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin_only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// client binds the shared API client to the request's session token.
func (s *Server) client(r *http.Request) *api.Client {
	return s.api.WithTokens(sessionFrom(r.Context()).store)
}

// begin scopes the supersession key to the request's session: a refresh only
// ever cancels that same user's previous request, never another session's.
func (s *Server) begin(r *http.Request, op string) (context.Context, context.CancelFunc) {
	sid := sessionFrom(r.Context()).id
	return s.ops.Begin(r.Context(), sid+":"+op)
}

// notifier returns the notification center for one session, creating it on
// first use.
func (s *Server) notifier(sid string) *notify.Center {
	s.mu.Lock()
	defer s.mu.Unlock()
	center, ok := s.toasts[sid]
	if !ok {
		center = notify.NewCenter()
		s.toasts[sid] = center
	}
	return center
}

func (s *Server) dropNotifier(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if center, ok := s.toasts[sid]; ok {
		center.Hide()
		delete(s.toasts, sid)
	}
}

func (s *Server) prefs(r *http.Request) *prefs.Store {
	return prefs.New(s.kv, "prefs:"+sessionFrom(r.Context()).id+":view_mode")
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

func listOptions(r *http.Request) api.ListOptions {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return api.ListOptions{
		Page:      page,
		PerPage:   perPage,
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Search:    q.Get("search"),
	}
}

func decodeBody(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeAPIError maps the tagged client errors onto gateway responses:
// validation failures carry their message, backend rejections pass through
// with their status, anything else is a bad gateway.
func writeAPIError(w http.ResponseWriter, err error) {
	var vErr *api.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   vErr.Code,
			"message": vErr.Message,
		})
		return
	}
	var aErr *api.APIError
	if errors.As(err, &aErr) {
		code := aErr.Code
		if code == "" {
			code = "backend_error"
		}
		writeJSON(w, aErr.Status, map[string]string{
			"error":   code,
			"message": aErr.Message,
		})
		return
	}
	writeError(w, http.StatusBadGateway, "backend_unreachable")
}
