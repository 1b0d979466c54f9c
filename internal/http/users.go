package http

import (
	"net/http"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
)

func (s *Server) handleAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.client(r).AllUsers(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, map[string][]model.User{"users": users})
}

func (s *Server) handleApprovedUsers(w http.ResponseWriter, r *http.Request) {
	filters := model.UserFilters{
		SchoolName: r.URL.Query().Get("school_name"),
		IsAdmin:    boolQuery(r, "is_admin"),
		IsActive:   boolQuery(r, "is_active"),
	}

	ctx, done := s.begin(r, "users.approved")
	defer done()

	page, err := s.client(r).ApprovedUsers(ctx, listOptions(r), filters)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handlePendingUsers(w http.ResponseWriter, r *http.Request) {
	ctx, done := s.begin(r, "users.pending")
	defer done()

	page, err := s.client(r).PendingUsers(ctx, listOptions(r), r.URL.Query().Get("school_name"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	user, err := s.client(r).User(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req model.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := s.client(r).UpdateUser(r.Context(), id, req); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Utente aggiornato"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	if err := s.client(r).DeleteUser(r.Context(), id); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Utente eliminato"})
}

func (s *Server) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var req struct {
		IsApproved bool `json:"is_approved"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	resp, err := s.client(r).ApproveUser(r.Context(), id, req.IsApproved)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetViewMode(w http.ResponseWriter, r *http.Request) {
	mode := s.prefs(r).ViewMode(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"view_mode": string(mode)})
}

func (s *Server) handleSetViewMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ViewMode string `json:"view_mode"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	mode := model.ParseViewMode(req.ViewMode)
	if err := s.prefs(r).SetViewMode(r.Context(), mode); err != nil {
		writeError(w, http.StatusInternalServerError, "preference_store_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"view_mode": string(mode)})
}

func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.notifier(sessionFrom(r.Context()).id).Current())
}

func (s *Server) handleHideNotification(w http.ResponseWriter, r *http.Request) {
	center := s.notifier(sessionFrom(r.Context()).id)
	center.Hide()
	writeJSON(w, http.StatusOK, center.Current())
}
