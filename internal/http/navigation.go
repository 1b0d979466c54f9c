package http

import (
	"net/http"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/routes"
)

// pageResponse describes the view the browser should render for a path,
// together with the identity driving role-dependent chrome.
type pageResponse struct {
	View     routes.View        `json:"view"`
	Params   map[string]string  `json:"params,omitempty"`
	User     *model.UserProfile `json:"user,omitempty"`
	FullName string             `json:"full_name,omitempty"`
}

// handlePage resolves any page path through the navigation table. The guard
// decides redirect versus view; this handler only serializes the outcome.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sc := sessionFrom(r.Context())

	decision := routes.Resolve(r.URL.Path, sc.store)
	if decision.Redirect != "" {
		http.Redirect(w, r, decision.Redirect, http.StatusFound)
		return
	}

	status := http.StatusOK
	if decision.View == routes.ViewNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, pageResponse{
		View:     decision.View,
		Params:   decision.Params,
		User:     sc.store.User(),
		FullName: sc.store.FullName(),
	})
}
