// Package routes holds the navigation table and the access policy applied
// before any page is served. Resolution never fails: every request ends in
// either a view or a redirect.
package routes

import (
	"log"
	"strings"
)

// View names a renderable page. Routes whose page differs by role carry an
// explicit admin/user pair instead of branching inside the page itself.
type View string

const (
	ViewLogin          View = "login"
	ViewLogout         View = "logout"
	ViewSignup         View = "signup"
	ViewForgotPassword View = "forgot-password"
	ViewResetPassword  View = "reset-password"
	ViewAdminSlots     View = "admin/slots"
	ViewUserHome       View = "user/home"
	ViewAdminUsers     View = "admin/users"
	ViewAdminSlot      View = "admin/slot-details"
	ViewUserSlot       View = "user/slot"
	ViewUserContact    View = "user/contact"
	ViewNotFound       View = "not-found"
)

// Session is the authentication state the guard consults. The zero check
// order matters: admin implies authenticated.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Route is one entry of the navigation table. Exactly one of View or the
// AdminView/UserView pair is set.
type Route struct {
	Name          string
	Pattern       string
	Public        bool
	RequiresAuth  bool
	RequiresAdmin bool

	View      View
	AdminView View
	UserView  View
}

func (r Route) viewFor(s Session) View {
	if r.View != "" {
		return r.View
	}
	if s.IsAdmin() {
		return r.AdminView
	}
	return r.UserView
}

// Table is the full navigation table. Order matters only for the catch-all,
// which must stay last.
var Table = []Route{
	{Name: "home", Pattern: "/", RequiresAuth: true, AdminView: ViewAdminSlots, UserView: ViewUserHome},
	{Name: "login", Pattern: "/login", Public: true, View: ViewLogin},
	{Name: "logout", Pattern: "/logout", Public: true, View: ViewLogout},
	{Name: "signup", Pattern: "/signup", Public: true, View: ViewSignup},
	{Name: "forgot-password", Pattern: "/forgot-password", Public: true, View: ViewForgotPassword},
	{Name: "reset-password", Pattern: "/reset-password/:token", Public: true, View: ViewResetPassword},
	{Name: "users", Pattern: "/users", RequiresAuth: true, RequiresAdmin: true, View: ViewAdminUsers},
	{Name: "slot-details", Pattern: "/slot/:id", RequiresAuth: true, AdminView: ViewAdminSlot, UserView: ViewUserSlot},
	{Name: "contact", Pattern: "/contact", RequiresAuth: true, View: ViewUserContact},
	{Name: "not-found", Pattern: "/*", Public: true, View: ViewNotFound},
}

// Decision is the outcome of resolving a path: either a view to render or a
// location to redirect to, never both.
type Decision struct {
	Allow    bool
	View     View
	Params   map[string]string
	Redirect string
}

// Resolve matches path against the table and applies the access policy in a
// fixed order: authentication first, then admin role, then the login page
// bounce for already-authenticated sessions.
func Resolve(path string, s Session) Decision {
	route, params := match(path)

	if route.RequiresAuth && !s.IsAuthenticated() {
		return Decision{Redirect: "/login"}
	}
	if route.RequiresAdmin && !s.IsAdmin() {
		log.Printf("routes: denied %s to non-admin session", path)
		return Decision{Redirect: "/"}
	}
	if route.Name == "login" && s.IsAuthenticated() {
		return Decision{Redirect: "/"}
	}
	return Decision{Allow: true, View: route.viewFor(s), Params: params}
}

// match walks the table and returns the first pattern that covers path.
// The trailing catch-all guarantees a hit.
func match(path string) (Route, map[string]string) {
	segments := split(path)
	for _, route := range Table {
		if params, ok := matchPattern(route.Pattern, segments); ok {
			return route, params
		}
	}
	last := Table[len(Table)-1]
	return last, nil
}

func matchPattern(pattern string, segments []string) (map[string]string, bool) {
	if pattern == "/*" {
		return nil, true
	}
	want := split(pattern)
	if len(want) != len(segments) {
		return nil, false
	}
	var params map[string]string
	for i, part := range want {
		if strings.HasPrefix(part, ":") {
			if segments[i] == "" {
				return nil, false
			}
			if params == nil {
				params = map[string]string{}
			}
			params[part[1:]] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
