package routes

import "testing"

type fakeSession struct {
	authed bool
	admin  bool
}

func (s fakeSession) IsAuthenticated() bool { return s.authed }
func (s fakeSession) IsAdmin() bool         { return s.admin }

var (
	anonymous = fakeSession{}
	user      = fakeSession{authed: true}
	admin     = fakeSession{authed: true, admin: true}
)

func TestAnonymousIsBouncedToLogin(t *testing.T) {
	for _, path := range []string{"/", "/users", "/slot/4", "/contact"} {
		d := Resolve(path, anonymous)
		if d.Allow || d.Redirect != "/login" {
			t.Fatalf("Resolve(%q, anonymous) = %+v, want redirect to /login", path, d)
		}
	}
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	cases := map[string]View{
		"/logout":                ViewLogout,
		"/signup":                ViewSignup,
		"/forgot-password":       ViewForgotPassword,
		"/reset-password/abc123": ViewResetPassword,
		"/login":                 ViewLogin,
		"/no/such/page":          ViewNotFound,
	}
	for path, want := range cases {
		d := Resolve(path, anonymous)
		if !d.Allow || d.View != want {
			t.Fatalf("Resolve(%q, anonymous) = %+v, want view %q", path, d, want)
		}
	}
}

func TestNonAdminIsBouncedHome(t *testing.T) {
	d := Resolve("/users", user)
	if d.Allow || d.Redirect != "/" {
		t.Fatalf("Resolve(/users, user) = %+v, want redirect to /", d)
	}
	d = Resolve("/users", admin)
	if !d.Allow || d.View != ViewAdminUsers {
		t.Fatalf("Resolve(/users, admin) = %+v, want admin users view", d)
	}
}

func TestAuthenticatedLoginBouncesHome(t *testing.T) {
	for _, s := range []fakeSession{user, admin} {
		d := Resolve("/login", s)
		if d.Allow || d.Redirect != "/" {
			t.Fatalf("Resolve(/login, %+v) = %+v, want redirect to /", s, d)
		}
	}
}

func TestRoleVariantViews(t *testing.T) {
	if d := Resolve("/", user); d.View != ViewUserHome {
		t.Fatalf("home for user = %+v", d)
	}
	if d := Resolve("/", admin); d.View != ViewAdminSlots {
		t.Fatalf("home for admin = %+v", d)
	}
	if d := Resolve("/slot/12", user); d.View != ViewUserSlot || d.Params["id"] != "12" {
		t.Fatalf("slot for user = %+v", d)
	}
	if d := Resolve("/slot/12", admin); d.View != ViewAdminSlot || d.Params["id"] != "12" {
		t.Fatalf("slot for admin = %+v", d)
	}
}

func TestResetTokenParamIsCaptured(t *testing.T) {
	d := Resolve("/reset-password/deadbeef", anonymous)
	if !d.Allow || d.Params["token"] != "deadbeef" {
		t.Fatalf("Resolve reset-password = %+v", d)
	}
}

func TestUnknownDepthFallsThroughToNotFound(t *testing.T) {
	for _, path := range []string{"/slot", "/slot/1/extra", "/reset-password"} {
		d := Resolve(path, admin)
		if !d.Allow || d.View != ViewNotFound {
			t.Fatalf("Resolve(%q) = %+v, want not-found", path, d)
		}
	}
}
