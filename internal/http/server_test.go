package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/api"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/config"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/storage"
)

// fakeBackend stands in for the Flask API: one admin and one plain account,
// plus the endpoints the gateway proxies in these tests.
func fakeBackend(t *testing.T) *httptest.Server {
	return fakeBackendWithSlotDelay(t, 0)
}

// fakeBackendWithSlotDelay answers slot listings only after the given delay,
// to keep requests in flight while another session issues its own.
func fakeBackendWithSlotDelay(t *testing.T, slotDelay time.Duration) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/security/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if password != "segreto" {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Credenziali non valide"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-" + username,
			"user": map[string]any{
				"email":      username,
				"first_name": "Anna",
				"last_name":  "Rossi",
				"is_admin":   strings.HasPrefix(username, "admin"),
			},
		})
	})
	mux.HandleFunc("/api/security/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("/api/slots/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Token mancante"})
			return
		}
		if slotDelay > 0 {
			time.Sleep(slotDelay)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"slots": []any{}, "total": 0})
	})
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)
	return backend
}

func newGateway(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		BackendURL:     backendURL,
		SessionSecret:  "test-secret",
		SessionTTL:     time.Hour,
		RequestTimeout: 5 * time.Second,
	}
	server := NewServer(cfg, storage.NewMemory(), api.New(cfg.BackendURL, nil, cfg.RequestTimeout))
	gateway := httptest.NewServer(server.Router())
	t.Cleanup(gateway.Close)
	return gateway
}

// noRedirect inspects redirects instead of following them.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func login(t *testing.T, gateway *httptest.Server, username string) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {"segreto"}}
	resp, err := noRedirect.Post(gateway.URL+"/login", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login returned %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("login redirected to %q, want /", loc)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login set no session cookie")
	return nil
}

func get(t *testing.T, gateway *httptest.Server, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, gateway.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func decodePage(t *testing.T, resp *http.Response) pageResponse {
	t.Helper()
	defer resp.Body.Close()
	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)

	resp := get(t, gateway, "/", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("got %d → %q, want 302 → /login", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)

	form := url.Values{"username": {"anna"}, "password": {"sbagliata"}}
	resp, err := noRedirect.Post(gateway.URL+"/login", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bad credentials returned %d, want 403", resp.StatusCode)
	}
}

func TestHomeVariesByRole(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)

	adminCookie := login(t, gateway, "admin@promtec.ch")
	page := decodePage(t, get(t, gateway, "/", adminCookie))
	if page.View != "admin/slots" {
		t.Fatalf("admin home view = %q", page.View)
	}
	if page.User == nil || !page.User.IsAdmin {
		t.Fatalf("admin page carries no admin user: %+v", page.User)
	}
	if page.FullName != "Anna Rossi" {
		t.Fatalf("unexpected full name %q", page.FullName)
	}

	userCookie := login(t, gateway, "docente@scuola.ch")
	page = decodePage(t, get(t, gateway, "/", userCookie))
	if page.View != "user/home" {
		t.Fatalf("user home view = %q", page.View)
	}
}

func TestNonAdminIsBouncedFromUsersPage(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	resp := get(t, gateway, "/users", cookie)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("got %d → %q, want 302 → /", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestAuthenticatedLoginPageBouncesHome(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	resp := get(t, gateway, "/login", cookie)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("got %d → %q, want 302 → /", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	req, _ := http.NewRequest(http.MethodPost, gateway.URL+"/logout", nil)
	req.AddCookie(cookie)
	resp, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("got %d → %q, want 303 → /login", resp.StatusCode, resp.Header.Get("Location"))
	}

	// The old cookie still parses but its session state is gone.
	after := get(t, gateway, "/", cookie)
	defer after.Body.Close()
	if after.StatusCode != http.StatusFound || after.Header.Get("Location") != "/login" {
		t.Fatalf("stale cookie got %d → %q, want 302 → /login", after.StatusCode, after.Header.Get("Location"))
	}
}

func TestPartialsRequireAuthentication(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)

	resp := get(t, gateway, "/partials/slots", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous partials got %d, want 401", resp.StatusCode)
	}
}

func TestAdminPartialsRejectPlainUsers(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	resp := get(t, gateway, "/partials/users", cookie)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("plain user on admin partial got %d, want 403", resp.StatusCode)
	}
}

func TestSlotListingCarriesSessionToken(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	resp := get(t, gateway, "/partials/slots", cookie)
	defer resp.Body.Close()
	// The fake backend rejects the call unless the gateway forwarded the
	// bearer token stored at login.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("slot listing got %d, want 200", resp.StatusCode)
	}
}

func TestConcurrentSessionsListIndependently(t *testing.T) {
	gateway := newGateway(t, fakeBackendWithSlotDelay(t, 150*time.Millisecond).URL)
	alice := login(t, gateway, "alice@scuola.ch")
	bob := login(t, gateway, "bob@scuola.ch")

	// Both listings stay in flight at the same time; neither session may
	// cancel the other's request.
	var wg sync.WaitGroup
	codes := make([]int, 2)
	errs := make([]error, 2)
	for i, cookie := range []*http.Cookie{alice, bob} {
		wg.Add(1)
		go func(i int, cookie *http.Cookie) {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodGet, gateway.URL+"/partials/slots", nil)
			if err != nil {
				errs[i] = err
				return
			}
			req.AddCookie(cookie)
			resp, err := noRedirect.Do(req)
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i, cookie)
	}
	wg.Wait()

	for i := range codes {
		if errs[i] != nil {
			t.Fatalf("session %d listing failed: %v", i, errs[i])
		}
		if codes[i] != http.StatusOK {
			t.Fatalf("session %d listing got %d, want 200", i, codes[i])
		}
	}
}

func TestUnknownPageIsNotFound(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	resp := get(t, gateway, "/no/such/page", cookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown page got %d, want 404", resp.StatusCode)
	}
	page := decodePage(t, resp)
	if page.View != "not-found" {
		t.Fatalf("unknown page view = %q", page.View)
	}
}

func TestViewModePreferenceRoundTrip(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)
	cookie := login(t, gateway, "docente@scuola.ch")

	req, _ := http.NewRequest(http.MethodPut, gateway.URL+"/partials/preferences/view-mode",
		strings.NewReader(`{"view_mode":"list"}`))
	req.AddCookie(cookie)
	resp, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("set view mode failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set view mode got %d, want 200", resp.StatusCode)
	}

	out := get(t, gateway, "/partials/preferences/view-mode", cookie)
	defer out.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(out.Body).Decode(&body); err != nil {
		t.Fatalf("decode view mode: %v", err)
	}
	if body["view_mode"] != "list" {
		t.Fatalf("view mode = %q, want list", body["view_mode"])
	}
}

func readNotification(t *testing.T, gateway *httptest.Server, cookie *http.Cookie) (bool, string) {
	t.Helper()
	resp := get(t, gateway, "/partials/notification", cookie)
	defer resp.Body.Close()
	var current struct {
		Visible bool   `json:"visible"`
		Title   string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		t.Fatalf("decode notification: %v", err)
	}
	return current.Visible, current.Title
}

func TestNotificationIsPerSession(t *testing.T) {
	gateway := newGateway(t, fakeBackend(t).URL)

	alice := login(t, gateway, "alice@scuola.ch")
	if visible, title := readNotification(t, gateway, alice); !visible || title != "Accesso effettuato" {
		t.Fatalf("expected visible login notification, got visible=%v title=%q", visible, title)
	}

	req, _ := http.NewRequest(http.MethodPost, gateway.URL+"/partials/notification/hide", nil)
	req.AddCookie(alice)
	hide, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	hide.Body.Close()
	if visible, _ := readNotification(t, gateway, alice); visible {
		t.Fatal("notification still visible after hide")
	}

	// A second session's login toast must not resurface in the first.
	bob := login(t, gateway, "bob@scuola.ch")
	if visible, _ := readNotification(t, gateway, bob); !visible {
		t.Fatal("second session missing its own login notification")
	}
	if visible, _ := readNotification(t, gateway, alice); visible {
		t.Fatal("first session sees another session's notification")
	}
}
