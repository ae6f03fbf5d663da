package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/config"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	"github.com/vetdesk-app/vetdesk/internal/observability"
	"github.com/vetdesk-app/vetdesk/internal/tokenstore"
)

// backend is a scripted replacement for the stub API. Handlers are registered
// per method+path; everything else 404s.
type backend struct {
	mux *http.ServeMux
	srv *httptest.Server

	mu          sync.Mutex
	authHeaders []string
	logoutCalls int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{mux: http.NewServeMux()}
	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)

	b.mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.logoutCalls, 1)
		w.WriteHeader(http.StatusNoContent)
	})
	return b
}

func (b *backend) handle(pattern string, fn http.HandlerFunc) {
	b.mux.HandleFunc(pattern, fn)
}

func (b *backend) recordAuth(r *http.Request) {
	b.mu.Lock()
	b.authHeaders = append(b.authHeaders, r.Header.Get("Authorization"))
	b.mu.Unlock()
}

func (b *backend) lastAuthHeader() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.authHeaders) == 0 {
		return ""
	}
	return b.authHeaders[len(b.authHeaders)-1]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestManager(b *backend) (*Manager, *apiclient.Client, *tokenstore.MemoryStore) {
	api := apiclient.New(
		config.APIConfig{BaseURL: b.srv.URL, RequestTimeoutSeconds: 5},
		zap.NewNop(),
		observability.NewMetrics(),
	)
	store := tokenstore.NewMemoryStore()
	return NewManager(api, store, zap.NewNop()), api, store
}

func testUser() *domain.User {
	return &domain.User{ID: "u-1", Name: "Maria", Email: "maria@example.com", Role: "cliente"}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginPersistsTokenAndAttachesBearer(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-123", "user": testUser()})
	})
	b.handle("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.recordAuth(r)
		writeJSON(w, http.StatusOK, map[string]any{"user": testUser()})
	})

	m, api, store := newTestManager(b)

	result := m.Login(context.Background(), "maria@example.com", "password123")
	if !result.Success {
		t.Fatalf("login failed: %+v", result)
	}
	if result.User == nil || result.User.Email != "maria@example.com" {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	if persisted, err := store.Load(); err != nil || persisted != "tok-123" {
		t.Fatalf("store.Load() = %q, %v; want tok-123", persisted, err)
	}

	snapshot := m.Snapshot()
	if snapshot.Token != "tok-123" || snapshot.User == nil || snapshot.Loading {
		t.Fatalf("bad snapshot after login: %+v", snapshot)
	}

	// next request must carry the fresh credential
	if err := api.Get(context.Background(), "/auth/me", nil); err != nil {
		t.Fatalf("follow-up request: %v", err)
	}
	if got := b.lastAuthHeader(); got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", got)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"code": "UNAUTHORIZED", "message": "invalid credentials"},
		})
	})

	m, _, store := newTestManager(b)

	result := m.Login(context.Background(), "maria@example.com", "wrong")
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Message != "invalid credentials" {
		t.Fatalf("message = %q", result.Message)
	}
	if _, err := store.Load(); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("store must stay empty, got %v", err)
	}
	if snapshot := m.Snapshot(); snapshot.User != nil || snapshot.Token != "" {
		t.Fatalf("session must stay logged out: %+v", snapshot)
	}
	// a 401 on login itself must not count as an expiry episode
	if calls := atomic.LoadInt32(&b.logoutCalls); calls != 0 {
		t.Fatalf("logout notifications = %d, want 0", calls)
	}
}

func TestRegisterFieldErrors(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]any{
				"code":    "VALIDATION_ERROR",
				"message": "validation failed",
				"details": map[string]string{"email": "already registered", "password": "too short"},
			},
		})
	})

	m, _, _ := newTestManager(b)

	result := m.Register(context.Background(), RegisterPayload{Name: "X", Email: "dupe@example.com", Password: "p"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.FieldErrors["email"] != "already registered" {
		t.Fatalf("field errors = %v", result.FieldErrors)
	}
	if result.FieldErrors["password"] != "too short" {
		t.Fatalf("field errors = %v", result.FieldErrors)
	}
}

func TestRegisterSuccessStartsSession(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"token": "tok-new", "user": testUser()})
	})

	m, _, store := newTestManager(b)

	var started int32
	m.Subscribe(EventSessionStarted, func(Event) { atomic.AddInt32(&started, 1) })

	result := m.Register(context.Background(), RegisterPayload{Name: "Maria", Email: "maria@example.com", Password: "password123"})
	if !result.Success {
		t.Fatalf("register failed: %+v", result)
	}
	if persisted, _ := store.Load(); persisted != "tok-new" {
		t.Fatalf("persisted = %q", persisted)
	}
	if atomic.LoadInt32(&started) != 1 {
		t.Fatal("session started event not published")
	}
}

func TestLoadTokenRestoresSession(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.recordAuth(r)
		writeJSON(w, http.StatusOK, map[string]any{"user": testUser()})
	})

	m, _, store := newTestManager(b)
	_ = store.Save("tok-persisted")

	if snapshot := m.Snapshot(); !snapshot.Loading {
		t.Fatal("manager must start in loading state")
	}

	m.LoadToken(context.Background())

	snapshot := m.Snapshot()
	if snapshot.Loading {
		t.Fatal("loading must clear after LoadToken")
	}
	if snapshot.Token != "tok-persisted" || snapshot.User == nil {
		t.Fatalf("session not restored: %+v", snapshot)
	}
	if got := b.lastAuthHeader(); got != "Bearer tok-persisted" {
		t.Fatalf("profile fetched with %q", got)
	}
}

func TestLoadTokenRejectedTokenDegradesToLoggedOut(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"code": "UNAUTHORIZED", "message": "token revoked"},
		})
	})

	m, api, store := newTestManager(b)
	_ = store.Save("tok-stale")

	m.LoadToken(context.Background())

	snapshot := m.Snapshot()
	if snapshot.Loading || snapshot.User != nil || snapshot.Token != "" {
		t.Fatalf("expected clean logged-out state, got %+v", snapshot)
	}
	if _, err := store.Load(); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("stale token must be cleared, got %v", err)
	}
	if api.Token() != "" {
		t.Fatal("client credential must be cleared")
	}
}

func TestLoadTokenSkipsExpiredWithoutRoundTrip(t *testing.T) {
	b := newBackend(t)
	var meCalls int32
	b.handle("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		writeJSON(w, http.StatusOK, map[string]any{"user": testUser()})
	})

	m, _, store := newTestManager(b)
	_ = store.Save(signedToken(t, time.Now().Add(-time.Hour)))

	m.LoadToken(context.Background())

	if atomic.LoadInt32(&meCalls) != 0 {
		t.Fatal("expired token must not hit the profile endpoint")
	}
	if snapshot := m.Snapshot(); snapshot.User != nil || snapshot.Token != "" || snapshot.Loading {
		t.Fatalf("expected logged-out state, got %+v", snapshot)
	}
	if _, err := store.Load(); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("expired token must be purged, got %v", err)
	}
}

func TestLoadTokenEmptyStore(t *testing.T) {
	b := newBackend(t)
	m, _, _ := newTestManager(b)

	m.LoadToken(context.Background())

	snapshot := m.Snapshot()
	if snapshot.Loading || snapshot.User != nil || snapshot.Token != "" {
		t.Fatalf("expected public state, got %+v", snapshot)
	}
}

// Concurrent 401s must collapse into exactly one forced logout.
func TestConcurrentUnauthorizedSingleLogout(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-123", "user": testUser()})
	})
	b.handle("GET /pets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"code": "UNAUTHORIZED", "message": "token expired"},
		})
	})

	m, api, _ := newTestManager(b)

	var expiredEvents int32
	m.Subscribe(EventSessionExpired, func(Event) { atomic.AddInt32(&expiredEvents, 1) })

	if result := m.Login(context.Background(), "maria@example.com", "password123"); !result.Success {
		t.Fatalf("login failed: %+v", result)
	}

	const inflight = 16
	var wg sync.WaitGroup
	wg.Add(inflight)
	for i := 0; i < inflight; i++ {
		go func() {
			defer wg.Done()
			_ = api.Get(context.Background(), "/pets", nil)
		}()
	}
	wg.Wait()

	if calls := atomic.LoadInt32(&b.logoutCalls); calls != 1 {
		t.Fatalf("logout notifications = %d, want exactly 1", calls)
	}
	if events := atomic.LoadInt32(&expiredEvents); events != 1 {
		t.Fatalf("expired events = %d, want exactly 1", events)
	}
	if snapshot := m.Snapshot(); snapshot.User != nil || snapshot.Token != "" {
		t.Fatalf("session must be cleared: %+v", snapshot)
	}
}

// A fresh login after a forced logout re-arms the interceptor.
func TestGuardResetsAfterRelogin(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-123", "user": testUser()})
	})
	b.handle("GET /pets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"code": "UNAUTHORIZED", "message": "token expired"},
		})
	})

	m, api, _ := newTestManager(b)

	for episode := 1; episode <= 2; episode++ {
		if result := m.Login(context.Background(), "maria@example.com", "password123"); !result.Success {
			t.Fatalf("login %d failed: %+v", episode, result)
		}
		_ = api.Get(context.Background(), "/pets", nil)

		if calls := atomic.LoadInt32(&b.logoutCalls); calls != int32(episode) {
			t.Fatalf("after episode %d logout notifications = %d", episode, calls)
		}
	}
}

func TestLogoutClearsStateWhenBackendFails(t *testing.T) {
	// this backend refuses the logout notification; the default counting
	// handler from newBackend is deliberately not used here
	failing := &backend{mux: http.NewServeMux()}
	failing.srv = httptest.NewServer(failing.mux)
	t.Cleanup(failing.srv.Close)
	failing.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-123", "user": testUser()})
	})
	failing.mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": map[string]any{"code": "INTERNAL", "message": "boom"},
		})
	})

	m, api, store := newTestManager(failing)

	var cleared int32
	m.Subscribe(EventSessionCleared, func(Event) { atomic.AddInt32(&cleared, 1) })

	if result := m.Login(context.Background(), "maria@example.com", "password123"); !result.Success {
		t.Fatalf("login failed: %+v", result)
	}

	m.Logout(context.Background())

	if snapshot := m.Snapshot(); snapshot.User != nil || snapshot.Token != "" {
		t.Fatalf("local state must clear despite backend failure: %+v", snapshot)
	}
	if _, err := store.Load(); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("store must be cleared, got %v", err)
	}
	if api.Token() != "" {
		t.Fatal("client credential must be cleared")
	}
	if atomic.LoadInt32(&cleared) != 1 {
		t.Fatal("cleared event not published")
	}

	// second logout is a no-op with no extra event
	m.Logout(context.Background())
	if atomic.LoadInt32(&cleared) != 1 {
		t.Fatal("repeated logout must not republish")
	}
}

func TestUpdateUserShallowMerge(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-123", "user": testUser()})
	})

	m, _, _ := newTestManager(b)

	var updated int32
	m.Subscribe(EventUserUpdated, func(e Event) {
		if e.User != nil && e.User.Name == "Maria G." {
			atomic.AddInt32(&updated, 1)
		}
	})

	if result := m.Login(context.Background(), "maria@example.com", "password123"); !result.Success {
		t.Fatalf("login failed: %+v", result)
	}

	name := "Maria G."
	m.UpdateUser(domain.UserPatch{Name: &name})

	snapshot := m.Snapshot()
	if snapshot.User.Name != "Maria G." {
		t.Fatalf("name = %q", snapshot.User.Name)
	}
	if snapshot.User.Email != "maria@example.com" {
		t.Fatalf("untouched field changed: %q", snapshot.User.Email)
	}
	if atomic.LoadInt32(&updated) != 1 {
		t.Fatal("user updated event not published")
	}
}

func TestUpdateUserWithoutSessionIsNoop(t *testing.T) {
	b := newBackend(t)
	m, _, _ := newTestManager(b)

	name := "Ghost"
	m.UpdateUser(domain.UserPatch{Name: &name})

	if snapshot := m.Snapshot(); snapshot.User != nil {
		t.Fatalf("no user expected, got %+v", snapshot.User)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	expired, err := tokenExpired(signedToken(t, now.Add(-time.Minute)), now)
	if err != nil || !expired {
		t.Fatalf("past exp: expired=%v err=%v", expired, err)
	}

	expired, err = tokenExpired(signedToken(t, now.Add(time.Hour)), now)
	if err != nil || expired {
		t.Fatalf("future exp: expired=%v err=%v", expired, err)
	}

	if _, err := tokenExpired("not-a-jwt", now); err == nil {
		t.Fatal("garbage token must error")
	}
}
