package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	"github.com/vetdesk-app/vetdesk/internal/tokenstore"
	apperrors "github.com/vetdesk-app/vetdesk/pkg/util"
)

// Snapshot is an immutable view of the session handed to the router on every
// state change. Token non-empty iff the user counts as authenticated.
type Snapshot struct {
	User    *domain.User
	Token   string
	Loading bool
}

// Result is the non-throwing outcome of login and register. Callers branch on
// Success, never on error values.
type Result struct {
	Success     bool
	User        *domain.User
	Message     string
	FieldErrors map[string]string
}

// RegisterPayload carries the client self-registration form.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type authResponse struct {
	Token    string       `json:"token"`
	User     *domain.User `json:"user"`
	ClinicID string       `json:"clinic_id"`
}

// Manager owns the {user, token, loading} triple, the persisted credential
// and the 401 interception. All mutation funnels through setSession/clearState
// so the reentrancy guard stays coherent.
type Manager struct {
	api    *apiclient.Client
	store  tokenstore.Store
	logger *zap.Logger
	events *dispatcher

	mu       sync.Mutex
	user     *domain.User
	token    string
	loading  bool
	expiring bool
}

// NewManager wires the manager and installs the single 401 hook on the
// shared client.
func NewManager(api *apiclient.Client, store tokenstore.Store, logger *zap.Logger) *Manager {
	m := &Manager{
		api:     api,
		store:   store,
		logger:  logger,
		events:  newDispatcher(),
		loading: true,
	}
	api.SetUnauthorizedHook(m.handleUnauthorized)
	return m
}

// Subscribe registers a handler for session lifecycle events.
func (m *Manager) Subscribe(eventType EventType, handler EventHandler) {
	m.events.subscribe(eventType, handler)
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	var user *domain.User
	if m.user != nil {
		copied := *m.user
		user = &copied
	}
	return Snapshot{User: user, Token: m.token, Loading: m.loading}
}

// LoadToken performs the silent session reload at startup: read the persisted
// credential, install it, confirm it against the profile endpoint. Any failure
// degrades to a clean logged-out state. The loading flag is always cleared on
// exit.
func (m *Manager) LoadToken(ctx context.Context) {
	defer m.finishLoading()

	token, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNotFound) {
			m.logger.Warn("token store unreadable", zap.Error(err))
		}
		return
	}

	if expired, expErr := tokenExpired(token, time.Now()); expErr == nil && expired {
		m.logger.Info("persisted token expired, discarding")
		m.Logout(ctx)
		return
	}

	m.api.SetToken(token)

	user, err := m.fetchProfile(ctx)
	if err != nil {
		m.logger.Info("silent reload failed, clearing session", zap.Error(err))
		m.Logout(ctx)
		return
	}

	m.setSession(token, user, false)
}

// Login authenticates against the backend and persists the credential.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	payload := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := m.api.Post(ctx, "/auth/login", payload, &resp); err != nil {
		return resultFromError(err)
	}
	if resp.Token == "" || resp.User == nil {
		return Result{Success: false, Message: "malformed login response"}
	}
	if resp.User.ClinicID == "" {
		resp.User.ClinicID = resp.ClinicID
	}

	if err := m.store.Save(resp.Token); err != nil {
		m.logger.Warn("persisting token failed", zap.Error(err))
	}
	m.setSession(resp.Token, resp.User, true)
	return Result{Success: true, User: resp.User}
}

// Register creates a client account. Field-level validation errors from the
// backend pass through untouched in FieldErrors.
func (m *Manager) Register(ctx context.Context, payload RegisterPayload) Result {
	var resp authResponse
	if err := m.api.Post(ctx, "/auth/register", payload, &resp); err != nil {
		return resultFromError(err)
	}
	if resp.Token == "" || resp.User == nil {
		return Result{Success: false, Message: "malformed register response"}
	}
	if resp.User.ClinicID == "" {
		resp.User.ClinicID = resp.ClinicID
	}

	if err := m.store.Save(resp.Token); err != nil {
		m.logger.Warn("persisting token failed", zap.Error(err))
	}
	m.setSession(resp.Token, resp.User, true)
	return Result{Success: true, User: resp.User}
}

// Logout tears the session down. The backend notification is best effort;
// local state is cleared unconditionally. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	if m.api.Token() != "" {
		if err := m.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
			m.logger.Debug("logout notification failed", zap.Error(err))
		}
	}

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing token store failed", zap.Error(err))
	}
	m.api.ClearToken()

	m.mu.Lock()
	hadSession := m.token != "" || m.user != nil
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	if hadSession {
		m.events.publish(Event{Type: EventSessionCleared, Timestamp: time.Now()})
	}
}

// UpdateUser shallow-merges a profile patch into the in-memory user without a
// network round-trip.
func (m *Manager) UpdateUser(patch domain.UserPatch) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	m.user.Apply(patch)
	copied := *m.user
	m.mu.Unlock()

	m.events.publish(Event{Type: EventUserUpdated, User: &copied, Timestamp: time.Now()})
}

// handleUnauthorized is the 401 interceptor. The expiring flag guarantees at
// most one forced logout per expiry episode, however many in-flight requests
// observed the dead token. The flag resets on the next successful session-set.
func (m *Manager) handleUnauthorized() {
	m.mu.Lock()
	if m.token == "" || m.expiring {
		m.mu.Unlock()
		return
	}
	m.expiring = true
	m.mu.Unlock()

	m.logger.Info("session expired, forcing logout")
	m.events.publish(Event{Type: EventSessionExpired, Timestamp: time.Now()})
	m.Logout(context.Background())
}

func (m *Manager) setSession(token string, user *domain.User, publish bool) {
	m.api.SetToken(token)

	m.mu.Lock()
	m.token = token
	m.user = user
	m.loading = false
	m.expiring = false
	m.mu.Unlock()

	if publish {
		copied := *user
		m.events.publish(Event{Type: EventSessionStarted, User: &copied, Timestamp: time.Now()})
	}
}

func (m *Manager) finishLoading() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// fetchProfile retrieves the current identity. The endpoint historically
// answers either {"user": {...}} or the bare user object; both decode.
func (m *Manager) fetchProfile(ctx context.Context) (*domain.User, error) {
	var raw json.RawMessage
	if err := m.api.Get(ctx, "/auth/me", &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil && envelope.User.Email != "" {
		return envelope.User, nil
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	if user.Email == "" && user.ID == "" {
		return nil, errors.New("session: empty profile response")
	}
	return &user, nil
}

// tokenExpired inspects the JWT expiry claim without verifying the signature;
// only the backend can verify, this just avoids a doomed round-trip.
func tokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, err
	}
	return exp.Before(now), nil
}

func resultFromError(err error) Result {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		fieldErrors := make(map[string]string, len(domainErr.Details))
		for field, value := range domainErr.Details {
			if msg, ok := value.(string); ok {
				fieldErrors[field] = msg
			}
		}
		return Result{Success: false, Message: domainErr.Message, FieldErrors: fieldErrors}
	}
	return Result{Success: false, Message: err.Error()}
}
