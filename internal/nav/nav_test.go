package nav

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/config"
	"github.com/vetdesk-app/vetdesk/internal/domain"
	"github.com/vetdesk-app/vetdesk/internal/observability"
)

func newMenuClient(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return apiclient.New(
		config.APIConfig{BaseURL: srv.URL, RequestTimeoutSeconds: 5},
		zap.NewNop(),
		observability.NewMetrics(),
	)
}

func actions(items []domain.MenuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Action
	}
	return out
}

func TestClientNavigatorDynamicMenu(t *testing.T) {
	api := newMenuClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/menu/client" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []domain.MenuItem{
				{Title: "Mis Mascotas", Icon: "paw", Action: "pets.list"},
				{Title: "Agendar Cita", Icon: "calendar-plus", Action: "appointments.book"},
			},
		})
	}))

	navigator := NewClientNavigator(api, zap.NewNop())
	items := navigator.Items(context.Background())

	if len(items) != 2 {
		t.Fatalf("items = %v", actions(items))
	}
	if items[0].Title != "Mis Mascotas" || items[1].Action != "appointments.book" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestClientNavigatorFiltersMalformedEntries(t *testing.T) {
	api := newMenuClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []domain.MenuItem{
				{Title: "", Icon: "x", Action: "broken.title"},
				{Title: "No Action", Icon: "x", Action: ""},
				{Title: "Mis Mascotas", Icon: "paw", Action: "pets.list"},
			},
		})
	}))

	navigator := NewClientNavigator(api, zap.NewNop())
	items := navigator.Items(context.Background())

	if len(items) != 1 || items[0].Action != "pets.list" {
		t.Fatalf("items = %v", actions(items))
	}
}

func TestClientNavigatorFallbackOnError(t *testing.T) {
	api := newMenuClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	navigator := NewClientNavigator(api, zap.NewNop())
	items := navigator.Items(context.Background())

	if len(items) != len(clientFallbackItems) {
		t.Fatalf("fallback expected, got %v", actions(items))
	}
	if items[0].Action != "pets.list" {
		t.Fatalf("items = %v", actions(items))
	}
}

func TestClientNavigatorFallbackOnEmptyMenu(t *testing.T) {
	api := newMenuClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []domain.MenuItem{}})
	}))

	navigator := NewClientNavigator(api, zap.NewNop())
	items := navigator.Items(context.Background())

	if len(items) != len(clientFallbackItems) {
		t.Fatalf("fallback expected, got %v", actions(items))
	}
}

func TestClientNavigatorFallbackIsACopy(t *testing.T) {
	api := newMenuClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	navigator := NewClientNavigator(api, zap.NewNop())
	items := navigator.Items(context.Background())
	items[0].Title = "mutated"

	if clientFallbackItems[0].Title == "mutated" {
		t.Fatal("fallback slice must not alias the package default")
	}
}

func TestStaticNavigators(t *testing.T) {
	tests := []struct {
		name       string
		navigator  Navigator
		wantAction string
	}{
		{"vet", NewVetNavigator(), "appointments.vet"},
		{"clinic admin", NewClinicAdminNavigator(), "users.manage"},
		{"super admin", NewSuperAdminNavigator(), "clinics.manage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := tt.navigator.Items(context.Background())
			if len(items) == 0 {
				t.Fatal("static navigator must always yield items")
			}
			found := false
			for _, item := range items {
				if item.Action == tt.wantAction {
					found = true
				}
				if item.Title == "" || item.Action == "" {
					t.Fatalf("malformed static item: %+v", item)
				}
			}
			if !found {
				t.Fatalf("action %q missing from %v", tt.wantAction, actions(items))
			}
		})
	}
}
