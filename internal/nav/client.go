package nav

import (
	"context"

	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/apiclient"
	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// clientFallbackItems is the static menu used when the server-driven menu is
// unreachable or empty.
var clientFallbackItems = []domain.MenuItem{
	{Title: "My Pets", Icon: "paw", Action: "pets.list"},
	{Title: "Book Appointment", Icon: "calendar-plus", Action: "appointments.book"},
	{Title: "My Appointments", Icon: "calendar", Action: "appointments.mine"},
	{Title: "Profile", Icon: "user", Action: "profile.edit"},
	{Title: "Toggle Theme", Icon: "moon", Action: "theme.toggle"},
	{Title: "Sign Out", Icon: "log-out", Action: "session.logout"},
}

// ClientNavigator fetches the server-driven client menu and falls back to the
// static set when the fetch fails or yields nothing usable.
type ClientNavigator struct {
	api    *apiclient.Client
	logger *zap.Logger
}

// NewClientNavigator builds the navigator.
func NewClientNavigator(api *apiclient.Client, logger *zap.Logger) *ClientNavigator {
	return &ClientNavigator{api: api, logger: logger}
}

func (n *ClientNavigator) Title() string { return "Client" }

func (n *ClientNavigator) Items(ctx context.Context) []domain.MenuItem {
	var resp struct {
		Items []domain.MenuItem `json:"items"`
	}
	if err := n.api.Get(ctx, "/menu/client", &resp); err != nil {
		n.logger.Debug("dynamic menu unavailable, using fallback", zap.Error(err))
		return fallbackCopy()
	}

	items := resp.Items[:0]
	for _, item := range resp.Items {
		if item.Title == "" || item.Action == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return fallbackCopy()
	}
	return items
}

func fallbackCopy() []domain.MenuItem {
	items := make([]domain.MenuItem, len(clientFallbackItems))
	copy(items, clientFallbackItems)
	return items
}
