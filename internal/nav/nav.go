package nav

import (
	"context"

	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// Navigator declares the menu a role lands on after login. Implementations
// are cheap value objects; the client one additionally talks to the backend.
type Navigator interface {
	Title() string
	Items(ctx context.Context) []domain.MenuItem
}

// staticNavigator serves a fixed menu.
type staticNavigator struct {
	title string
	items []domain.MenuItem
}

func (n staticNavigator) Title() string { return n.title }

func (n staticNavigator) Items(context.Context) []domain.MenuItem {
	items := make([]domain.MenuItem, len(n.items))
	copy(items, n.items)
	return items
}
