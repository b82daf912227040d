// Package form holds the controllers behind the add-event modal and the
// detail page's edit and delete surfaces. Controllers talk to the gateway,
// mutate the store only on confirmed writes, and announce outcomes through a
// notifier. Draft state survives every failure so the user can retry.
package form

import (
	"context"

	"github.com/ZevWepster/eventpage/internal/domain"
)

// Gateway is the slice of the REST client the controllers need.
type Gateway interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, id domain.ID, e domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id domain.ID) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
