package form

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ZevWepster/eventpage/internal/domain"
	"github.com/ZevWepster/eventpage/internal/notify"
	"github.com/ZevWepster/eventpage/internal/store"
)

// ViewState is the detail page's lifecycle. NotFound and Failed are
// terminal: the page offers no retry, the user navigates back.
type ViewState string

const (
	StateLoading  ViewState = "loading"
	StateReady    ViewState = "ready"
	StateNotFound ViewState = "not_found"
	StateFailed   ViewState = "failed"
)

// DetailController backs one detail page: resolving the routed event id,
// the edit modal and the two-step delete confirmation.
type DetailController struct {
	gw       Gateway
	store    *store.Store
	notifier notify.Notifier

	mu         sync.Mutex
	eventID    domain.ID
	state      ViewState
	event      domain.Event
	categories []domain.Category
	users      []domain.User

	editing    bool
	draft      domain.Event
	confirming bool
}

func NewDetailController(gw Gateway, st *store.Store, n notify.Notifier, eventID domain.ID) *DetailController {
	if n == nil {
		n = notify.Noop{}
	}
	return &DetailController{gw: gw, store: st, notifier: n, eventID: eventID, state: StateLoading}
}

// Load fetches events, categories and users concurrently and resolves the
// routed id against the events. Any failed fetch, or an id with no match,
// lands the page in a terminal state.
func (d *DetailController) Load(ctx context.Context) ViewState {
	var (
		events     []domain.Event
		categories []domain.Category
		users      []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = d.gw.ListEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = d.gw.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = d.gw.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.mu.Lock()
		d.state = StateFailed
		d.mu.Unlock()
		return StateFailed
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.categories = categories
	d.users = users
	for _, e := range events {
		if e.ID.String() == d.eventID.String() {
			d.event = e
			d.state = StateReady
			return d.state
		}
	}
	d.state = StateNotFound
	return d.state
}

func (d *DetailController) State() ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *DetailController) Event() domain.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.event.Clone()
}

func (d *DetailController) Categories() []domain.Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Category(nil), d.categories...)
}

// Creator resolves the event's creator against the users collection, again
// with string-normalized ids. Events without a creator simply report none.
func (d *DetailController) Creator() (domain.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.event.CreatedBy == "" {
		return domain.User{}, false
	}
	for _, u := range d.users {
		if u.ID.String() == d.event.CreatedBy.String() {
			return u, true
		}
	}
	return domain.User{}, false
}
