package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ZevWepster/eventpage/internal/domain"
	"github.com/ZevWepster/eventpage/internal/gateway"
	"github.com/ZevWepster/eventpage/internal/notify"
	"github.com/ZevWepster/eventpage/internal/store"
)

// CreateController manages the add-event draft. The draft lives until a
// submit succeeds; a rejected or failed submit leaves it untouched.
type CreateController struct {
	gw       Gateway
	store    *store.Store
	notifier notify.Notifier
	ids      *IDGenerator

	mu    sync.Mutex
	open  bool
	draft domain.EventDraft
}

func NewCreateController(gw Gateway, st *store.Store, n notify.Notifier) *CreateController {
	if n == nil {
		n = notify.Noop{}
	}
	return &CreateController{gw: gw, store: st, notifier: n, ids: NewIDGenerator()}
}

// Open raises the input surface.
func (c *CreateController) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
}

// Cancel closes the surface and discards the draft.
func (c *CreateController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.draft = domain.EventDraft{}
}

func (c *CreateController) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetDraft replaces the whole draft, mirroring controlled form inputs.
func (c *CreateController) SetDraft(d domain.EventDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

func (c *CreateController) Draft() domain.EventDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit coerces the selected category ids to unique integers, assigns a
// client-generated id and posts the event. On success the server's returned
// record is appended to the store, the draft is reset and the surface
// closes. On any failure the draft stays as it was.
func (c *CreateController) Submit(ctx context.Context) (domain.Event, error) {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	categoryIDs, err := draft.CategorySet()
	if err != nil {
		c.notifier.Notify(notify.Notification{
			Title:  "Error adding event",
			Detail: err.Error(),
			Status: notify.StatusError,
		})
		return domain.Event{}, err
	}

	candidate := domain.Event{
		ID:          domain.ID(c.ids.Next()),
		Title:       draft.Title,
		Description: draft.Description,
		Image:       draft.Image,
		Location:    draft.Location,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		CategoryIDs: categoryIDs,
	}

	created, err := c.gw.CreateEvent(ctx, candidate)
	if err != nil {
		c.notifySubmitFailure(err)
		return domain.Event{}, err
	}

	c.store.Append(created)

	c.mu.Lock()
	c.draft = domain.EventDraft{}
	c.open = false
	c.mu.Unlock()

	c.notifier.Notify(notify.Notification{
		Title:  "Event added successfully!",
		Status: notify.StatusSuccess,
	})
	return created, nil
}

// notifySubmitFailure words the toast by failure class: a rejected request
// quotes the status line, an unreachable gateway gets the network wording.
func (c *CreateController) notifySubmitFailure(err error) {
	var se *gateway.StatusError
	if errors.As(err, &se) {
		c.notifier.Notify(notify.Notification{
			Title:  "Error adding event",
			Detail: fmt.Sprintf("Error: %d %s", se.Code, se.Status),
			Status: notify.StatusError,
		})
		return
	}
	c.notifier.Notify(notify.Notification{
		Title:  "Network error",
		Detail: "Unable to reach the server.",
		Status: notify.StatusError,
	})
}
