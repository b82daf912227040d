package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZevWepster/eventpage/internal/domain"
	"github.com/ZevWepster/eventpage/internal/gateway"
	"github.com/ZevWepster/eventpage/internal/notify"
)

var errNotLoaded = errors.New("detail page has no loaded event")

// BeginEdit seeds the edit draft from the loaded event. The category slice
// is defensively copied and never nil, even when the stored record lacks
// one entirely.
func (d *DetailController) BeginEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateReady {
		return errNotLoaded
	}
	d.draft = d.event.Clone()
	if d.draft.CategoryIDs == nil {
		d.draft.CategoryIDs = []domain.CategoryID{}
	}
	d.editing = true
	return nil
}

func (d *DetailController) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = false
}

func (d *DetailController) IsEditing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editing
}

// SetDraft replaces the edit draft, mirroring controlled inputs.
func (d *DetailController) SetDraft(e domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = e
}

func (d *DetailController) Draft() domain.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft.Clone()
}

// SubmitEdit deduplicates the draft's category ids and issues the update,
// keyed by the loaded event's id. Success swaps in the server's returned
// representation and exits edit mode; failure keeps the draft and the modal.
func (d *DetailController) SubmitEdit(ctx context.Context) (domain.Event, error) {
	d.mu.Lock()
	if !d.editing {
		d.mu.Unlock()
		return domain.Event{}, errors.New("not in edit mode")
	}
	payload := d.draft.Clone()
	eventID := d.event.ID
	d.mu.Unlock()

	payload.CategoryIDs = domain.DedupCategoryIDs(payload.CategoryIDs)
	payload.ID = eventID

	updated, err := d.gw.UpdateEvent(ctx, eventID, payload)
	if err != nil {
		d.notifyFailure("Error.", "There was an error updating the event.", err)
		return domain.Event{}, err
	}

	d.store.Replace(updated)

	d.mu.Lock()
	d.event = updated
	d.editing = false
	d.mu.Unlock()

	d.notifier.Notify(notify.Notification{
		Title:  "Event updated.",
		Detail: "The event details have been successfully updated.",
		Status: notify.StatusSuccess,
	})
	return updated, nil
}

// RequestDelete opens the confirmation dialog; nothing is sent yet.
func (d *DetailController) RequestDelete() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateReady {
		return errNotLoaded
	}
	d.confirming = true
	return nil
}

func (d *DetailController) CancelDelete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirming = false
}

func (d *DetailController) IsConfirmingDelete() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.confirming
}

// ConfirmDelete issues the delete after the two-step gesture. It returns
// true when the caller should navigate away from the detail view; on
// failure the view and the open dialog stay put.
func (d *DetailController) ConfirmDelete(ctx context.Context) (bool, error) {
	d.mu.Lock()
	if !d.confirming {
		d.mu.Unlock()
		return false, errors.New("delete was not confirmed")
	}
	eventID := d.event.ID
	d.mu.Unlock()

	if err := d.gw.DeleteEvent(ctx, eventID); err != nil {
		d.notifyFailure("Error.", "There was an error deleting the event.", err)
		return false, err
	}

	d.store.Remove(eventID)

	d.mu.Lock()
	d.confirming = false
	d.mu.Unlock()

	d.notifier.Notify(notify.Notification{
		Title:  "Event deleted.",
		Detail: "The event has been successfully deleted.",
		Status: notify.StatusSuccess,
	})
	return true, nil
}

func (d *DetailController) notifyFailure(title, detail string, err error) {
	var se *gateway.StatusError
	if errors.As(err, &se) {
		detail = fmt.Sprintf("%s (%d %s)", detail, se.Code, se.Status)
	} else if gateway.IsUnreachable(err) {
		detail = detail + " (network error)"
	}
	d.notifier.Notify(notify.Notification{
		Title:  title,
		Detail: detail,
		Status: notify.StatusError,
	})
}
