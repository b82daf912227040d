package form_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ZevWepster/eventpage/internal/domain"
	"github.com/ZevWepster/eventpage/internal/gateway"
	"github.com/ZevWepster/eventpage/internal/notify"
)

// fakeGateway is a scriptable form.Gateway. Zero value answers everything
// with empty collections.
type fakeGateway struct {
	events     []domain.Event
	categories []domain.Category
	users      []domain.User

	listErr       error
	categoriesErr error
	usersErr      error
	createErr     error
	updateErr     error
	deleteErr     error

	created []domain.Event
	updated []domain.Event
	deleted []domain.ID
}

func (f *fakeGateway) ListEvents(context.Context) ([]domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeGateway) ListCategories(context.Context) ([]domain.Category, error) {
	return f.categories, f.categoriesErr
}

func (f *fakeGateway) ListUsers(context.Context) ([]domain.User, error) {
	return f.users, f.usersErr
}

func (f *fakeGateway) CreateEvent(_ context.Context, e domain.Event) (domain.Event, error) {
	if f.createErr != nil {
		return domain.Event{}, f.createErr
	}
	f.created = append(f.created, e)
	return e, nil
}

func (f *fakeGateway) UpdateEvent(_ context.Context, _ domain.ID, e domain.Event) (domain.Event, error) {
	if f.updateErr != nil {
		return domain.Event{}, f.updateErr
	}
	f.updated = append(f.updated, e)
	return e, nil
}

func (f *fakeGateway) DeleteEvent(_ context.Context, id domain.ID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// recorder captures notifications in order.
type recorder struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recorder) last() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return notify.Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}

func rejectedErr(code int) error {
	return &gateway.StatusError{Code: code, Status: fmt.Sprintf("%d Some Error", code)}
}

func unreachableErr() error {
	return fmt.Errorf("%w: POST /events: connection refused", gateway.ErrUnreachable)
}

var errPlain = errors.New("plain failure")
