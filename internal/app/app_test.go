package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZevWepster/eventpage/internal/config"
	"github.com/ZevWepster/eventpage/internal/domain"
)

type stubGateway struct {
	events []domain.Event
	err    error
}

func (s *stubGateway) ListEvents(context.Context) ([]domain.Event, error) {
	return s.events, s.err
}
func (s *stubGateway) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "1", Name: "sports"}}, s.err
}
func (s *stubGateway) ListUsers(context.Context) ([]domain.User, error) { return nil, s.err }
func (s *stubGateway) CreateEvent(_ context.Context, e domain.Event) (domain.Event, error) {
	return e, s.err
}
func (s *stubGateway) UpdateEvent(_ context.Context, _ domain.ID, e domain.Event) (domain.Event, error) {
	return e, s.err
}
func (s *stubGateway) DeleteEvent(context.Context, domain.ID) error { return s.err }

func testConfig() config.Config {
	return config.Config{
		GatewayURL:     "http://localhost:3001",
		BindAddress:    "127.0.0.1:0",
		RequestTimeout: time.Second,
		LogLevel:       "info",
	}
}

func TestPopulateFromGateway(t *testing.T) {
	gw := &stubGateway{events: []domain.Event{{ID: "1", Title: "Yoga"}}}
	a := New(testConfig(), gw, nil)
	a.populate(context.Background())
	if got := len(a.Store().Events()); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}
	if got := len(a.Store().Categories()); got != 1 {
		t.Fatalf("expected 1 category, got %d", got)
	}
}

func TestPopulateGatewayFailureStartsEmpty(t *testing.T) {
	gw := &stubGateway{err: errors.New("down")}
	a := New(testConfig(), gw, nil)
	a.populate(context.Background())
	if got := len(a.Store().Events()); got != 0 {
		t.Fatalf("expected empty store, got %d events", got)
	}
}

func TestPopulateFromSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	blob := `{"events":[{"id":1,"title":"Yoga"},{"id":2,"title":"Pottery"}],"categories":[],"users":[]}`
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.SeedPath = path
	a := New(cfg, &stubGateway{err: errors.New("gateway must not be consulted")}, nil)
	a.populate(context.Background())
	if got := len(a.Store().Events()); got != 2 {
		t.Fatalf("expected 2 seeded events, got %d", got)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a := New(testConfig(), &stubGateway{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
