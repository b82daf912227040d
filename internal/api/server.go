// Package api exposes the dashboard operations over a local HTTP surface.
// Presentation (rendering, routing, toasts) lives on the other side of it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ZevWepster/eventpage/internal/domain"
	"github.com/ZevWepster/eventpage/internal/form"
	"github.com/ZevWepster/eventpage/internal/gateway"
	"github.com/ZevWepster/eventpage/internal/metrics"
	"github.com/ZevWepster/eventpage/internal/notify"
	"github.com/ZevWepster/eventpage/internal/security"
	"github.com/ZevWepster/eventpage/internal/store"
)

type Server struct {
	gw       form.Gateway
	store    *store.Store
	create   *form.CreateController
	notifier notify.Notifier
	auth     security.BearerAuth
	metrics  *metrics.Metrics
	log      *slog.Logger
	httpSrv  *http.Server
}

type Options struct {
	Gateway  form.Gateway
	Store    *store.Store
	Notifier notify.Notifier
	Auth     security.BearerAuth
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{Log: logger}
	}
	s := &Server{
		gw:       opts.Gateway,
		store:    opts.Store,
		notifier: notifier,
		auth:     opts.Auth,
		metrics:  opts.Metrics,
		log:      logger,
	}
	s.create = form.NewCreateController(s.gw, s.store, s.notifier)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/events/get", s.handleEventDetail)
	mux.HandleFunc("/v1/events/update", s.handleUpdateEvent)
	mux.HandleFunc("/v1/events/delete", s.handleDeleteEvent)
	mux.HandleFunc("/v1/search", s.handleSearch)
	mux.HandleFunc("/v1/filter", s.handleFilter)
	mux.HandleFunc("/v1/reset", s.handleReset)
	mux.HandleFunc("/v1/suggest", s.handleSuggest)
	mux.HandleFunc("/v1/categories", s.handleCategories)
	mux.HandleFunc("/v1/users", s.handleUsers)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	s.httpSrv = &http.Server{Handler: s.wrap(mux), ReadHeaderTimeout: 5 * time.Second}
	return s
}

func (s *Server) ServeTCP(ctx context.Context, bind string) error {
	if bind == "" {
		return errors.New("bind required")
	}
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	go s.shutdownOnContext(ctx)
	return s.httpSrv.Serve(ln)
}

func (s *Server) ServeUnix(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("socket path required")
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return err
	}
	go s.shutdownOnContext(ctx)
	return s.httpSrv.Serve(ln)
}

// wrap adds bearer auth, a per-request correlation id and request metrics.
func (s *Server) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" && !s.auth.Authorize(r) {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(rec.status/100)+"xx")
		s.log.Debug("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"dur", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) shutdownOnContext(ctx context.Context) {
	<-ctx.Done()
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(timeout)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type viewResponse struct {
	Events []domain.Event   `json:"events"`
	Query  store.QueryState `json:"query"`
}

func (s *Server) view() viewResponse {
	return viewResponse{Events: s.store.View(), Query: s.store.State()}
}

// handleEvents serves the current derived view on GET and creates an event
// through the form controller on POST.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.view())
	case http.MethodPost:
		var draft domain.EventDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json")
			return
		}
		s.create.SetDraft(draft)
		created, err := s.create.Submit(r.Context())
		s.metrics.ObserveMutation("create", err)
		if err != nil {
			writeGatewayErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type detailResponse struct {
	Event      domain.Event      `json:"event"`
	Categories []domain.Category `json:"categories"`
	Creator    *domain.User      `json:"creator,omitempty"`
}

// handleEventDetail runs the detail-page load: three concurrent gateway
// fetches and an id scan. Not-found and fetch failure are terminal per
// navigation, so they map straight to 404 and 502.
func (s *Server) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeErr(w, http.StatusBadRequest, "id required")
		return
	}
	ctrl := form.NewDetailController(s.gw, s.store, s.notifier, domain.ID(id))
	switch ctrl.Load(r.Context()) {
	case form.StateReady:
		resp := detailResponse{Event: ctrl.Event(), Categories: ctrl.Categories()}
		if creator, ok := ctrl.Creator(); ok {
			resp.Creator = &creator
		}
		writeJSON(w, http.StatusOK, resp)
	case form.StateNotFound:
		writeErr(w, http.StatusNotFound, "event not found")
	default:
		writeErr(w, http.StatusBadGateway, "failed to fetch data")
	}
}

type mutationRequest struct {
	EventID string       `json:"eventId"`
	Event   domain.Event `json:"event"`
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	s.withLoadedDetail(w, r, "update", func(ctx context.Context, ctrl *form.DetailController, payload mutationRequest) (any, error) {
		if err := ctrl.BeginEdit(); err != nil {
			return nil, err
		}
		ctrl.SetDraft(payload.Event)
		return ctrl.SubmitEdit(ctx)
	})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	s.withLoadedDetail(w, r, "delete", func(ctx context.Context, ctrl *form.DetailController, payload mutationRequest) (any, error) {
		if err := ctrl.RequestDelete(); err != nil {
			return nil, err
		}
		if _, err := ctrl.ConfirmDelete(ctx); err != nil {
			return nil, err
		}
		return map[string]string{"eventId": payload.EventID}, nil
	})
}

func (s *Server) withLoadedDetail(w http.ResponseWriter, r *http.Request, kind string, run func(context.Context, *form.DetailController, mutationRequest) (any, error)) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if payload.EventID == "" {
		writeErr(w, http.StatusBadRequest, "eventId required")
		return
	}
	ctrl := form.NewDetailController(s.gw, s.store, s.notifier, domain.ID(payload.EventID))
	switch ctrl.Load(r.Context()) {
	case form.StateReady:
	case form.StateNotFound:
		writeErr(w, http.StatusNotFound, "event not found")
		return
	default:
		writeErr(w, http.StatusBadGateway, "failed to fetch data")
		return
	}
	out, err := run(r.Context(), ctrl, payload)
	s.metrics.ObserveMutation(kind, err)
	if err != nil {
		writeGatewayErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload searchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.store.SetSearch(payload.Query)
	s.metrics.ObserveSearch()
	writeJSON(w, http.StatusOK, s.view())
}

type filterRequest struct {
	CategoryID string `json:"categoryId"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload filterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.store.SetCategoryFilter(payload.CategoryID)
	s.metrics.ObserveSearch()
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.store.ResetFilters()
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Suggest(r.URL.Query().Get("q")))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	categories, err := s.gw.ListCategories(r.Context())
	if err != nil {
		writeGatewayErr(w, err)
		return
	}
	s.store.SetCategories(categories)
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	users, err := s.gw.ListUsers(r.Context())
	if err != nil {
		writeGatewayErr(w, err)
		return
	}
	s.store.SetUsers(users)
	writeJSON(w, http.StatusOK, users)
}

func writeGatewayErr(w http.ResponseWriter, err error) {
	if errors.Is(err, gateway.ErrNotFound) {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	if gateway.IsServerRejected(err) || gateway.IsUnreachable(err) {
		writeErr(w, http.StatusBadGateway, err.Error())
		return
	}
	writeErr(w, http.StatusBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
