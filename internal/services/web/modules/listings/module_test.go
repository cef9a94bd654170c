package listings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/lastro/internal/services/web/module"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
	"github.com/louisbranch/lastro/internal/services/web/views"
)

func mountHandler(t *testing.T, registry *views.Registry) http.Handler {
	t.Helper()
	m, err := New().Mount(module.Dependencies{Views: registry})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if m.Prefix != routepath.ListingsPrefix {
		t.Fatalf("prefix = %q, want %q", m.Prefix, routepath.ListingsPrefix)
	}
	return m.Handler
}

func newRegistry(t *testing.T, fetcher *fakeFetcher) *views.Registry {
	t.Helper()
	registry, err := views.NewRegistry(fetcher, views.WithLogf(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	t.Cleanup(registry.Close)
	return registry
}

func doRequest(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decodeUpdate(t *testing.T, rec *httptest.ResponseRecorder) views.Update {
	t.Helper()
	var update views.Update
	if err := json.NewDecoder(rec.Body).Decode(&update); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	return update
}

func TestModuleID(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "listings" {
		t.Fatalf("ID() = %q, want %q", got, "listings")
	}
}

func TestMountLoadMoreAndUnmount(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	registry := newRegistry(t, fetcher)
	h := mountHandler(t, registry)

	rec := doRequest(t, h, http.MethodPost, routepath.Listings)
	if rec.Code != http.StatusCreated {
		t.Fatalf("mount status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	mounted := decodeUpdate(t, rec)
	if mounted.ViewID == "" {
		t.Fatal("expected view id")
	}
	if len(mounted.Cards) != views.DefaultInitialCount || mounted.Total != views.DefaultInitialCount {
		t.Fatalf("mounted cards = %d total = %d, want %d", len(mounted.Cards), mounted.Total, views.DefaultInitialCount)
	}
	if mounted.PreviousCount != views.DefaultInitialCount {
		t.Fatalf("previousCount = %d, want %d", mounted.PreviousCount, views.DefaultInitialCount)
	}
	if len(mounted.Animations) != 0 {
		t.Fatalf("initial cards must not animate, got %d batches", len(mounted.Animations))
	}

	rec = doRequest(t, h, http.MethodPost, routepath.ListingMore(mounted.ViewID))
	if rec.Code != http.StatusOK {
		t.Fatalf("load more status = %d: %s", rec.Code, rec.Body.String())
	}
	more := decodeUpdate(t, rec)
	if more.Total != 105 || more.PreviousCount != 6 {
		t.Fatalf("total = %d previousCount = %d, want 105 and 6", more.Total, more.PreviousCount)
	}
	if len(more.Cards) != 99 {
		t.Fatalf("new cards = %d, want 99", len(more.Cards))
	}
	if more.Cards[0].Index != 6 {
		t.Fatalf("first new card index = %d, want 6", more.Cards[0].Index)
	}
	if len(more.Animations) != 1 || len(more.Animations[0].Targets) != 99 {
		t.Fatalf("animations = %+v, want one batch of 99 targets", more.Animations)
	}

	rec = doRequest(t, h, http.MethodGet, routepath.Listing(mounted.ViewID))
	if rec.Code != http.StatusOK {
		t.Fatalf("state status = %d", rec.Code)
	}
	var state stateView
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Total != 105 || state.PreviousCount != 6 || state.IsLoadingMore {
		t.Fatalf("state = %+v", state)
	}

	rec = doRequest(t, h, http.MethodDelete, routepath.Listing(mounted.ViewID))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unmount status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if registry.Len() != 0 {
		t.Fatalf("registry len = %d, want 0", registry.Len())
	}

	rec = doRequest(t, h, http.MethodPost, routepath.ListingMore(mounted.ViewID))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("load more after unmount status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestLoadMoreFailureKeepsRecords(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("boom"), failAt: 2}
	h := mountHandler(t, newRegistry(t, fetcher))

	mounted := decodeUpdate(t, doRequest(t, h, http.MethodPost, routepath.Listings))
	rec := doRequest(t, h, http.MethodPost, routepath.ListingMore(mounted.ViewID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	update := decodeUpdate(t, rec)
	if update.Total != views.DefaultInitialCount || len(update.Cards) != 0 || update.IsLoadingMore {
		t.Fatalf("update = %+v, want unchanged listing", update)
	}
}

func TestMountFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, newRegistry(t, &fakeFetcher{err: errors.New("catalog down")}))
	rec := doRequest(t, h, http.MethodPost, routepath.Listings)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if strings.Contains(rec.Body.String(), "catalog down") {
		t.Fatalf("body leaks internal error: %s", rec.Body.String())
	}
}

func TestUnknownViewIsNotFound(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, newRegistry(t, &fakeFetcher{}))
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "state", method: http.MethodGet, path: routepath.Listing("missing")},
		{name: "more", method: http.MethodPost, path: routepath.ListingMore("missing")},
		{name: "delete", method: http.MethodDelete, path: routepath.Listing("missing")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, h, tc.method, tc.path)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
			}
		})
	}
}

func TestNilRegistryIsUnavailable(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, nil)
	rec := doRequest(t, h, http.MethodPost, routepath.Listings)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestWrongMethodIsRejected(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, newRegistry(t, &fakeFetcher{}))
	rec := doRequest(t, h, http.MethodGet, routepath.Listings)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", got, http.MethodPost)
	}
}
