package vimeo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
		WithRetry(1, 0),
	}, opts...)
	client, err := NewClient("secret", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(" "); err == nil {
		t.Fatal("expected error for blank token")
	}
}

func TestPublishDate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/76979871" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"created_time":"2013-10-28T23:59:30+00:00"}`))
	})

	date, err := client.PublishDate(context.Background(), 76979871)
	if err != nil {
		t.Fatalf("publish date: %v", err)
	}
	if date != "2013-10-28" {
		t.Fatalf("date = %q, want 2013-10-28", date)
	}
}

func TestPublishDateNormalizesToUTC(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"created_time":"2020-01-01T01:30:00+03:00"}`))
	})
	date, err := client.PublishDate(context.Background(), 1)
	if err != nil {
		t.Fatalf("publish date: %v", err)
	}
	if date != "2019-12-31" {
		t.Fatalf("date = %q, want 2019-12-31", date)
	}
}

func TestPublishDateRetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"created_time":"2021-05-05T10:00:00Z"}`))
	})

	date, err := client.PublishDate(context.Background(), 5)
	if err != nil {
		t.Fatalf("publish date: %v", err)
	}
	if date != "2021-05-05" || calls.Load() != 2 {
		t.Fatalf("date = %q calls = %d", date, calls.Load())
	}
}

func TestPublishDateGivesUpAfterRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.PublishDate(context.Background(), 5)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("error = %v, want %v", err, ErrRateLimited)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestPublishDateReportsAPIErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"The requested video couldn't be found."}`))
	})

	_, err := client.PublishDate(context.Background(), 9)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.VideoID != 9 {
		t.Fatalf("api error = %+v", apiErr)
	}
}

func TestPublishDateRejectsBadPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"created_time":"yesterday"}`))
	})
	if _, err := client.PublishDate(context.Background(), 3); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPublishDateRejectsNonPositiveID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("unexpected request")
	})
	if _, err := client.PublishDate(context.Background(), 0); err == nil {
		t.Fatal("expected error")
	}
}
