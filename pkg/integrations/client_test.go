package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/contribwall/pkg/cache"
	pkgerrors "github.com/matzehuels/contribwall/pkg/errors"
)

func TestGetJSONDecodesAndParsesLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", `<`+r.Host+`?page=2>; rel="next", <`+r.Host+`?page=4>; rel="last"`)
		w.Write([]byte(`[{"login":"octocat"}]`))
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), 0, map[string]string{"Accept": "application/json"})
	var users []struct {
		Login string `json:"login"`
	}
	hint, err := c.GetJSON(context.Background(), srv.URL, &users)
	if err != nil {
		t.Fatalf("GetJSON error: %v", err)
	}
	if len(users) != 1 || users[0].Login != "octocat" {
		t.Errorf("decoded = %+v, want one octocat", users)
	}
	if hint.Next != 2 || hint.Last != 4 {
		t.Errorf("hint = %+v, want next=2 last=4", hint)
	}
}

func TestGetJSONSendsDefaultHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(nil, 0, map[string]string{"Authorization": "Bearer tok"})
	var v struct{}
	if _, err := c.GetJSON(context.Background(), srv.URL, &v); err != nil {
		t.Fatalf("GetJSON error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", gotAuth)
	}
}

func TestGetBytesCachesByURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	backend, _ := cache.NewFileCache(t.TempDir())
	c := NewClient(backend, time.Hour, nil)

	for i := 0; i < 2; i++ {
		data, ct, err := c.GetBytes(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("GetBytes error: %v", err)
		}
		if string(data) != "png-bytes" || ct != "image/png" {
			t.Errorf("GetBytes = %q %q, want png-bytes image/png", data, ct)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1 (second read should come from cache)", n)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
			if !pkgerrors.Is(err, pkgerrors.ErrCodeNotFound) {
				t.Errorf("err = %v, want NOT_FOUND", err)
			}
		}},
		{"unexpected status", http.StatusTeapot, func(t *testing.T, err error) {
			if !errors.Is(err, ErrNetwork) {
				t.Errorf("err = %v, want ErrNetwork", err)
			}
			if !pkgerrors.Is(err, pkgerrors.ErrCodeNetwork) {
				t.Errorf("err = %v, want NETWORK_ERROR", err)
			}
		}},
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			if !pkgerrors.Is(err, pkgerrors.ErrCodeUnauthorized) {
				t.Errorf("err = %v, want UNAUTHORIZED", err)
			}
		}},
		{"forbidden", http.StatusForbidden, func(t *testing.T, err error) {
			if !pkgerrors.Is(err, pkgerrors.ErrCodeForbidden) {
				t.Errorf("err = %v, want FORBIDDEN", err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(nil, 0, nil)
			var v struct{}
			_, err := c.GetJSON(context.Background(), srv.URL, &v)
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestRateLimitedForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(nil, 0, nil)
	var v struct{}
	_, err := c.GetJSON(context.Background(), srv.URL, &v)

	var rl *pkgerrors.RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want RateLimitedError", err)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(nil, 0, nil)
	var v struct {
		OK bool `json:"ok"`
	}
	if _, err := c.GetJSON(context.Background(), srv.URL, &v); err != nil {
		t.Fatalf("GetJSON error: %v", err)
	}
	if !v.OK {
		t.Error("expected decoded body after retry")
	}
	if n := attempts.Load(); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}
