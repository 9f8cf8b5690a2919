package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		if extra := r.Header.Get("Accept"); extra != "application/json" {
			t.Errorf("Accept = %q", extra)
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	body, err := Get(srv.URL, Options{
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
		Headers:   map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q", body)
	}
}

func TestGet_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Get(srv.URL, Options{Timeout: 5 * time.Second})
	var status *StatusError
	if !errors.As(err, &status) || status.Code != 404 {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveURL(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer final.Close()

	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL+"/article", http.StatusFound)
	}))
	defer hop.Close()

	if got := ResolveURL(hop.URL, "agent", 5*time.Second); got != final.URL+"/article" {
		t.Errorf("resolved = %q, want %q", got, final.URL+"/article")
	}
}

func TestResolveURL_HeadRejectedFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	}))
	defer srv.Close()

	if got := ResolveURL(srv.URL, "", 5*time.Second); got != srv.URL {
		t.Errorf("resolved = %q", got)
	}
}

func TestResolveURL_DeadServerReturnsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if got := ResolveURL(srv.URL, "", time.Second); got != srv.URL {
		t.Errorf("resolved = %q, want the input back", got)
	}
}

func TestReachable(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ok.Close()
	if !Reachable(ok.URL, "agent", 5*time.Second) {
		t.Error("live server reported unreachable")
	}

	missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer missing.Close()
	if Reachable(missing.URL, "agent", 5*time.Second) {
		t.Error("404 reported reachable")
	}

	if Reachable("http://127.0.0.1:1/nope", "agent", time.Second) {
		t.Error("dead address reported reachable")
	}
}

func TestGetDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.theverge.com/ai/123", "www.theverge.com"},
		{"http://example.com", "example.com"},
		{"://no-scheme", "://no-scheme"},
	}
	for _, c := range cases {
		if got := GetDomain(c.in); got != c.want {
			t.Errorf("GetDomain(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
