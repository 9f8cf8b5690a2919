package github

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const releasesDoc = `[
 {"tag_name":"v0.46.0","name":"Cursor 0.46","body":"## Changes\n- **Agent** improvements\n- See [docs](https://docs.example.com)\n","html_url":"https://github.com/getcursor/cursor/releases/tag/v0.46.0","published_at":"2026-02-09T18:00:00Z","prerelease":false},
 {"tag_name":"v0.46.0-rc1","name":"","body":"Release candidate.","html_url":"https://github.com/getcursor/cursor/releases/tag/v0.46.0-rc1","published_at":"2026-02-05T10:00:00Z","prerelease":true},
 {"tag_name":"v0.44.0","name":"Cursor 0.44","body":"Old.","html_url":"https://github.com/getcursor/cursor/releases/tag/v0.44.0","published_at":"2026-01-20T00:00:00Z","prerelease":false},
 {"tag_name":"draft","name":"Unpublished","body":"","html_url":"https://github.com/getcursor/cursor/releases/tag/draft","published_at":"","prerelease":false}
]`

func fixedNow() time.Time {
	return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
}

func apiServer(t *testing.T, wantAuth string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("Authorization = %q, want %q", got, wantAuth)
		}
		if r.URL.Path != "/repos/getcursor/cursor/releases" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, releasesDoc)
	}))
}

func TestReleases(t *testing.T) {
	srv := apiServer(t, "")
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL, Now: fixedNow})
	items, err := f.Releases("getcursor/cursor")
	if err != nil {
		t.Fatalf("Releases: %v", err)
	}

	// The January release is outside the seven day window and the
	// unpublished draft has no date.
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title != "Cursor 0.46" {
		t.Errorf("title = %q", first.Title)
	}
	if first.ID != "v0.46.0" {
		t.Errorf("tag = %q", first.ID)
	}
	if first.Source != "getcursor/cursor" {
		t.Errorf("source = %q", first.Source)
	}
	if first.Summary != "Changes Agent improvements See docs" {
		t.Errorf("release notes = %q", first.Summary)
	}
	if first.Prerelease {
		t.Error("stable release marked prerelease")
	}

	// Nameless releases fall back to the tag.
	second := items[1]
	if second.Title != "v0.46.0-rc1" {
		t.Errorf("fallback title = %q", second.Title)
	}
	if !second.Prerelease {
		t.Error("release candidate not marked prerelease")
	}
}

func TestReleases_SendsToken(t *testing.T) {
	srv := apiServer(t, "Bearer t0ken")
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL, Now: fixedNow, Token: "t0ken"})
	if _, err := f.Releases("getcursor/cursor"); err != nil {
		t.Fatalf("Releases: %v", err)
	}
}

func TestReleases_UnknownRepo(t *testing.T) {
	srv := apiServer(t, "")
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL, Now: fixedNow})
	items, err := f.Releases("nobody/nothing")
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items from a missing repo", len(items))
	}
}

func TestFetch_NewestFirstAndCut(t *testing.T) {
	srv := apiServer(t, "")
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL, Now: fixedNow, TopN: 1})
	items, err := f.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ID != "v0.46.0" {
		t.Errorf("newest = %q", items[0].ID)
	}
}
