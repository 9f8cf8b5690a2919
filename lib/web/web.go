package web

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Options for a single request.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

// Get fetches url and returns the body. Non-2xx responses come back as
// *StatusError so callers can special-case 404s.
func Get(rawURL string, opts Options) ([]byte, error) {
	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ResolveURL follows redirects and reports the final address, HEAD first
// and GET as a fallback for servers that reject HEAD. Failures return the
// input untouched.
func ResolveURL(rawURL, userAgent string, timeout time.Duration) string {
	client := &http.Client{Timeout: timeout}

	try := func(method string) (string, bool) {
		req, err := http.NewRequest(method, rawURL, nil)
		if err != nil {
			return "", false
		}
		if userAgent != "" {
			req.Header.Set("User-Agent", userAgent)
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", false
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return "", false
		}
		return resp.Request.URL.String(), true
	}

	if final, ok := try(http.MethodHead); ok {
		return final
	}
	if final, ok := try(http.MethodGet); ok {
		return final
	}
	return rawURL
}

// Reachable probes url with a HEAD request, following redirects. Only a
// final 200 counts.
func Reachable(rawURL, userAgent string, timeout time.Duration) bool {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func GetDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	return u.Hostname()
}
