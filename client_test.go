package shodan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestNew_EmptyKey(t *testing.T) {
	c, err := New("")
	if err == nil || c != nil {
		t.Fatalf("expected error for empty key")
	}
	if !IsConfiguration(err) || !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("KEY")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.baseURL != DefaultBaseURL || c.streamURL != DefaultStreamURL {
		t.Fatalf("unexpected hosts %q %q", c.baseURL, c.streamURL)
	}
	if c.http.Timeout != DefaultTimeout {
		t.Fatalf("rest timeout = %v", c.http.Timeout)
	}
	if c.stream.Timeout != 0 {
		t.Fatalf("stream timeout = %v, want none", c.stream.Timeout)
	}
	if c.http == c.stream {
		t.Fatalf("rest and stream must not share an http.Client")
	}
}

func TestNew_RejectsStreamTimeout(t *testing.T) {
	_, err := New("KEY", WithStreamHTTPClient(&http.Client{Timeout: time.Second}))
	if !IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_OptionErrorIsConfiguration(t *testing.T) {
	_, err := New("KEY", WithHTTPTimeout(0))
	if !IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	c, err := New("KEY")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// start the pool
	_ = c.Batch(context.Background(), func(context.Context, *Client) (*Response, error) { return nil, nil })
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestClient_RESTAndStreamHosts(t *testing.T) {
	rest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shodan/host/8.8.8.8" || r.URL.Query().Get("key") != "KEY" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("User-Agent") != userAgent {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"ip_str":"8.8.8.8"}`)
	}))
	defer rest.Close()

	stream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shodan/alert" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		for i := 0; i < 2; i++ {
			_, _ = fmt.Fprintf(w, "{\"n\":%d}\n\n", i)
			w.(http.Flusher).Flush()
		}
	}))
	defer stream.Close()

	c, err := New("KEY", WithBaseURL(rest.URL+"/"), WithStreamURL(stream.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	resp, err := c.Host(context.Background(), "8.8.8.8", HostOptions{})
	if err != nil {
		t.Fatalf("Host: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.String() != `{"ip_str":"8.8.8.8"}` {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, resp.String())
	}

	s, err := c.StreamAlerts(context.Background())
	if err != nil {
		t.Fatalf("StreamAlerts: %v", err)
	}
	defer func() { _ = s.Close() }()
	var got []string
	for {
		rec, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, string(rec))
	}
	if len(got) != 2 || got[0] != `{"n":0}` || got[1] != `{"n":1}` {
		t.Fatalf("unexpected records %v", got)
	}
}

func TestClient_StreamOutlivesRESTTimeout(t *testing.T) {
	stream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "{\"n\":0}\n")
		w.(http.Flusher).Flush()
		time.Sleep(150 * time.Millisecond)
		_, _ = io.WriteString(w, "{\"n\":1}\n")
	}))
	defer stream.Close()

	c, err := New("KEY", WithStreamURL(stream.URL), WithHTTPTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := c.StreamAlert(context.Background(), "A1")
	if err != nil {
		t.Fatalf("StreamAlert: %v", err)
	}
	defer func() { _ = s.Close() }()
	for i := 0; i < 2; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
}

func TestClient_TransportErrorKeepsKeyOut(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	c, err := New("SECRETKEY", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.MyIP(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.RequestID == "" || e.Op != "my_ip" {
		t.Fatalf("unexpected error detail %+v", e)
	}
	if got := err.Error(); strings.Contains(got, "SECRETKEY") {
		t.Fatalf("key leaked: %s", got)
	}
}
