package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/netscout/shodan/internal/types"
)

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

func okResponse(r *http.Request, body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}

// recorder captures the descriptor and call handed to it instead of sending anything.
type recorder struct {
	d     Descriptor
	call  Call
	calls int
}

func (r *recorder) Do(_ context.Context, d Descriptor, call Call) (*types.Response, error) {
	r.d, r.call = d, call
	r.calls++
	return &types.Response{StatusCode: http.StatusOK}, nil
}

func (r *recorder) Open(_ context.Context, d Descriptor, call Call) (*types.Stream, error) {
	r.d, r.call = d, call
	r.calls++
	return types.NewStream(io.NopCloser(strings.NewReader(""))), nil
}
