package types

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"sync"
)

// ------------------------------
// Response Types
// ------------------------------

// Response is the raw result of a REST call. The body is never decoded;
// interpreting it, including non-2xx statuses, is left to the caller.
type Response struct {
	RequestID  string
	Method     string
	URL        string // final request URL with the API key redacted
	Status     string // e.g. "200 OK"
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// String returns the body as text.
func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Stream is an open long-lived response from the streaming API.
// Callers must Close it; cancelling the request context also ends it.
type Stream struct {
	RequestID  string
	URL        string
	Status     string
	StatusCode int
	Header     http.Header

	body      io.ReadCloser
	reader    *bufio.Reader
	closeOnce sync.Once
	closeErr  error
}

// NewStream wraps an open response body.
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{body: body, reader: bufio.NewReader(body)}
}

// Next returns the next non-empty newline-delimited record without its
// trailing newline. It returns io.EOF once the server ends the stream.
func (s *Stream) Next() ([]byte, error) {
	for {
		line, err := s.reader.ReadBytes('\n')
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 {
			return line, nil
		}
		if err != nil {
			return nil, err
		}
		// blank keep-alive line
	}
}

// Read exposes the raw stream so callers can consume it with their own reader.
func (s *Stream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close releases the connection. Safe to call multiple times.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}
