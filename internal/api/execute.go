package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	clienterrors "github.com/netscout/shodan/internal/errors"
	"github.com/netscout/shodan/internal/types"
)

// RequestIDHeader carries the per-call correlation ID on every outgoing request.
const RequestIDHeader = "X-Request-Id"

// Execute sends exactly one REST request for d and reads the whole response.
// Non-2xx statuses are returned as responses, not errors.
func Execute(ctx context.Context, rc *resty.Client, baseURL, apiKey string, d Descriptor, call Call) (*types.Response, error) {
	if d.Stream {
		return nil, clienterrors.NewConfigError(d.Name, fmt.Errorf("%w: streaming endpoint must be opened", clienterrors.ErrInvalidParam))
	}
	req, target, id, err := prepare(ctx, rc, baseURL, apiKey, d, call)
	if err != nil {
		return nil, err
	}

	resp, err := req.Execute(d.Method, target)
	if err != nil {
		return nil, clienterrors.NewTransportError(d.Name, id, scrub(err, apiKey))
	}

	return &types.Response{
		RequestID:  id,
		Method:     d.Method,
		URL:        RedactURL(resp.Request.URL),
		Status:     resp.Status(),
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// Open starts a streaming request for d and hands back the open body.
// The resty client passed in must not carry a timeout.
func Open(ctx context.Context, rc *resty.Client, baseURL, apiKey string, d Descriptor, call Call) (*types.Stream, error) {
	req, target, id, err := prepare(ctx, rc, baseURL, apiKey, d, call)
	if err != nil {
		return nil, err
	}
	req.SetDoNotParseResponse(true)

	resp, err := req.Execute(d.Method, target)
	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			_ = resp.RawBody().Close()
		}
		return nil, clienterrors.NewTransportError(d.Name, id, scrub(err, apiKey))
	}

	s := types.NewStream(resp.RawBody())
	s.RequestID = id
	s.URL = RedactURL(resp.Request.URL)
	s.Status = resp.Status()
	s.StatusCode = resp.StatusCode()
	s.Header = resp.Header()
	return s, nil
}

// prepare validates the call and builds the resty request. Nothing touches
// the network here, so every error is a configuration error.
func prepare(ctx context.Context, rc *resty.Client, baseURL, apiKey string, d Descriptor, call Call) (*resty.Request, string, string, error) {
	if apiKey == "" {
		return nil, "", "", clienterrors.NewConfigError(d.Name, fmt.Errorf("%w: api key is empty", clienterrors.ErrInvalidParam))
	}
	if err := d.Validate(call); err != nil {
		return nil, "", "", err
	}

	query := d.BuildQuery(call.Query)
	query.Set("key", apiKey)

	id := uuid.NewString()
	req := rc.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, id).
		SetQueryParamsFromValues(query)

	switch d.Body {
	case BodyJSON:
		payload, err := json.Marshal(call.JSON)
		if err != nil {
			return nil, "", "", clienterrors.NewConfigError(d.Name, fmt.Errorf("%w: %v", clienterrors.ErrEncodeBody, err))
		}
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	case BodyForm:
		req.SetFormDataFromValues(call.Form)
	}

	target := strings.TrimRight(baseURL, "/") + d.BuildPath(call.Path)
	return req, target, id, nil
}

// RedactURL replaces the key query parameter so URLs can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if _, ok := q["key"]; !ok {
		return raw
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// scrub keeps the key out of error messages. net/http embeds the full
// request URL in *url.Error.
func scrub(err error, apiKey string) error {
	if ue, ok := err.(*url.Error); ok {
		err = &url.Error{Op: ue.Op, URL: RedactURL(ue.URL), Err: ue.Err}
	}
	if strings.Contains(err.Error(), apiKey) {
		return &redactedError{err: err, secret: apiKey}
	}
	return err
}

type redactedError struct {
	err    error
	secret string
}

func (e *redactedError) Error() string {
	return strings.ReplaceAll(e.err.Error(), e.secret, "REDACTED")
}

func (e *redactedError) Unwrap() error { return e.err }
