package api

import (
	"context"
	"net/http"

	"github.com/netscout/shodan/internal/types"
)

var (
	httpHeadersDescriptor = Descriptor{Name: "http_headers", Method: http.MethodGet, Path: "/tools/httpheaders"}
	myIPDescriptor        = Descriptor{Name: "my_ip", Method: http.MethodGet, Path: "/tools/myip"}
	apiInfoDescriptor     = Descriptor{Name: "api_info", Method: http.MethodGet, Path: "/api-info"}
)

// HTTPHeaders echoes the headers the client sent.
func HTTPHeaders(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, httpHeadersDescriptor, Call{})
}

// MyIP returns the caller's public IP address.
func MyIP(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, myIPDescriptor, Call{})
}

// APIInfo returns the plan and remaining credits of the API key.
func APIInfo(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, apiInfoDescriptor, Call{})
}
