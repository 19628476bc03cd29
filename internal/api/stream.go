package api

import (
	"context"
	"net/http"

	"github.com/netscout/shodan/internal/types"
)

var (
	streamAlertsDescriptor = Descriptor{Name: "stream_alerts", Method: http.MethodGet, Path: "/shodan/alert", Stream: true}
	streamAlertDescriptor  = Descriptor{Name: "stream_alert", Method: http.MethodGet, Path: "/shodan/alert/{id}", Stream: true}
)

// StreamAlerts subscribes to banners found on every network alert's ranges.
func StreamAlerts(ctx context.Context, r Requester) (*types.Stream, error) {
	return r.Open(ctx, streamAlertsDescriptor, Call{})
}

// StreamAlert subscribes to banners found on one alert's ranges.
func StreamAlert(ctx context.Context, r Requester, id string) (*types.Stream, error) {
	return r.Open(ctx, streamAlertDescriptor, Call{Path: pathValues("id", id)})
}
