package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/netscout/shodan/internal/types"
)

var (
	portsDescriptor     = Descriptor{Name: "ports", Method: http.MethodGet, Path: "/shodan/ports"}
	protocolsDescriptor = Descriptor{Name: "protocols", Method: http.MethodGet, Path: "/shodan/protocols"}
	scanCreateDescriptor = Descriptor{
		Name: "scan_create", Method: http.MethodPost, Path: "/shodan/scan", Body: BodyForm,
	}
	scansDescriptor = Descriptor{Name: "scans", Method: http.MethodGet, Path: "/shodan/scans"}
	scanDescriptor  = Descriptor{Name: "scan", Method: http.MethodGet, Path: "/shodan/scan/{id}"}
)

// Ports lists the port numbers the crawlers look for.
func Ports(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, portsDescriptor, Call{})
}

// Protocols lists the protocols usable in on-demand scans.
func Protocols(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, protocolsDescriptor, Call{})
}

// CreateScan requests an on-demand crawl. ips is either a comma-separated
// list of IPs/netblocks or a JSON object mapping IPs to [port, protocol] pairs;
// it is sent verbatim as the "ips" form field.
func CreateScan(ctx context.Context, r Requester, ips string) (*types.Response, error) {
	form := url.Values{}
	setString(form, "ips", ips)
	return r.Do(ctx, scanCreateDescriptor, Call{Form: form})
}

// Scans lists the scans submitted by the account.
func Scans(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, scansDescriptor, Call{})
}

// Scan returns the progress of a previously submitted scan.
func Scan(ctx context.Context, r Requester, id string) (*types.Response, error) {
	return r.Do(ctx, scanDescriptor, Call{Path: pathValues("id", id)})
}
