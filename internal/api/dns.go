package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/netscout/shodan/internal/types"
)

var (
	dnsDomainDescriptor = Descriptor{
		Name: "dns_domain", Method: http.MethodGet, Path: "/dns/domain/{domain}",
		Query: []Param{{Name: "history"}, {Name: "type"}, {Name: "page"}},
	}
	dnsResolveDescriptor = Descriptor{
		Name: "dns_resolve", Method: http.MethodGet, Path: "/dns/resolve",
		Query: []Param{{Name: "hostnames", Required: true}},
	}
	dnsReverseDescriptor = Descriptor{
		Name: "dns_reverse", Method: http.MethodGet, Path: "/dns/reverse",
		Query: []Param{{Name: "ips", Required: true}},
	}
)

// DNSDomain returns the subdomains and records of a domain.
func DNSDomain(ctx context.Context, r Requester, domain string, req types.DomainRequest) (*types.Response, error) {
	q := url.Values{}
	setBool(q, "history", req.History)
	setString(q, "type", req.Type)
	setInt(q, "page", req.Page)
	return r.Do(ctx, dnsDomainDescriptor, Call{Path: pathValues("domain", domain), Query: q})
}

// DNSResolve looks up the IP address of each hostname.
func DNSResolve(ctx context.Context, r Requester, hostnames []string) (*types.Response, error) {
	q := url.Values{}
	setString(q, "hostnames", strings.Join(hostnames, ","))
	return r.Do(ctx, dnsResolveDescriptor, Call{Query: q})
}

// DNSReverse looks up the hostnames defined for each IP address.
func DNSReverse(ctx context.Context, r Requester, ips []string) (*types.Response, error) {
	q := url.Values{}
	setString(q, "ips", strings.Join(ips, ","))
	return r.Do(ctx, dnsReverseDescriptor, Call{Query: q})
}
