package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/netscout/shodan/internal/types"
)

var (
	hostDescriptor = Descriptor{
		Name: "host", Method: http.MethodGet, Path: "/shodan/host/{ip}",
		Query: []Param{{Name: "history"}, {Name: "minify"}},
	}
	hostCountDescriptor = Descriptor{
		Name: "host_count", Method: http.MethodGet, Path: "/shodan/host/count",
		Query: []Param{{Name: "query", Required: true}, {Name: "facets"}},
	}
	hostSearchDescriptor = Descriptor{
		Name: "host_search", Method: http.MethodGet, Path: "/shodan/host/search",
		Query: []Param{{Name: "query", Required: true}, {Name: "facets"}, {Name: "page"}, {Name: "minify"}},
	}
	searchFacetsDescriptor  = Descriptor{Name: "search_facets", Method: http.MethodGet, Path: "/shodan/host/search/facets"}
	searchFiltersDescriptor = Descriptor{Name: "search_filters", Method: http.MethodGet, Path: "/shodan/host/search/filters"}
	searchTokensDescriptor  = Descriptor{
		Name: "search_tokens", Method: http.MethodGet, Path: "/shodan/host/search/tokens",
		Query: []Param{{Name: "query", Required: true}},
	}
)

// Host returns all services that have been found on the given IP.
func Host(ctx context.Context, r Requester, ip string, opts types.HostOptions) (*types.Response, error) {
	q := url.Values{}
	setBool(q, "history", opts.History)
	setBool(q, "minify", opts.Minify)
	return r.Do(ctx, hostDescriptor, Call{Path: pathValues("ip", ip), Query: q})
}

// HostCount returns the number of results for a search without consuming query credits.
func HostCount(ctx context.Context, r Requester, query, facets string) (*types.Response, error) {
	q := url.Values{}
	setString(q, "query", query)
	setString(q, "facets", facets)
	return r.Do(ctx, hostCountDescriptor, Call{Query: q})
}

// HostSearch searches Shodan using the website's query syntax.
func HostSearch(ctx context.Context, r Requester, req types.HostSearchRequest) (*types.Response, error) {
	q := url.Values{}
	setString(q, "query", req.Query)
	setString(q, "facets", req.Facets)
	setInt(q, "page", req.Page)
	setBool(q, "minify", req.Minify)
	return r.Do(ctx, hostSearchDescriptor, Call{Query: q})
}

// SearchFacets lists the facets usable in HostCount and HostSearch.
func SearchFacets(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, searchFacetsDescriptor, Call{})
}

// SearchFilters lists the filters usable in a search query.
func SearchFilters(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, searchFiltersDescriptor, Call{})
}

// SearchTokens breaks a query into its tokens and filters.
func SearchTokens(ctx context.Context, r Requester, query string) (*types.Response, error) {
	q := url.Values{}
	setString(q, "query", query)
	return r.Do(ctx, searchTokensDescriptor, Call{Query: q})
}
