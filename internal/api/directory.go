package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/netscout/shodan/internal/types"
)

var (
	queriesDescriptor = Descriptor{
		Name: "queries", Method: http.MethodGet, Path: "/shodan/query",
		Query: []Param{{Name: "page"}, {Name: "sort"}, {Name: "order"}},
	}
	querySearchDescriptor = Descriptor{
		Name: "query_search", Method: http.MethodGet, Path: "/shodan/query/search",
		Query: []Param{{Name: "query", Required: true}, {Name: "page"}},
	}
	queryTagsDescriptor = Descriptor{
		Name: "query_tags", Method: http.MethodGet, Path: "/shodan/query/tags",
		Query: []Param{{Name: "size"}},
	}
)

// Queries lists the search queries users have saved.
func Queries(ctx context.Context, r Requester, req types.QueryListRequest) (*types.Response, error) {
	q := url.Values{}
	setInt(q, "page", req.Page)
	setString(q, "sort", req.Sort)
	setString(q, "order", req.Order)
	return r.Do(ctx, queriesDescriptor, Call{Query: q})
}

// QuerySearch searches the directory of saved queries.
func QuerySearch(ctx context.Context, r Requester, query string, page int) (*types.Response, error) {
	q := url.Values{}
	setString(q, "query", query)
	setInt(q, "page", page)
	return r.Do(ctx, querySearchDescriptor, Call{Query: q})
}

// QueryTags lists the most popular tags of saved queries.
func QueryTags(ctx context.Context, r Requester, size int) (*types.Response, error) {
	q := url.Values{}
	setInt(q, "size", size)
	return r.Do(ctx, queryTagsDescriptor, Call{Query: q})
}
