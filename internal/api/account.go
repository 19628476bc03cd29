package api

import (
	"context"
	"net/http"

	"github.com/netscout/shodan/internal/types"
)

var accountProfileDescriptor = Descriptor{Name: "account_profile", Method: http.MethodGet, Path: "/account/profile"}

// AccountProfile returns the account linked to the API key.
func AccountProfile(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, accountProfileDescriptor, Call{})
}
