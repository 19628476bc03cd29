package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/netscout/shodan/internal/types"
)

var (
	notifiersDescriptor         = Descriptor{Name: "notifiers", Method: http.MethodGet, Path: "/notifier"}
	notifierProvidersDescriptor = Descriptor{Name: "notifier_providers", Method: http.MethodGet, Path: "/notifier/provider"}
	notifierCreateDescriptor    = Descriptor{Name: "notifier_create", Method: http.MethodPost, Path: "/notifier", Body: BodyForm}
	notifierDeleteDescriptor    = Descriptor{Name: "notifier_delete", Method: http.MethodDelete, Path: "/notifier/{id}"}
	notifierDescriptor          = Descriptor{Name: "notifier", Method: http.MethodGet, Path: "/notifier/{id}"}
	notifierEditDescriptor      = Descriptor{Name: "notifier_edit", Method: http.MethodPut, Path: "/notifier/{id}", Body: BodyForm}
)

// Notifiers lists the notifiers created by the account.
func Notifiers(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, notifiersDescriptor, Call{})
}

// NotifierProviders lists the available notification providers and their arguments.
func NotifierProviders(ctx context.Context, r Requester) (*types.Response, error) {
	return r.Do(ctx, notifierProvidersDescriptor, Call{})
}

// CreateNotifier creates a notification service endpoint.
func CreateNotifier(ctx context.Context, r Requester, req types.CreateNotifierRequest) (*types.Response, error) {
	form := url.Values{}
	for k, v := range req.Args {
		form.Set(k, v)
	}
	setString(form, "provider", req.Provider)
	setString(form, "description", req.Description)
	return r.Do(ctx, notifierCreateDescriptor, Call{Form: form})
}

// DeleteNotifier removes a notifier.
func DeleteNotifier(ctx context.Context, r Requester, id string) (*types.Response, error) {
	return r.Do(ctx, notifierDeleteDescriptor, Call{Path: pathValues("id", id)})
}

// Notifier returns the details of one notifier.
func Notifier(ctx context.Context, r Requester, id string) (*types.Response, error) {
	return r.Do(ctx, notifierDescriptor, Call{Path: pathValues("id", id)})
}

// EditNotifier updates the provider arguments of a notifier.
func EditNotifier(ctx context.Context, r Requester, id string, args map[string]string) (*types.Response, error) {
	form := url.Values{}
	for k, v := range args {
		form.Set(k, v)
	}
	return r.Do(ctx, notifierEditDescriptor, Call{Path: pathValues("id", id), Form: form})
}
