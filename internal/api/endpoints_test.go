package api

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netscout/shodan/internal/types"
)

func TestEndpoints_BindDescriptors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := []struct {
		name      string
		invoke    func(r Requester) error
		wantDesc  string
		wantPath  map[string]string
		wantQuery url.Values
	}{
		{"host with options", func(r Requester) error {
			_, err := Host(ctx, r, "8.8.8.8", types.HostOptions{History: true, Minify: true})
			return err
		}, "host", map[string]string{"ip": "8.8.8.8"}, url.Values{"history": {"true"}, "minify": {"true"}}},
		{"host count", func(r Requester) error {
			_, err := HostCount(ctx, r, "port:22", "org,os")
			return err
		}, "host_count", nil, url.Values{"query": {"port:22"}, "facets": {"org,os"}}},
		{"host search", func(r Requester) error {
			_, err := HostSearch(ctx, r, types.HostSearchRequest{Query: "product:nginx", Facets: "country", Page: 2})
			return err
		}, "host_search", nil, url.Values{"query": {"product:nginx"}, "facets": {"country"}, "page": {"2"}}},
		{"facets", func(r Requester) error { _, err := SearchFacets(ctx, r); return err }, "search_facets", nil, nil},
		{"filters", func(r Requester) error { _, err := SearchFilters(ctx, r); return err }, "search_filters", nil, nil},
		{"tokens", func(r Requester) error {
			_, err := SearchTokens(ctx, r, "Raspbian port:22")
			return err
		}, "search_tokens", nil, url.Values{"query": {"Raspbian port:22"}}},
		{"ports", func(r Requester) error { _, err := Ports(ctx, r); return err }, "ports", nil, nil},
		{"protocols", func(r Requester) error { _, err := Protocols(ctx, r); return err }, "protocols", nil, nil},
		{"scans", func(r Requester) error { _, err := Scans(ctx, r); return err }, "scans", nil, nil},
		{"scan", func(r Requester) error { _, err := Scan(ctx, r, "S1"); return err }, "scan", map[string]string{"id": "S1"}, nil},
		{"alert", func(r Requester) error { _, err := Alert(ctx, r, "A1"); return err }, "alert", map[string]string{"id": "A1"}, nil},
		{"alert delete", func(r Requester) error { _, err := DeleteAlert(ctx, r, "A1"); return err }, "alert_delete", map[string]string{"id": "A1"}, nil},
		{"alerts", func(r Requester) error { _, err := Alerts(ctx, r); return err }, "alerts", nil, nil},
		{"alert triggers", func(r Requester) error { _, err := AlertTriggers(ctx, r); return err }, "alert_triggers", nil, nil},
		{"trigger add", func(r Requester) error {
			_, err := AddAlertTrigger(ctx, r, "A1", "new_service,vulnerable")
			return err
		}, "alert_trigger_add", map[string]string{"id": "A1", "trigger": "new_service,vulnerable"}, nil},
		{"trigger delete", func(r Requester) error {
			_, err := DeleteAlertTrigger(ctx, r, "A1", "vulnerable")
			return err
		}, "alert_trigger_delete", map[string]string{"id": "A1", "trigger": "vulnerable"}, nil},
		{"ignore add", func(r Requester) error {
			_, err := IgnoreTriggerService(ctx, r, "A1", "new_service", "1.1.1.1:53")
			return err
		}, "alert_ignore_add", map[string]string{"id": "A1", "trigger": "new_service", "service": "1.1.1.1:53"}, nil},
		{"ignore delete", func(r Requester) error {
			_, err := UnignoreTriggerService(ctx, r, "A1", "new_service", "1.1.1.1:53")
			return err
		}, "alert_ignore_delete", map[string]string{"id": "A1", "trigger": "new_service", "service": "1.1.1.1:53"}, nil},
		{"alert notifier add", func(r Requester) error {
			_, err := AddAlertNotifier(ctx, r, "A1", "default")
			return err
		}, "alert_notifier_add", map[string]string{"id": "A1", "notifier_id": "default"}, nil},
		{"alert notifier delete", func(r Requester) error {
			_, err := DeleteAlertNotifier(ctx, r, "A1", "default")
			return err
		}, "alert_notifier_delete", map[string]string{"id": "A1", "notifier_id": "default"}, nil},
		{"notifiers", func(r Requester) error { _, err := Notifiers(ctx, r); return err }, "notifiers", nil, nil},
		{"providers", func(r Requester) error { _, err := NotifierProviders(ctx, r); return err }, "notifier_providers", nil, nil},
		{"notifier", func(r Requester) error { _, err := Notifier(ctx, r, "N1"); return err }, "notifier", map[string]string{"id": "N1"}, nil},
		{"notifier delete", func(r Requester) error {
			_, err := DeleteNotifier(ctx, r, "N1")
			return err
		}, "notifier_delete", map[string]string{"id": "N1"}, nil},
		{"queries", func(r Requester) error {
			_, err := Queries(ctx, r, types.QueryListRequest{Sort: "votes", Order: "asc"})
			return err
		}, "queries", nil, url.Values{"sort": {"votes"}, "order": {"asc"}}},
		{"query search", func(r Requester) error {
			_, err := QuerySearch(ctx, r, "webcam", 0)
			return err
		}, "query_search", nil, url.Values{"query": {"webcam"}}},
		{"query tags", func(r Requester) error { _, err := QueryTags(ctx, r, 10); return err }, "query_tags", nil, url.Values{"size": {"10"}}},
		{"profile", func(r Requester) error { _, err := AccountProfile(ctx, r); return err }, "account_profile", nil, nil},
		{"dns domain", func(r Requester) error {
			_, err := DNSDomain(ctx, r, "google.com", types.DomainRequest{Type: "A"})
			return err
		}, "dns_domain", map[string]string{"domain": "google.com"}, url.Values{"type": {"A"}}},
		{"dns resolve", func(r Requester) error {
			_, err := DNSResolve(ctx, r, []string{"google.com", "facebook.com"})
			return err
		}, "dns_resolve", nil, url.Values{"hostnames": {"google.com,facebook.com"}}},
		{"dns reverse", func(r Requester) error {
			_, err := DNSReverse(ctx, r, []string{"8.8.8.8", "1.1.1.1"})
			return err
		}, "dns_reverse", nil, url.Values{"ips": {"8.8.8.8,1.1.1.1"}}},
		{"headers", func(r Requester) error { _, err := HTTPHeaders(ctx, r); return err }, "http_headers", nil, nil},
		{"myip", func(r Requester) error { _, err := MyIP(ctx, r); return err }, "my_ip", nil, nil},
		{"api info", func(r Requester) error { _, err := APIInfo(ctx, r); return err }, "api_info", nil, nil},
		{"stream alerts", func(r Requester) error { _, err := StreamAlerts(ctx, r); return err }, "stream_alerts", nil, nil},
		{"stream alert", func(r Requester) error {
			_, err := StreamAlert(ctx, r, "A1")
			return err
		}, "stream_alert", map[string]string{"id": "A1"}, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			require.NoError(t, tc.invoke(rec))
			require.Equal(t, 1, rec.calls)
			assert.Equal(t, tc.wantDesc, rec.d.Name)
			if tc.wantPath == nil {
				assert.Empty(t, rec.call.Path)
			} else {
				assert.Equal(t, tc.wantPath, rec.call.Path)
			}
			if tc.wantQuery == nil {
				assert.Empty(t, rec.call.Query)
			} else {
				assert.Equal(t, tc.wantQuery, rec.call.Query)
			}
			assert.NoError(t, rec.d.Validate(rec.call), "endpoint builds a call its descriptor rejects")
		})
	}
}

func TestStreamDescriptorsUseStreamHost(t *testing.T) {
	t.Parallel()
	for _, d := range All() {
		isStream := d.Name == "stream_alerts" || d.Name == "stream_alert"
		assert.Equal(t, isStream, d.Stream, d.Name)
	}
}
