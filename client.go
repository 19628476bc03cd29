package shodan

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/netscout/shodan/internal/api"
	"github.com/netscout/shodan/internal/dispatch"
	clienterrors "github.com/netscout/shodan/internal/errors"
	"github.com/netscout/shodan/internal/types"
)

const (
	// DefaultBaseURL is the REST API host.
	DefaultBaseURL = "https://api.shodan.io"
	// DefaultStreamURL is the streaming API host.
	DefaultStreamURL = "https://stream.shodan.io"
	// DefaultTimeout bounds every REST request. Streaming requests have no timeout.
	DefaultTimeout = 30 * time.Second

	userAgent = "netscout-shodan-go"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client issues requests against the Shodan REST and streaming APIs.
// The API key is held by the client and never mutated, so one Client may be
// shared by any number of goroutines.
type Client struct {
	baseURL   string
	streamURL string
	apiKey    string

	http   *http.Client // REST, finite timeout
	stream *http.Client // streaming, no timeout

	rest     *resty.Client
	streamRC *resty.Client

	batchCfg dispatch.Config
	poolMu   sync.Mutex
	pool     *dispatch.Pool // started by the first Batch

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client authenticated with apiKey.
// Additional options can be provided via functional arguments.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, clienterrors.NewConfigError("new", fmt.Errorf("%w: api key is empty", clienterrors.ErrInvalidParam))
	}

	batchCfg, err := dispatch.LoadConfig()
	if err != nil {
		return nil, clienterrors.NewConfigError("new", err)
	}

	c := &Client{
		baseURL:   DefaultBaseURL,
		streamURL: DefaultStreamURL,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: DefaultTimeout},
		stream:    &http.Client{},
		batchCfg:  batchCfg,
	}

	// Auto-enable debug via env variable without changing code.
	if DebugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, clienterrors.NewConfigError("new", err)
		}
	}
	if c.stream.Timeout != 0 {
		return nil, clienterrors.NewConfigError("new", fmt.Errorf("%w: streaming http client must not set a timeout", clienterrors.ErrInvalidParam))
	}

	c.rest = resty.NewWithClient(c.http).SetHeader("User-Agent", userAgent)
	c.streamRC = resty.NewWithClient(c.stream).SetHeader("User-Agent", userAgent)
	return c, nil
}

// Close stops the batch worker pool (if one was started) after it drains.
// Single requests keep working; Batch fails with ErrClientClosed. Safe to call
// multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.poolMu.Lock()
	pool := c.pool
	c.poolMu.Unlock()
	if pool != nil {
		pool.Stop()
	}
	return nil
}

func (c *Client) closed() bool { return atomic.LoadUint32(&c.closedOnce) == 1 }

// requester binds the client's transports and credential to api.Requester.
type requester struct{ c *Client }

func (r requester) Do(ctx context.Context, d api.Descriptor, call api.Call) (*types.Response, error) {
	start := time.Now()
	resp, err := api.Execute(ctx, r.c.rest, r.c.baseURL, r.c.apiKey, d, call)
	code := 0
	if resp != nil {
		code = resp.StatusCode
	}
	observeRequest(d.Name, code, err, time.Since(start))
	return resp, err
}

func (r requester) Open(ctx context.Context, d api.Descriptor, call api.Call) (*types.Stream, error) {
	start := time.Now()
	s, err := api.Open(ctx, r.c.streamRC, r.c.streamURL, r.c.apiKey, d, call)
	code := 0
	if s != nil {
		code = s.StatusCode
	}
	observeRequest(d.Name, code, err, time.Since(start))
	return s, err
}

func (c *Client) req() requester { return requester{c: c} }

// --------------------------------------------------------------------
// Search methods
// --------------------------------------------------------------------

// Host returns all services that have been found on the given host IP.
func (c *Client) Host(ctx context.Context, ip string, opts HostOptions) (*Response, error) {
	return api.Host(ctx, c.req(), ip, opts)
}

// HostCount behaves like HostSearch but only returns the total and facets.
// It does not consume query credits.
func (c *Client) HostCount(ctx context.Context, query, facets string) (*Response, error) {
	return api.HostCount(ctx, c.req(), query, facets)
}

// HostSearch searches Shodan using the same query syntax as the website.
func (c *Client) HostSearch(ctx context.Context, req HostSearchRequest) (*Response, error) {
	return api.HostSearch(ctx, c.req(), req)
}

// SearchFacets lists the properties usable as facets.
func (c *Client) SearchFacets(ctx context.Context) (*Response, error) {
	return api.SearchFacets(ctx, c.req())
}

// SearchFilters lists the filters usable in a search query.
func (c *Client) SearchFilters(ctx context.Context) (*Response, error) {
	return api.SearchFilters(ctx, c.req())
}

// SearchTokens shows how Shodan parses a query.
func (c *Client) SearchTokens(ctx context.Context, query string) (*Response, error) {
	return api.SearchTokens(ctx, c.req(), query)
}

// --------------------------------------------------------------------
// On-demand scanning
// --------------------------------------------------------------------

// Ports lists the ports Shodan crawls.
func (c *Client) Ports(ctx context.Context) (*Response, error) {
	return api.Ports(ctx, c.req())
}

// Protocols lists the protocols available to on-demand scans.
func (c *Client) Protocols(ctx context.Context) (*Response, error) {
	return api.Protocols(ctx, c.req())
}

// CreateScan asks Shodan to crawl the given IPs. See api.CreateScan for the accepted formats.
func (c *Client) CreateScan(ctx context.Context, ips string) (*Response, error) {
	return api.CreateScan(ctx, c.req(), ips)
}

// Scans lists submitted scans.
func (c *Client) Scans(ctx context.Context) (*Response, error) {
	return api.Scans(ctx, c.req())
}

// Scan returns the status of one scan.
func (c *Client) Scan(ctx context.Context, id string) (*Response, error) {
	return api.Scan(ctx, c.req(), id)
}

// --------------------------------------------------------------------
// Network alerts
// --------------------------------------------------------------------

// CreateAlert creates a network alert.
func (c *Client) CreateAlert(ctx context.Context, req CreateAlertRequest) (*Response, error) {
	return api.CreateAlert(ctx, c.req(), req)
}

// Alert returns one network alert.
func (c *Client) Alert(ctx context.Context, id string) (*Response, error) {
	return api.Alert(ctx, c.req(), id)
}

// DeleteAlert removes a network alert.
func (c *Client) DeleteAlert(ctx context.Context, id string) (*Response, error) {
	return api.DeleteAlert(ctx, c.req(), id)
}

// EditAlert replaces the IPs/netblocks monitored by an alert.
func (c *Client) EditAlert(ctx context.Context, id string, ips []string) (*Response, error) {
	return api.EditAlert(ctx, c.req(), id, ips)
}

// Alerts lists all network alerts.
func (c *Client) Alerts(ctx context.Context) (*Response, error) {
	return api.Alerts(ctx, c.req())
}

// AlertTriggers lists the available alert triggers.
func (c *Client) AlertTriggers(ctx context.Context) (*Response, error) {
	return api.AlertTriggers(ctx, c.req())
}

// AddAlertTrigger enables comma-separated triggers on an alert.
func (c *Client) AddAlertTrigger(ctx context.Context, id, trigger string) (*Response, error) {
	return api.AddAlertTrigger(ctx, c.req(), id, trigger)
}

// DeleteAlertTrigger disables triggers on an alert.
func (c *Client) DeleteAlertTrigger(ctx context.Context, id, trigger string) (*Response, error) {
	return api.DeleteAlertTrigger(ctx, c.req(), id, trigger)
}

// IgnoreTriggerService whitelists an "ip:port" service for a trigger.
func (c *Client) IgnoreTriggerService(ctx context.Context, id, trigger, service string) (*Response, error) {
	return api.IgnoreTriggerService(ctx, c.req(), id, trigger, service)
}

// UnignoreTriggerService removes a service from a trigger's whitelist.
func (c *Client) UnignoreTriggerService(ctx context.Context, id, trigger, service string) (*Response, error) {
	return api.UnignoreTriggerService(ctx, c.req(), id, trigger, service)
}

// AddAlertNotifier attaches a notifier to an alert.
func (c *Client) AddAlertNotifier(ctx context.Context, id, notifierID string) (*Response, error) {
	return api.AddAlertNotifier(ctx, c.req(), id, notifierID)
}

// DeleteAlertNotifier detaches a notifier from an alert.
func (c *Client) DeleteAlertNotifier(ctx context.Context, id, notifierID string) (*Response, error) {
	return api.DeleteAlertNotifier(ctx, c.req(), id, notifierID)
}

// --------------------------------------------------------------------
// Notifiers
// --------------------------------------------------------------------

// Notifiers lists the account's notifiers.
func (c *Client) Notifiers(ctx context.Context) (*Response, error) {
	return api.Notifiers(ctx, c.req())
}

// NotifierProviders lists the notification providers.
func (c *Client) NotifierProviders(ctx context.Context) (*Response, error) {
	return api.NotifierProviders(ctx, c.req())
}

// CreateNotifier creates a notifier.
func (c *Client) CreateNotifier(ctx context.Context, req CreateNotifierRequest) (*Response, error) {
	return api.CreateNotifier(ctx, c.req(), req)
}

// DeleteNotifier removes a notifier.
func (c *Client) DeleteNotifier(ctx context.Context, id string) (*Response, error) {
	return api.DeleteNotifier(ctx, c.req(), id)
}

// Notifier returns one notifier.
func (c *Client) Notifier(ctx context.Context, id string) (*Response, error) {
	return api.Notifier(ctx, c.req(), id)
}

// EditNotifier updates a notifier's provider arguments.
func (c *Client) EditNotifier(ctx context.Context, id string, args map[string]string) (*Response, error) {
	return api.EditNotifier(ctx, c.req(), id, args)
}

// --------------------------------------------------------------------
// Directory, account, DNS, utility and status methods
// --------------------------------------------------------------------

// Queries lists saved search queries.
func (c *Client) Queries(ctx context.Context, req QueryListRequest) (*Response, error) {
	return api.Queries(ctx, c.req(), req)
}

// QuerySearch searches saved queries. page 0 omits the parameter.
func (c *Client) QuerySearch(ctx context.Context, query string, page int) (*Response, error) {
	return api.QuerySearch(ctx, c.req(), query, page)
}

// QueryTags lists popular saved-query tags. size 0 omits the parameter.
func (c *Client) QueryTags(ctx context.Context, size int) (*Response, error) {
	return api.QueryTags(ctx, c.req(), size)
}

// AccountProfile returns the account linked to the key.
func (c *Client) AccountProfile(ctx context.Context) (*Response, error) {
	return api.AccountProfile(ctx, c.req())
}

// DNSDomain returns subdomains and DNS records for a domain.
func (c *Client) DNSDomain(ctx context.Context, domain string, req DomainRequest) (*Response, error) {
	return api.DNSDomain(ctx, c.req(), domain, req)
}

// DNSResolve resolves hostnames to IPs.
func (c *Client) DNSResolve(ctx context.Context, hostnames []string) (*Response, error) {
	return api.DNSResolve(ctx, c.req(), hostnames)
}

// DNSReverse looks up hostnames for IPs.
func (c *Client) DNSReverse(ctx context.Context, ips []string) (*Response, error) {
	return api.DNSReverse(ctx, c.req(), ips)
}

// HTTPHeaders echoes the request headers as seen by Shodan.
func (c *Client) HTTPHeaders(ctx context.Context) (*Response, error) {
	return api.HTTPHeaders(ctx, c.req())
}

// MyIP returns the caller's public IP.
func (c *Client) MyIP(ctx context.Context) (*Response, error) {
	return api.MyIP(ctx, c.req())
}

// APIInfo returns plan information for the key.
func (c *Client) APIInfo(ctx context.Context) (*Response, error) {
	return api.APIInfo(ctx, c.req())
}

// --------------------------------------------------------------------
// Streaming - no request timeout; cancel ctx or Close the stream to stop
// --------------------------------------------------------------------

// StreamAlerts subscribes to banners discovered on all network alert ranges.
func (c *Client) StreamAlerts(ctx context.Context) (*Stream, error) {
	return api.StreamAlerts(ctx, c.req())
}

// StreamAlert subscribes to banners discovered on one alert's ranges.
func (c *Client) StreamAlert(ctx context.Context, id string) (*Stream, error) {
	return api.StreamAlert(ctx, c.req(), id)
}
