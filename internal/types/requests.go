package types

// ------------------------------
// Request Types
// ------------------------------

// HostOptions holds optional parameters for a host lookup.
type HostOptions struct {
	History bool // include historical banners
	Minify  bool // only return ports and general host information
}

// HostSearchRequest holds parameters for a host search.
type HostSearchRequest struct {
	Query  string
	Facets string // comma-separated, e.g. "org,os" or "country:10"
	Page   int    // 1-based; zero omits the parameter
	Minify bool
}

// AlertFilters is the filter object of a network alert.
// Shodan only supports the "ip" filter.
type AlertFilters struct {
	IP []string `json:"ip"`
}

// CreateAlertRequest is the JSON body for creating a network alert.
type CreateAlertRequest struct {
	Name    string       `json:"name"`
	Filters AlertFilters `json:"filters"`
	Expires int          `json:"expires"` // seconds; 0 never expires
}

// EditAlertRequest is the JSON body for replacing the networks of an alert.
type EditAlertRequest struct {
	Filters AlertFilters `json:"filters"`
}

// CreateNotifierRequest holds the form fields for a new notifier.
// Args carries the provider-specific arguments, e.g. {"to": "ops@example.com"}.
type CreateNotifierRequest struct {
	Provider    string
	Description string
	Args        map[string]string
}

// QueryListRequest holds parameters for listing saved search queries.
type QueryListRequest struct {
	Page  int
	Sort  string // "votes" or "timestamp"
	Order string // "asc" or "desc"
}

// DomainRequest holds optional parameters for a DNS domain lookup.
type DomainRequest struct {
	History bool
	Type    string // A, AAAA, CNAME, NS, SOA, MX, TXT
	Page    int
}
