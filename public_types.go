package shodan

import (
	"github.com/netscout/shodan/internal/dispatch"
	"github.com/netscout/shodan/internal/types"
)

// Public type aliases so callers never import internal packages.
type (
	Response = types.Response
	Stream   = types.Stream

	HostOptions           = types.HostOptions
	HostSearchRequest     = types.HostSearchRequest
	AlertFilters          = types.AlertFilters
	CreateAlertRequest    = types.CreateAlertRequest
	CreateNotifierRequest = types.CreateNotifierRequest
	QueryListRequest      = types.QueryListRequest
	DomainRequest         = types.DomainRequest

	// BatchConfig sizes the worker pool behind Batch. Zero fields take defaults.
	BatchConfig = dispatch.Config
)
