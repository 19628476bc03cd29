package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/netscout/shodan"
)

func newHostCmd(a *app) *cobra.Command {
	var opts shodan.HostOptions
	cmd := &cobra.Command{
		Use:   "host <ip>",
		Short: "Show all services found on a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "host", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.Host(ctx, args[0], opts)
			})
		},
	}
	cmd.Flags().BoolVar(&opts.History, "history", false, "Include historical banners")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "Only return ports and general host information")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	var facets string
	cmd := &cobra.Command{
		Use:   "count <query>",
		Short: "Count search results without consuming query credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "host_count", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.HostCount(ctx, args[0], facets)
			})
		},
	}
	cmd.Flags().StringVar(&facets, "facets", "", "Comma-separated facets, e.g. org,os:10")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var req shodan.HostSearchRequest
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Shodan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Query = args[0]
			return a.call(cmd, "host_search", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.HostSearch(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.Facets, "facets", "", "Comma-separated facets")
	cmd.Flags().IntVar(&req.Page, "page", 0, "Result page (100 results per page)")
	cmd.Flags().BoolVar(&req.Minify, "minify", false, "Truncate larger fields")
	return cmd
}

func newFacetsCmd(a *app) *cobra.Command {
	return simpleCmd(a, "facets", "List search facets", "search_facets", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.SearchFacets(ctx)
	})
}

func newFiltersCmd(a *app) *cobra.Command {
	return simpleCmd(a, "filters", "List search filters", "search_filters", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.SearchFilters(ctx)
	})
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <query>",
		Short: "Show how a query is parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "search_tokens", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.SearchTokens(ctx, args[0])
			})
		},
	}
}

func newPortsCmd(a *app) *cobra.Command {
	return simpleCmd(a, "ports", "List ports Shodan crawls", "ports", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.Ports(ctx)
	})
}

func newProtocolsCmd(a *app) *cobra.Command {
	return simpleCmd(a, "protocols", "List on-demand scan protocols", "protocols", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.Protocols(ctx)
	})
}

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "On-demand scanning",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create <ips>",
		Short: "Request a scan of comma-separated IPs or netblocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "scan_create", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.CreateScan(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(simpleCmd(a, "list", "List submitted scans", "scans", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.Scans(ctx)
	}))
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show scan status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "scan", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.Scan(ctx, args[0])
			})
		},
	})
	return cmd
}
