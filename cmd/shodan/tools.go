package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/netscout/shodan"
	"github.com/netscout/shodan/internal/api"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Browse the saved search query directory",
	}

	var list shodan.QueryListRequest
	listCmd := simpleCmd(a, "list", "List saved queries", "queries", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.Queries(ctx, list)
	})
	listCmd.Flags().IntVar(&list.Page, "page", 0, "Result page")
	listCmd.Flags().StringVar(&list.Sort, "sort", "", "Sort by votes or timestamp")
	listCmd.Flags().StringVar(&list.Order, "order", "", "asc or desc")

	var page int
	search := idCmd(a, "search <query>", "Search saved queries", "query_search", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
		return c.QuerySearch(ctx, args[0], page)
	})
	search.Flags().IntVar(&page, "page", 0, "Result page")

	var size int
	tags := simpleCmd(a, "tags", "List popular tags", "query_tags", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.QueryTags(ctx, size)
	})
	tags.Flags().IntVar(&size, "size", 0, "Number of tags")

	cmd.AddCommand(listCmd, search, tags)
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return simpleCmd(a, "profile", "Show the account profile", "account_profile", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.AccountProfile(ctx)
	})
}

func newDNSCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "DNS lookups",
	}

	var req shodan.DomainRequest
	domain := idCmd(a, "domain <domain>", "List subdomains and records", "dns_domain", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
		return c.DNSDomain(ctx, args[0], req)
	})
	domain.Flags().BoolVar(&req.History, "history", false, "Include historical records")
	domain.Flags().StringVar(&req.Type, "type", "", "Only this record type, e.g. A, MX")
	domain.Flags().IntVar(&req.Page, "page", 0, "Result page")

	cmd.AddCommand(
		domain,
		idCmd(a, "resolve <hostnames>", "Resolve comma-separated hostnames", "dns_resolve", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.DNSResolve(ctx, splitList(args[0]))
		}),
		idCmd(a, "reverse <ips>", "Reverse-resolve comma-separated IPs", "dns_reverse", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.DNSReverse(ctx, splitList(args[0]))
		}),
	)
	return cmd
}

func newHeadersCmd(a *app) *cobra.Command {
	return simpleCmd(a, "headers", "Show the request headers Shodan receives", "http_headers", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.HTTPHeaders(ctx)
	})
}

func newMyIPCmd(a *app) *cobra.Command {
	return simpleCmd(a, "myip", "Show your public IP", "my_ip", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.MyIP(ctx)
	})
}

func newAPIInfoCmd(a *app) *cobra.Command {
	return simpleCmd(a, "api-info", "Show plan and credit information", "api_info", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
		return c.APIInfo(ctx)
	})
}

// newEndpointsCmd lists the operations the client knows about. It makes no requests.
func newEndpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints [name]",
		Short: "List supported API operations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all := api.All()
			if len(args) == 1 {
				d, ok := api.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown endpoint %q", args[0])
				}
				all = []api.Descriptor{d}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMETHOD\tPATH\tQUERY\tBODY")
			for _, d := range all {
				var q []string
				for _, p := range d.Query {
					if p.Required {
						q = append(q, p.Name+"*")
					} else {
						q = append(q, p.Name)
					}
				}
				path := d.Path
				if d.Stream {
					path = "(stream) " + path
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Name, d.Method, path, strings.Join(q, ","), d.Body)
			}
			return tw.Flush()
		},
	}
}
