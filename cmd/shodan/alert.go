package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netscout/shodan"
)

// idCmd builds a command taking exactly n positional arguments.
func idCmd(a *app, use, short, name string, n int, fn func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(n),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, name, func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return fn(ctx, c, args)
			})
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newAlertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage network alerts",
	}

	var expires int
	create := &cobra.Command{
		Use:   "create <name> <ips>",
		Short: "Create an alert monitoring comma-separated IPs or netblocks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := shodan.CreateAlertRequest{
				Name:    args[0],
				Filters: shodan.AlertFilters{IP: splitList(args[1])},
				Expires: expires,
			}
			return a.call(cmd, "alert_create", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.CreateAlert(ctx, req)
			})
		},
	}
	create.Flags().IntVar(&expires, "expires", 0, "Seconds until the alert expires (0 = never)")
	cmd.AddCommand(create)

	cmd.AddCommand(
		idCmd(a, "get <id>", "Show one alert", "alert", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.Alert(ctx, args[0])
		}),
		idCmd(a, "delete <id>", "Delete an alert", "alert_delete", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.DeleteAlert(ctx, args[0])
		}),
		idCmd(a, "edit <id> <ips>", "Replace the networks an alert monitors", "alert_edit", 2, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.EditAlert(ctx, args[0], splitList(args[1]))
		}),
		simpleCmd(a, "list", "List alerts", "alerts", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
			return c.Alerts(ctx)
		}),
		simpleCmd(a, "triggers", "List available triggers", "alert_triggers", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
			return c.AlertTriggers(ctx)
		}),
		idCmd(a, "trigger <id> <triggers>", "Enable comma-separated triggers", "alert_trigger_add", 2, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.AddAlertTrigger(ctx, args[0], args[1])
		}),
		idCmd(a, "untrigger <id> <triggers>", "Disable triggers", "alert_trigger_delete", 2, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.DeleteAlertTrigger(ctx, args[0], args[1])
		}),
		idCmd(a, "ignore <id> <trigger> <ip:port>", "Whitelist a service for a trigger", "alert_ignore_add", 3, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.IgnoreTriggerService(ctx, args[0], args[1], args[2])
		}),
		idCmd(a, "unignore <id> <trigger> <ip:port>", "Remove a service from a trigger's whitelist", "alert_ignore_delete", 3, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.UnignoreTriggerService(ctx, args[0], args[1], args[2])
		}),
		idCmd(a, "notify <id> <notifier-id>", "Attach a notifier", "alert_notifier_add", 2, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.AddAlertNotifier(ctx, args[0], args[1])
		}),
		idCmd(a, "unnotify <id> <notifier-id>", "Detach a notifier", "alert_notifier_delete", 2, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.DeleteAlertNotifier(ctx, args[0], args[1])
		}),
	)
	return cmd
}

func newNotifierCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifier",
		Short: "Manage notification services",
	}

	var req shodan.CreateNotifierRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a notifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "notifier_create", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.CreateNotifier(ctx, req)
			})
		},
	}
	create.Flags().StringVar(&req.Provider, "provider", "", "Provider name, see 'notifier providers' (required)")
	create.Flags().StringVar(&req.Description, "description", "", "Description (required)")
	create.Flags().StringToStringVar(&req.Args, "arg", nil, "Provider argument key=value (repeatable)")
	_ = create.MarkFlagRequired("provider")
	_ = create.MarkFlagRequired("description")

	var editArgs map[string]string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a notifier's provider arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, "notifier_edit", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
				return c.EditNotifier(ctx, args[0], editArgs)
			})
		},
	}
	edit.Flags().StringToStringVar(&editArgs, "arg", nil, "Provider argument key=value (repeatable)")

	cmd.AddCommand(
		simpleCmd(a, "list", "List notifiers", "notifiers", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
			return c.Notifiers(ctx)
		}),
		simpleCmd(a, "providers", "List notification providers", "notifier_providers", func(ctx context.Context, c *shodan.Client) (*shodan.Response, error) {
			return c.NotifierProviders(ctx)
		}),
		create,
		idCmd(a, "delete <id>", "Delete a notifier", "notifier_delete", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.DeleteNotifier(ctx, args[0])
		}),
		idCmd(a, "get <id>", "Show one notifier", "notifier", 1, func(ctx context.Context, c *shodan.Client, args []string) (*shodan.Response, error) {
			return c.Notifier(ctx, args[0])
		}),
		edit,
	)
	return cmd
}
