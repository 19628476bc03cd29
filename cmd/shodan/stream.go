package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/netscout/shodan"
)

func newStreamCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Follow the private firehose for monitored networks",
	}

	var alertID string
	var limit int
	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Print banners for all alerts (or one with --id) until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			var s *shodan.Stream
			if alertID != "" {
				s, err = c.StreamAlert(cmd.Context(), alertID)
			} else {
				s, err = c.StreamAlerts(cmd.Context())
			}
			if err != nil {
				shodan.Present(cmd.OutOrStdout(), nil, err)
				return err
			}
			defer func() { _ = s.Close() }()

			out := cmd.OutOrStdout()
			if s.StatusCode < 200 || s.StatusCode > 299 {
				body, _ := io.ReadAll(io.LimitReader(s, 64<<10))
				shodan.Present(out, &shodan.Response{Status: s.Status, StatusCode: s.StatusCode, Body: body}, nil)
				return fmt.Errorf("stream: unexpected status %s", s.Status)
			}
			log.Debug().Str("request_id", s.RequestID).Str("url", s.URL).Msg("stream opened")

			for n := 0; limit <= 0 || n < limit; n++ {
				rec, err := s.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					if cmd.Context().Err() != nil {
						return nil
					}
					return err
				}
				fmt.Fprintf(out, "%s\n", rec)
			}
			return nil
		},
	}
	alerts.Flags().StringVar(&alertID, "id", "", "Only stream banners for this alert")
	alerts.Flags().IntVar(&limit, "limit", 0, "Stop after this many records (0 = no limit)")

	cmd.AddCommand(alerts)
	return cmd
}
