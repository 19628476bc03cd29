// Command shodan is a thin command-line front end for the Shodan REST and
// streaming APIs. Every subcommand maps to exactly one API call and prints
// the HTTP status and raw body.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/netscout/shodan"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries the persistent flags shared by every subcommand.
type app struct {
	apiKeyFile string
	baseURL    string
	streamURL  string
	timeout    time.Duration
	debug      bool
	envFile    string
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "shodan",
		Short:         "Query the Shodan REST and streaming APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", a.envFile, err)
			}

			if a.debug || shodan.DebugLoggingRequested() {
				a.debug = true
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.envFile, "env-file", ".env", "Dotenv file with SHODAN_* settings (ignored if missing)")
	f.StringVar(&a.apiKeyFile, "api-key-file", "", "File holding the API key (overrides SHODAN_API_KEY_FILE)")
	f.StringVar(&a.baseURL, "base-url", "", "REST API base URL (overrides SHODAN_BASE_URL)")
	f.StringVar(&a.streamURL, "stream-url", "", "Streaming API base URL (overrides SHODAN_STREAM_URL)")
	f.DurationVar(&a.timeout, "timeout", 0, "REST request timeout (overrides SHODAN_TIMEOUT)")
	f.BoolVarP(&a.debug, "debug", "d", false, "Log HTTP traffic (API key redacted)")

	// Sub-commands
	rootCmd.AddCommand(newHostCmd(a))
	rootCmd.AddCommand(newCountCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newFacetsCmd(a))
	rootCmd.AddCommand(newFiltersCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newPortsCmd(a))
	rootCmd.AddCommand(newProtocolsCmd(a))
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newAlertCmd(a))
	rootCmd.AddCommand(newNotifierCmd(a))
	rootCmd.AddCommand(newQueryCmd(a))
	rootCmd.AddCommand(newProfileCmd(a))
	rootCmd.AddCommand(newDNSCmd(a))
	rootCmd.AddCommand(newHeadersCmd(a))
	rootCmd.AddCommand(newMyIPCmd(a))
	rootCmd.AddCommand(newAPIInfoCmd(a))
	rootCmd.AddCommand(newStreamCmd(a))
	rootCmd.AddCommand(newEndpointsCmd())

	return rootCmd
}

// client builds a shodan.Client from SHODAN_* settings with flags on top.
func (a *app) client() (*shodan.Client, error) {
	cfg, err := shodan.LoadConfig()
	if err != nil {
		return nil, err
	}
	if a.apiKeyFile != "" {
		cfg.APIKey = ""
		cfg.APIKeyFile = a.apiKeyFile
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.streamURL != "" {
		cfg.StreamURL = a.streamURL
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout
	}
	cfg.Debug = cfg.Debug || a.debug

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("stream_url", cfg.StreamURL).
		Dur("timeout", cfg.Timeout).
		Bool("key_from_file", cfg.APIKey == "").
		Msg("building client")
	return shodan.NewFromConfig(cfg)
}

// call runs one REST request and prints it. A non-2xx status is printed
// and then reported as an error so the exit code reflects it.
func (a *app) call(cmd *cobra.Command, name string, fn func(ctx context.Context, c *shodan.Client) (*shodan.Response, error)) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	start := time.Now()
	resp, err := fn(cmd.Context(), c)
	elapsed := time.Since(start)

	shodan.Present(cmd.OutOrStdout(), resp, err)
	if err != nil {
		return err
	}
	log.Debug().
		Str("endpoint", name).
		Str("request_id", resp.RequestID).
		Int("status_code", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request completed")
	if !resp.IsSuccess() {
		return fmt.Errorf("%s: unexpected status %s", name, resp.Status)
	}
	return nil
}

// simpleCmd builds a command that takes no arguments.
func simpleCmd(a *app, use, short, name string, fn func(ctx context.Context, c *shodan.Client) (*shodan.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd, name, fn)
		},
	}
}
