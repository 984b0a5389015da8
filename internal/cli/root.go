package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dukerupert/shipengine"
	"github.com/dukerupert/shipengine/internal"
	"github.com/dukerupert/shipengine/internal/storage"
	"github.com/dukerupert/shipengine/internal/telemetry"
	"github.com/dukerupert/shipengine/internal/transport"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	jsonOutput bool
	query      string

	cfg      *internal.Config
	logger   *slog.Logger
	provider shipengine.Provider
	flush    func()
}

// Execute runs the CLI. Server-side failures are reported to Sentry when it
// is configured.
func Execute() error {
	a := &app{}
	err := newRootCmd(a).Execute()
	if err != nil && reportable(err) {
		telemetry.CaptureError(err,
			map[string]string{"error_code": shipengine.ErrorCode(err)},
			map[string]any{"args": os.Args[1:]},
		)
	}
	if a.flush != nil {
		a.flush()
	}
	return err
}

// reportable is true for 5xx responses and undecodable 2xx bodies.
func reportable(err error) bool {
	var apiErr *shipengine.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return errors.Is(err, shipengine.ErrMalformedResponse)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shipengine",
		Short:         "Validate addresses, quote rates and buy labels with ShipEngine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output results as JSON")
	cmd.PersistentFlags().StringVar(&a.query, "query", "", "Print only the value at a JSONPath, e.g. '$.Rates[0].ID'")

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newCarriersCmd(a))
	cmd.AddCommand(newRatesCmd(a))
	cmd.AddCommand(newLabelCmd(a))
	return cmd
}

// setup loads configuration and builds the client. Values already present
// on a are kept, which lets tests inject a provider.
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := internal.NewConfig()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if a.logger == nil {
		a.logger = internal.NewLogger(cmd.ErrOrStderr(), a.cfg.Env, a.cfg.LogLevel)
	}

	if a.flush == nil {
		flush, err := telemetry.InitSentry(telemetry.SentryConfig{
			DSN:              a.cfg.Sentry.DSN,
			Environment:      a.cfg.Env,
			Release:          "shipengine-cli@" + version,
			SampleRate:       a.cfg.Sentry.SampleRate,
			TracesSampleRate: a.cfg.Sentry.TracesSampleRate,
		}, a.logger)
		if err != nil {
			return err
		}
		a.flush = flush
	}

	if a.provider == nil {
		httpClient := newHTTPClient(a.cfg.ShipEngine.Timeout)
		client, err := shipengine.New(shipengine.Config{
			APIKey:     a.cfg.ShipEngine.APIKey,
			BaseURL:    a.cfg.ShipEngine.BaseURL,
			Timeout:    a.cfg.ShipEngine.Timeout,
			UserAgent:  "shipengine-cli/" + version,
			HTTPClient: httpClient,
			Logger:     a.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create shipengine client: %w", err)
		}
		a.provider = client
	}

	a.logger.Debug("cli configured",
		"base_url", a.cfg.ShipEngine.BaseURL,
		"api_key", a.cfg.ShipEngine.APIKey,
		"storage", a.cfg.Storage.Provider,
	)
	return nil
}

// newHTTPClient builds the traced client for ShipEngine calls, bounded by
// timeout or shipengine.DefaultTimeout when timeout is zero.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = shipengine.DefaultTimeout
	}
	client := transport.NewHTTPClient(transport.DefaultConfig().WithTimeout(timeout))
	client.Transport = &telemetry.HTTPTransport{Transport: client.Transport}
	return client
}

func (a *app) labelStore(cmd *cobra.Command) (storage.Storage, error) {
	store, err := storage.NewStorage(cmd.Context(), a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open label storage: %w", err)
	}
	return store, nil
}

// output writes v as indented JSON when --json is set, and otherwise calls
// render. --query takes precedence over both.
func (a *app) output(cmd *cobra.Command, v any, render func(w io.Writer)) error {
	if a.query != "" {
		return writeQuery(cmd.OutOrStdout(), a.query, v)
	}
	if a.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	render(cmd.OutOrStdout())
	return nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}
